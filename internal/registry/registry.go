// Package registry holds the ordered table of budget categories.
//
// Iteration order is insertion order and is part of the contract: the
// allocation resolver tries categories, and their keywords, in this order.
package registry

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/paycheck-planner/internal/models"

	"gopkg.in/yaml.v3"
)

// minFuzzyWordLength keeps short words such as "a" or "my" from matching every keyword.
const minFuzzyWordLength = 3

// Registry is an immutable, ordered set of category definitions.
type Registry struct {
	defs []models.CategoryDefinition
	byID map[string]int
}

// registryFile is the YAML layout accepted by LoadFile.
type registryFile struct {
	Categories []models.CategoryDefinition `yaml:"categories"`
}

// New builds a registry from defs, keeping their order.
// Ids must be unique and every category needs at least one keyword.
func New(defs []models.CategoryDefinition) (*Registry, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("registry needs at least one category")
	}

	r := &Registry{
		defs: make([]models.CategoryDefinition, 0, len(defs)),
		byID: make(map[string]int, len(defs)),
	}
	for _, def := range defs {
		def = def.Clone()
		def.ID = strings.TrimSpace(def.ID)
		if def.ID == "" {
			return nil, fmt.Errorf("category without id")
		}
		if _, dup := r.byID[def.ID]; dup {
			return nil, fmt.Errorf("duplicate category id '%s'", def.ID)
		}

		keywords := make([]string, 0, len(def.Keywords))
		for _, kw := range def.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				keywords = append(keywords, kw)
			}
		}
		if len(keywords) == 0 {
			return nil, fmt.Errorf("category '%s' has no keywords", def.ID)
		}
		def.Keywords = keywords

		r.byID[def.ID] = len(r.defs)
		r.defs = append(r.defs, def)
	}
	return r, nil
}

// MustNew is like New but panics on an invalid table.
func MustNew(defs []models.CategoryDefinition) *Registry {
	r, err := New(defs)
	if err != nil {
		panic(err)
	}
	return r
}

// Default returns the built-in category table.
func Default() *Registry {
	return MustNew(DefaultCategories())
}

// LoadFile reads a category table from a YAML file.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("error reading category file %s: %w", path, err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing category file %s: %w", path, err)
	}

	r, err := New(file.Categories)
	if err != nil {
		return nil, fmt.Errorf("invalid category file %s: %w", path, err)
	}
	return r, nil
}

// Lookup returns the definition for id.
func (r *Registry) Lookup(id string) (models.CategoryDefinition, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return models.CategoryDefinition{}, false
	}
	return r.defs[idx].Clone(), true
}

// All returns every definition in registry order.
func (r *Registry) All() []models.CategoryDefinition {
	out := make([]models.CategoryDefinition, len(r.defs))
	for i, def := range r.defs {
		out[i] = def.Clone()
	}
	return out
}

// Len returns the number of categories.
func (r *Registry) Len() int {
	return len(r.defs)
}

// Keywords returns every keyword of every category, in registry order.
func (r *Registry) Keywords() []string {
	var out []string
	for _, def := range r.defs {
		out = append(out, def.Keywords...)
	}
	return out
}

// MatchWord resolves a free word to a category by two-way containment against
// the keywords: the word contains a keyword, or a keyword contains the word.
// The first match in registry order wins.
func (r *Registry) MatchWord(word string) (models.CategoryDefinition, bool) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return models.CategoryDefinition{}, false
	}

	for _, def := range r.defs {
		for _, kw := range def.Keywords {
			if strings.Contains(word, kw) {
				return def.Clone(), true
			}
			if len(word) >= minFuzzyWordLength && strings.Contains(kw, word) {
				return def.Clone(), true
			}
		}
	}
	return models.CategoryDefinition{}, false
}

// IsSavingsType reports whether id names a savings or investment category.
func (r *Registry) IsSavingsType(id string) bool {
	idx, ok := r.byID[id]
	return ok && r.defs[idx].IsSavingsType()
}

// Mentions reports whether text names the category through any of its keywords.
func (r *Registry) Mentions(text, id string) bool {
	idx, ok := r.byID[id]
	if !ok {
		return false
	}
	return mentionsAny(strings.ToLower(text), r.defs[idx].Keywords)
}

func mentionsAny(lowerText string, keywords []string) bool {
	for _, kw := range keywords {
		if containsWord(lowerText, kw) {
			return true
		}
	}
	return false
}

// containsWord reports whether kw occurs in text at word boundaries.
func containsWord(text, kw string) bool {
	for start := 0; start <= len(text)-len(kw); {
		idx := strings.Index(text[start:], kw)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(kw)
		if (idx == 0 || !isWordByte(text[idx-1])) && wordEndsAt(text, end) {
			return true
		}
		start = idx + 1
	}
	return false
}

// wordEndsAt accepts a boundary at end, or after a single plural "s".
func wordEndsAt(text string, end int) bool {
	if end == len(text) || !isWordByte(text[end]) {
		return true
	}
	return text[end] == 's' && (end+1 == len(text) || !isWordByte(text[end+1]))
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
