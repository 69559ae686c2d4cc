// Package transcript cleans speech-recognition output into parser-ready text
// and drives dictation sessions against a recognition provider.
package transcript

import (
	"regexp"
	"sort"
	"strings"
)

var (
	fillerPattern     = regexp.MustCompile(`(?i)\b(?:um+|uh+|erm+|hmm+)\b,?`)
	percentPattern    = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:percent|per\s+cent)\b`)
	spokenAmount      = regexp.MustCompile(`(?i)\b(\d+(?:,\d{3})*(?:\.\d+)?)\s*(?:dollars?|bucks)\b`)
	unitWordPattern   = regexp.MustCompile(`(?i)\s*\b(?:dollars?|cents?)\b`)
	bareNumberPattern = regexp.MustCompile(`\d+(?:,\d{3})*(?:\.\d+)?`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	spaceBeforePunct  = regexp.MustCompile(`\s+([,.;!?])`)
)

// Normalizer rewrites raw transcripts. It only knows the category keywords,
// which it uses to decide when a bare number is an amount.
type Normalizer struct {
	linkedKeyword *regexp.Regexp
}

// NewNormalizer builds a normalizer for the given category keywords.
func NewNormalizer(keywords []string) *Normalizer {
	n := &Normalizer{}
	if len(keywords) == 0 {
		return n
	}

	sorted := append([]string(nil), keywords...)
	// Longest first so "car payment" wins over "car".
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	alts := make([]string, 0, len(sorted))
	for _, kw := range sorted {
		parts := strings.Fields(strings.ToLower(kw))
		for i, p := range parts {
			parts[i] = regexp.QuoteMeta(p)
		}
		if len(parts) > 0 {
			alts = append(alts, strings.Join(parts, `\s+`))
		}
	}
	if len(alts) == 0 {
		return n
	}

	n.linkedKeyword = regexp.MustCompile(`(?i)^\s+(?:[a-z]+\s+){0,2}?(?:to|for|toward|towards)\s+(?:(?:the|my|our|a|an)\s+)?(?:` +
		strings.Join(alts, "|") + `)s?\b`)
	return n
}

// Normalize applies the substitutions in a fixed order: fillers, spelled
// numbers, percent, hundreds and thousands, spoken dollar amounts, leftover
// unit words, currency markers for linked numbers, whitespace.
func (n *Normalizer) Normalize(raw string) string {
	text := fillerPattern.ReplaceAllString(raw, "")
	text = wordsToDigits(text)
	text = percentPattern.ReplaceAllString(text, "${1}%")
	text = expandScales(text)
	text = spokenAmount.ReplaceAllString(text, "$$${1}")
	text = unitWordPattern.ReplaceAllString(text, "")
	text = n.markLinkedAmounts(text)

	text = whitespacePattern.ReplaceAllString(text, " ")
	text = spaceBeforePunct.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}

// markLinkedAmounts inserts "$" before a bare number that is followed, within
// a couple of words, by to/for/toward and a category keyword.
func (n *Normalizer) markLinkedAmounts(text string) string {
	if n.linkedKeyword == nil {
		return text
	}

	var b strings.Builder
	last := 0
	for _, loc := range bareNumberPattern.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		if start > 0 && strings.ContainsRune("$.,0123456789", rune(text[start-1])) {
			continue
		}
		if end < len(text) && (text[end] == '%' || text[end] == '.' && end+1 < len(text) && isDigit(text[end+1])) {
			continue
		}
		if !n.linkedKeyword.MatchString(text[end:]) {
			continue
		}
		b.WriteString(text[last:start])
		b.WriteByte('$')
		last = start
	}
	b.WriteString(text[last:])
	return b.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
