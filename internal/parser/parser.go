// Package parser turns a free-text budget instruction into a ParseResult.
package parser

import (
	"fmt"

	"fjacquet/paycheck-planner/internal/allocation"
	"fjacquet/paycheck-planner/internal/extraction"
	"fjacquet/paycheck-planner/internal/logging"
	"fjacquet/paycheck-planner/internal/models"
	"fjacquet/paycheck-planner/internal/registry"
	"fjacquet/paycheck-planner/internal/scoring"
)

// InstructionParser is the parsing surface the rest of the planner depends on.
type InstructionParser interface {
	Parse(text string) models.ParseResult
}

// Parser is the facade over extraction, allocation and scoring.
//
// Parse depends only on its input and the registry the parser was built with,
// so one Parser can serve concurrent callers.
type Parser struct {
	registry *registry.Registry
	resolver *allocation.Resolver
	logger   logging.Logger
}

// NewParser builds a parser over reg using the default rule table.
// If logger is nil, the default logger is used.
func NewParser(reg *registry.Registry, logger logging.Logger) (*Parser, error) {
	return NewParserWithRules(reg, allocation.DefaultRules(), logger)
}

// NewParserWithRules builds a parser with a custom allocation rule table.
func NewParserWithRules(reg *registry.Registry, rules []allocation.Rule, logger logging.Logger) (*Parser, error) {
	logger = logging.OrDefault(logger)
	if reg == nil {
		return nil, fmt.Errorf("parser needs a category registry")
	}

	resolver, err := allocation.NewResolver(reg, rules, logger)
	if err != nil {
		return nil, fmt.Errorf("error building allocation resolver: %w", err)
	}

	return &Parser{
		registry: reg,
		resolver: resolver,
		logger:   logger,
	}, nil
}

// Parse extracts income and allocations from text and scores the result.
// It never fails: a miss yields zero values, low confidence and suggestions.
func (p *Parser) Parse(text string) models.ParseResult {
	amounts := extraction.FindAmounts(text)
	income := extraction.FindIncome(text)
	alloc := p.resolver.Resolve(text, income, amounts)

	result := models.ParseResult{
		Income:      income,
		Allocations: alloc,
		Confidence:  scoring.Confidence(text, income, alloc),
		Suggestions: scoring.Suggestions(alloc, p.registry),
	}

	p.logger.Debug("Parsed instruction",
		logging.Field{Key: logging.FieldIncome, Value: income.String()},
		logging.Field{Key: logging.FieldCount, Value: len(alloc)},
		logging.Field{Key: logging.FieldConfidence, Value: result.Confidence})
	return result
}

// Registry returns the category registry the parser matches against.
func (p *Parser) Registry() *registry.Registry {
	return p.registry
}
