// Package container provides dependency injection for the paycheck planner.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"

	"fjacquet/paycheck-planner/internal/common"
	"fjacquet/paycheck-planner/internal/config"
	"fjacquet/paycheck-planner/internal/learning"
	"fjacquet/paycheck-planner/internal/logging"
	"fjacquet/paycheck-planner/internal/parser"
	"fjacquet/paycheck-planner/internal/registry"
	"fjacquet/paycheck-planner/internal/report"
	"fjacquet/paycheck-planner/internal/store"
	"fjacquet/paycheck-planner/internal/transcript"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation: all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	registry   *registry.Registry
	parser     *parser.Parser
	normalizer *transcript.Normalizer
	store      learning.PatternStore
	reports    *report.ReportGenerator
	closeStore func() error
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, config.ConfigureLoggingFromConfig(cfg))
}

// NewContainerWithLogger wires the dependencies around an existing logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	logger = logging.OrDefault(logger)

	if len(cfg.CSV.Delimiter) == 1 {
		common.SetDelimiter(rune(cfg.CSV.Delimiter[0]))
	}

	reg, err := newRegistry(cfg, logger)
	if err != nil {
		return nil, err
	}

	p, err := parser.NewParser(reg, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating parser: %w", err)
	}

	patternStore, closeStore, err := newPatternStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	logger.Debug("Container initialized",
		logging.Field{Key: "categories", Value: reg.Len()},
		logging.Field{Key: logging.FieldBackend, Value: cfg.Store.Backend},
		logging.Field{Key: "learning_enabled", Value: cfg.Learning.Enabled})

	return &Container{
		logger:     logger,
		config:     cfg,
		registry:   reg,
		parser:     p,
		normalizer: transcript.NewNormalizer(reg.Keywords()),
		store:      patternStore,
		reports:    report.NewReportGenerator(logger),
		closeStore: closeStore,
	}, nil
}

func newRegistry(cfg *config.Config, logger logging.Logger) (*registry.Registry, error) {
	if cfg.Registry.File == "" {
		return registry.Default(), nil
	}
	path := config.ExpandPath(cfg.Registry.File)
	reg, err := registry.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error loading category registry: %w", err)
	}
	logger.Info("Loaded category registry",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: reg.Len()})
	return reg, nil
}

func newPatternStore(cfg *config.Config, logger logging.Logger) (learning.PatternStore, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Store.Backend {
	case store.BackendYAML:
		return store.NewFileStore(cfg.PatternDirectory(), logger), noop, nil
	case store.BackendSQLite:
		s, err := store.NewSQLiteStore(cfg.SQLitePath(), logger)
		if err != nil {
			return nil, nil, fmt.Errorf("error opening pattern database: %w", err)
		}
		return s, s.Close, nil
	case store.BackendMemory:
		return store.NewMemoryStore(), noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
}

// LearningOptions maps the learning section of the configuration.
func (c *Container) LearningOptions() learning.Options {
	l := c.config.Learning
	return learning.Options{
		RingSize:          l.RingSize,
		HistoryLimit:      l.HistoryLimit,
		MinSupport:        l.MinSupport,
		TopPreferred:      l.TopPreferred,
		ReminderThreshold: l.ReminderThreshold,
		ReminderCount:     l.ReminderCount,
	}
}

// OpenEngine creates a learning engine for userID and loads its stored state.
// An empty userID selects the configured user.
func (c *Container) OpenEngine(ctx context.Context, userID string) *learning.Engine {
	if userID == "" {
		userID = c.config.User.ID
	}
	e := learning.NewEngine(c.store, c.registry, userID, c.LearningOptions(), c.logger)
	e.Open(ctx)
	return e
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetRegistry returns the category registry.
func (c *Container) GetRegistry() *registry.Registry {
	return c.registry
}

// GetParser returns the instruction parser.
func (c *Container) GetParser() *parser.Parser {
	return c.parser
}

// GetNormalizer returns the transcript normalizer built over the registry keywords.
func (c *Container) GetNormalizer() *transcript.Normalizer {
	return c.normalizer
}

// GetStore returns the pattern store selected by configuration.
func (c *Container) GetStore() learning.PatternStore {
	return c.store
}

// GetReportGenerator returns the report generator.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.reports
}

// Close releases the pattern store.
func (c *Container) Close() error {
	if err := c.closeStore(); err != nil {
		return fmt.Errorf("error closing pattern store: %w", err)
	}
	c.logger.Debug("Container closed")
	return nil
}
