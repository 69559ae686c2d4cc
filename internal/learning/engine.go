package learning

import (
	"context"
	"errors"
	"sync"
	"time"

	"fjacquet/paycheck-planner/internal/apperror"
	"fjacquet/paycheck-planner/internal/logging"
	"fjacquet/paycheck-planner/internal/models"
	"fjacquet/paycheck-planner/internal/registry"

	"github.com/shopspring/decimal"
)

// PatternStore is the persistence port for learning state.
//
// Load returns apperror.ErrPatternNotFound when nothing is stored for the
// user. When the stored data cannot be decoded, Load returns an error wrapping
// apperror.ErrCorruptPattern together with a pattern carrying only the stored
// Version, when the store knows it. Save must reject, with
// apperror.ErrVersionConflict, a pattern whose Version is not exactly one more
// than the stored version (zero when absent).
type PatternStore interface {
	Load(ctx context.Context, userID string) (models.UserPattern, error)
	Save(ctx context.Context, userID string, pattern models.UserPattern) error
}

// Engine holds one user's learning state for a session.
type Engine struct {
	store    PatternStore
	registry *registry.Registry
	logger   logging.Logger
	opts     Options
	userID   string
	clock    func() time.Time

	mu      sync.Mutex
	pattern models.UserPattern
}

// NewEngine creates an engine with an empty pattern. Call Open to load the
// stored state. A nil store keeps learning in memory only.
func NewEngine(store PatternStore, reg *registry.Registry, userID string, opts Options, logger logging.Logger) *Engine {
	return &Engine{
		store:    store,
		registry: reg,
		logger:   logging.OrDefault(logger).WithField(logging.FieldUserID, userID),
		opts:     opts.normalized(),
		userID:   userID,
		clock:    time.Now,
		pattern:  models.NewUserPattern(),
	}
}

// WithClock replaces the time source.
func (e *Engine) WithClock(clock func() time.Time) *Engine {
	if clock != nil {
		e.clock = clock
	}
	return e
}

// Open loads the stored pattern. Storage problems never fail the call:
// a missing, unreadable or corrupt pattern leaves the engine empty. A corrupt
// pattern keeps its stored version so the next save replaces it.
func (e *Engine) Open(ctx context.Context) {
	pattern, err := e.load(ctx)
	switch {
	case err == nil:
	case errors.Is(err, apperror.ErrPatternNotFound):
		e.logger.Debug("No learning state stored yet")
		pattern = models.NewUserPattern()
	case errors.Is(err, apperror.ErrCorruptPattern):
		e.logger.WithError(err).Warn("Stored learning state is corrupt, starting empty",
			logging.Field{Key: logging.FieldVersion, Value: pattern.Version})
	default:
		e.logger.WithError(err).Warn("Could not load learning state, starting empty")
		pattern = models.NewUserPattern()
	}

	e.mu.Lock()
	e.pattern = pattern
	e.mu.Unlock()
}

func (e *Engine) load(ctx context.Context) (models.UserPattern, error) {
	if e.store == nil {
		return models.UserPattern{}, apperror.ErrPatternNotFound
	}
	pattern, err := e.store.Load(ctx, e.userID)
	if err != nil {
		if errors.Is(err, apperror.ErrCorruptPattern) {
			return corruptFallback(pattern.Version), err
		}
		return models.UserPattern{}, err
	}
	clean, err := Sanitize(pattern, e.opts)
	if err != nil {
		return corruptFallback(pattern.Version), err
	}
	return clean, nil
}

// corruptFallback is the empty pattern that replaces corrupt stored data.
func corruptFallback(storedVersion int64) models.UserPattern {
	p := models.NewUserPattern()
	p.Version = storedVersion
	return p
}

// Pattern returns a copy of the current state.
func (e *Engine) Pattern() models.UserPattern {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pattern.Clone()
}

// RecordAcceptance learns from an accepted plan and writes the new state through
// to the store. The in-memory state is updated even when saving fails; the
// returned error is informational and callers should keep going.
func (e *Engine) RecordAcceptance(ctx context.Context, text string, result models.ParseResult) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock()
	next := Record(e.pattern, text, result, now, e.opts)
	next.Version = e.pattern.Version + 1

	err := e.save(ctx, next)
	if errors.Is(err, apperror.ErrVersionConflict) {
		e.logger.Info("Learning state changed elsewhere, merging")
		latest, lerr := e.load(ctx)
		if errors.Is(lerr, apperror.ErrCorruptPattern) {
			// Nothing to merge with: the in-memory state replaces the stored data.
			latest, lerr = rebase(e.pattern, latest.Version), nil
		}
		if lerr == nil {
			next = Record(latest, text, result, now, e.opts)
			next.Version = latest.Version + 1
			err = e.save(ctx, next)
		}
	}

	if err != nil {
		next.Version--
		e.pattern = next
		e.logger.WithError(err).Warn("Could not save learning state",
			logging.Field{Key: logging.FieldVersion, Value: next.Version})
		var perr *apperror.PersistenceError
		if errors.As(err, &perr) {
			return perr
		}
		return &apperror.PersistenceError{Backend: "pattern store", Op: "save", UserID: e.userID, Err: err}
	}

	e.pattern = next
	e.logger.Debug("Acceptance recorded",
		logging.Field{Key: logging.FieldCount, Value: len(result.Allocations)},
		logging.Field{Key: logging.FieldVersion, Value: next.Version})
	return nil
}

func rebase(p models.UserPattern, version int64) models.UserPattern {
	out := p.Clone()
	out.Version = version
	return out
}

func (e *Engine) save(ctx context.Context, p models.UserPattern) error {
	if e.store == nil {
		return nil
	}
	return e.store.Save(ctx, e.userID, p)
}

// Suggest returns personalized suggestions for a partial instruction.
func (e *Engine) Suggest(partialText string, income decimal.Decimal) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Suggest(e.pattern, e.registry, partialText, income, e.opts)
}

// TypicalBreakdown returns the usual split of income for well-supported categories.
func (e *Engine) TypicalBreakdown(income decimal.Decimal) map[string]models.CategoryBreakdown {
	e.mu.Lock()
	defer e.mu.Unlock()
	return TypicalBreakdown(e.pattern, income, e.opts)
}

// Summary returns a reportable view of the current state.
func (e *Engine) Summary() models.LearningSummary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Summarize(e.pattern, e.userID, e.registry)
}

// Enrich returns a copy of result with personalized suggestions appended
// after the generic ones.
func (e *Engine) Enrich(text string, result models.ParseResult) models.ParseResult {
	out := result.Clone()
	seen := make(map[string]bool, len(out.Suggestions))
	for _, s := range out.Suggestions {
		seen[s] = true
	}
	for _, s := range e.Suggest(text, result.Income) {
		if !seen[s] {
			out.Suggestions = append(out.Suggestions, s)
			seen[s] = true
		}
	}
	return out
}
