package store

import (
	"context"
	"sync"

	"fjacquet/paycheck-planner/internal/apperror"
	"fjacquet/paycheck-planner/internal/models"
)

// MemoryStore keeps patterns in process memory. LoadErr and SaveErr, when set,
// are returned instead of touching the data, which lets tests simulate a failing backend.
type MemoryStore struct {
	mu       sync.Mutex
	patterns map[string]models.UserPattern
	saves    int

	LoadErr error
	SaveErr error
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{patterns: make(map[string]models.UserPattern)}
}

// Load returns a copy of the stored pattern.
func (s *MemoryStore) Load(ctx context.Context, userID string) (models.UserPattern, error) {
	if err := validateRequest(ctx, userID); err != nil {
		return models.UserPattern{}, s.wrap("load", userID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.LoadErr != nil {
		return models.UserPattern{}, s.wrap("load", userID, s.LoadErr)
	}
	p, ok := s.patterns[userID]
	if !ok {
		return models.UserPattern{}, apperror.ErrPatternNotFound
	}
	return p.Clone(), nil
}

// Save stores a copy of pattern.
func (s *MemoryStore) Save(ctx context.Context, userID string, pattern models.UserPattern) error {
	if err := validateRequest(ctx, userID); err != nil {
		return s.wrap("save", userID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SaveErr != nil {
		return s.wrap("save", userID, s.SaveErr)
	}
	if err := checkVersion(s.patterns[userID].Version, pattern.Version); err != nil {
		return s.wrap("save", userID, err)
	}
	s.patterns[userID] = pattern.Clone()
	s.saves++
	return nil
}

// Put replaces the stored pattern without any version check.
func (s *MemoryStore) Put(userID string, pattern models.UserPattern) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patterns[userID] = pattern.Clone()
}

// Saves returns the number of successful saves.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *MemoryStore) wrap(op, userID string, err error) error {
	return &apperror.PersistenceError{Backend: BackendMemory, Op: op, UserID: userID, Err: err}
}
