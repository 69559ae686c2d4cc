// Package store persists per-user learning state.
//
// Every store follows the same contract: Load reports apperror.ErrPatternNotFound
// when nothing is stored, and Save only accepts a pattern whose Version is one
// more than the stored version.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fjacquet/paycheck-planner/internal/apperror"
	"fjacquet/paycheck-planner/internal/fileutils"
	"fjacquet/paycheck-planner/internal/logging"
	"fjacquet/paycheck-planner/internal/models"

	"gopkg.in/yaml.v3"
)

// Backend names accepted by configuration.
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// FileStore keeps one YAML document per user under Directory.
type FileStore struct {
	Directory string
	logger    logging.Logger
	mu        sync.Mutex
}

// NewFileStore creates a store rooted at directory. The directory is created on first save.
func NewFileStore(directory string, logger logging.Logger) *FileStore {
	return &FileStore{
		Directory: directory,
		logger:    logging.OrDefault(logger),
	}
}

// PatternFile returns the path of the YAML file holding userID's pattern.
func (s *FileStore) PatternFile(userID string) string {
	return filepath.Join(s.Directory, sanitizeUserID(userID)+".yaml")
}

// Load reads the stored pattern for userID.
func (s *FileStore) Load(ctx context.Context, userID string) (models.UserPattern, error) {
	if err := validateRequest(ctx, userID); err != nil {
		return models.UserPattern{}, s.wrap("load", userID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(userID)
}

// Save writes pattern for userID, replacing the file atomically.
func (s *FileStore) Save(ctx context.Context, userID string, pattern models.UserPattern) error {
	if err := validateRequest(ctx, userID); err != nil {
		return s.wrap("save", userID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var stored int64
	current, err := s.read(userID)
	switch {
	case err == nil:
		stored = current.Version
	case errors.Is(err, apperror.ErrPatternNotFound):
	case errors.Is(err, apperror.ErrCorruptPattern):
		// A corrupt file is replaced by whatever the caller holds.
		s.logger.WithError(err).Warn("Overwriting corrupt learning state",
			logging.Field{Key: logging.FieldUserID, Value: userID})
		stored = pattern.Version - 1
	default:
		return err
	}

	if err := checkVersion(stored, pattern.Version); err != nil {
		return s.wrap("save", userID, err)
	}

	data, err := yaml.Marshal(pattern)
	if err != nil {
		return s.wrap("save", userID, fmt.Errorf("error marshaling pattern: %w", err))
	}

	path := s.PatternFile(userID)
	if err := fileutils.WriteFileAtomic(path, data, fileutils.PermissionDataFile); err != nil {
		return s.wrap("save", userID, err)
	}

	s.logger.Debug("Learning state saved",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldVersion, Value: pattern.Version})
	return nil
}

func (s *FileStore) read(userID string) (models.UserPattern, error) {
	path := s.PatternFile(userID)
	data, err := os.ReadFile(path) // #nosec G304 -- path is built from a sanitized user id
	if err != nil {
		if os.IsNotExist(err) {
			return models.UserPattern{}, apperror.ErrPatternNotFound
		}
		return models.UserPattern{}, s.wrap("load", userID, fmt.Errorf("error reading %s: %w", path, err))
	}

	var pattern models.UserPattern
	if err := yaml.Unmarshal(data, &pattern); err != nil {
		return models.UserPattern{}, s.wrap("load", userID, fmt.Errorf("%w: %v", apperror.ErrCorruptPattern, err))
	}
	return pattern, nil
}

func (s *FileStore) wrap(op, userID string, err error) error {
	return &apperror.PersistenceError{Backend: BackendYAML, Op: op, UserID: userID, Err: err}
}

func validateRequest(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(userID) == "" {
		return errors.New("user id cannot be empty")
	}
	return nil
}

func checkVersion(stored, next int64) error {
	if next != stored+1 {
		return fmt.Errorf("%w: stored version %d, got %d", apperror.ErrVersionConflict, stored, next)
	}
	return nil
}

// sanitizeUserID maps a user id onto a safe file name.
func sanitizeUserID(userID string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(userID) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	name := strings.TrimLeft(b.String(), ".")
	if name == "" {
		return "_"
	}
	return name
}
