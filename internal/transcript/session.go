package transcript

import (
	"context"
	"errors"
	"sync"

	"fjacquet/paycheck-planner/internal/apperror"
	"fjacquet/paycheck-planner/internal/logging"

	"github.com/google/uuid"
)

// Event is one result from a speech recognition provider.
type Event struct {
	Transcript string  `json:"transcript"`
	IsFinal    bool    `json:"isFinal"`
	Confidence float64 `json:"confidence"`
}

// ProviderError is a failure reported by the recognition provider.
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	return e.Message
}

// Handlers receive normalized text. Interim results are for live preview
// only; OnFinal is the single place where text may reach the parser.
type Handlers struct {
	OnInterim func(preview string)
	OnFinal   func(text string)
}

// Session consumes one dictation stream.
type Session struct {
	id         string
	normalizer *Normalizer
	handlers   Handlers
	logger     logging.Logger

	stopOnce sync.Once
	done     chan struct{}
}

// NewSession creates a session with a fresh id.
func NewSession(normalizer *Normalizer, handlers Handlers, logger logging.Logger) *Session {
	if normalizer == nil {
		normalizer = NewNormalizer(nil)
	}
	return &Session{
		id:         uuid.NewString(),
		normalizer: normalizer,
		handlers:   handlers,
		logger:     logging.OrDefault(logger),
		done:       make(chan struct{}),
	}
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Stop ends the session. It is safe to call more than once and from any
// goroutine, handlers included. Events dispatched after Stop returns are
// dropped, but a callback another goroutine has already entered runs to
// completion.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		s.logger.Debug("Dictation stopped", logging.Field{Key: logging.FieldSessionID, Value: s.id})
	})
}

func (s *Session) stopped() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Run dispatches events until the stream ends, the session is stopped or ctx
// is cancelled. A provider error ends the run with a *apperror.RecognitionError.
func (s *Session) Run(ctx context.Context, events <-chan Event, errs <-chan error) error {
	for {
		select {
		case <-ctx.Done():
			s.Stop()
			return ctx.Err()

		case <-s.done:
			return nil

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if s.stopped() {
				return nil
			}
			return s.recognitionError(err)

		case ev, ok := <-events:
			if !ok {
				return s.pendingError(errs)
			}
			s.dispatch(ev)
		}
	}
}

// pendingError reports an error the provider queued before closing its stream.
func (s *Session) pendingError(errs <-chan error) error {
	if errs == nil || s.stopped() {
		return nil
	}
	select {
	case err, ok := <-errs:
		if ok && err != nil {
			return s.recognitionError(err)
		}
	default:
	}
	return nil
}

func (s *Session) dispatch(ev Event) {
	if s.stopped() {
		return
	}

	text := s.normalizer.Normalize(ev.Transcript)
	if text == "" {
		return
	}

	// Normalization takes time; a Stop issued meanwhile still wins.
	if s.stopped() {
		return
	}

	if !ev.IsFinal {
		if s.handlers.OnInterim != nil {
			s.handlers.OnInterim(text)
		}
		return
	}

	s.logger.Debug("Final transcript received",
		logging.Field{Key: logging.FieldSessionID, Value: s.id},
		logging.Field{Key: logging.FieldConfidence, Value: ev.Confidence})
	if s.handlers.OnFinal != nil {
		s.handlers.OnFinal(text)
	}
}

func (s *Session) recognitionError(err error) error {
	recErr := &apperror.RecognitionError{SessionID: s.id, Err: err}
	var pe *ProviderError
	if errors.As(err, &pe) {
		recErr.Code = pe.Code
	}
	s.logger.WithError(err).Warn("Speech recognition failed",
		logging.Field{Key: logging.FieldSessionID, Value: s.id})
	return recErr
}
