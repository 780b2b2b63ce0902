package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"techtranslator/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Translator performs a single translation call
type Translator interface {
	Translate(ctx context.Context, req domain.TranslationRequest) (*domain.TranslationResult, error)
}

// SessionController drives one translation session: it validates input,
// calls the translator, records successful translations in history and
// keeps the text currently on display.
type SessionController struct {
	translator Translator
	history    *HistoryStore
	logger     *zap.Logger

	now   func() time.Time
	newID func() string

	mu      sync.Mutex
	state   domain.SessionState
	display domain.DisplayState
}

// NewSessionController creates a controller in the idle state
func NewSessionController(translator Translator, history *HistoryStore, logger *zap.Logger) *SessionController {
	return &SessionController{
		translator: translator,
		history:    history,
		logger:     logger.Named("SessionController"),
		now:        time.Now,
		newID:      uuid.NewString,
		state:      domain.IdleState(),
	}
}

// History returns the history store the controller records into
func (s *SessionController) History() *HistoryStore {
	return s.history
}

// State returns the current session state
func (s *SessionController) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Display returns the translation currently on display
func (s *SessionController) Display() domain.DisplayState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.display
}

// Submit translates rawText and returns the resulting state.
//
// Empty input yields a failed state carrying domain.ErrEmptyInput without calling
// the translator; the stored state is left as it was. While a translation is in
// flight further submissions are rejected with domain.ErrSessionBusy.
func (s *SessionController) Submit(ctx context.Context, rawText, sourceLang, targetLang string, preserveFormatting bool) (domain.SessionState, error) {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return domain.SessionState{Phase: domain.PhaseFailed, Err: domain.ErrEmptyInput}, nil
	}

	s.mu.Lock()
	if s.state.Phase == domain.PhaseTranslating {
		s.mu.Unlock()
		return domain.SessionState{}, domain.ErrSessionBusy
	}
	s.state = domain.SessionState{Phase: domain.PhaseTranslating}
	s.mu.Unlock()

	log := s.logger.With(zap.String("source_lang", sourceLang), zap.String("target_lang", targetLang))
	log.Debug("Translation started", zap.Int("chars", len(text)))

	result, err := s.translator.Translate(ctx, domain.TranslationRequest{
		Text:               text,
		SourceLang:         sourceLang,
		TargetLang:         targetLang,
		PreserveFormatting: preserveFormatting,
	})
	if err == nil && result == nil {
		err = &domain.TranslationError{Message: "empty response from translation service"}
	}
	if err != nil {
		var te *domain.TranslationError
		if !errors.As(err, &te) {
			err = &domain.TranslationError{Message: err.Error(), Err: err}
		}
		log.Warn("Translation failed", zap.Error(err))
		return s.finish(domain.SessionState{Phase: domain.PhaseFailed, Err: err}), nil
	}

	record := domain.TranslationRecord{
		ID:             s.newID(),
		Original:       text,
		Translated:     result.TranslatedText,
		SourceLang:     sourceLang,
		TargetLang:     targetLang,
		Timestamp:      s.now().UTC(),
		ElapsedSeconds: result.ElapsedSeconds,
	}
	s.history.Append(ctx, record)

	log.Info("Translation completed",
		zap.String("record_id", record.ID),
		zap.Float64("elapsed_seconds", record.ElapsedSeconds),
	)

	s.mu.Lock()
	s.display = record.Display()
	s.mu.Unlock()

	return s.finish(domain.SessionState{Phase: domain.PhaseSucceeded, Result: result, Record: &record}), nil
}

func (s *SessionController) finish(state domain.SessionState) domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	return state
}

// ClearWorkingText empties the text on display once the user has confirmed.
// History is not touched. It reports whether anything was cleared.
func (s *SessionController) ClearWorkingText(confirmed bool) bool {
	if !confirmed {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.display = domain.DisplayState{}
	return true
}

// LoadFromHistory returns the display projection of a stored record.
// Neither the history nor the session state is changed.
func (s *SessionController) LoadFromHistory(record domain.TranslationRecord) domain.DisplayState {
	return record.Display()
}

// ShowOnDisplay replaces the text on display, for example with a loaded history entry
func (s *SessionController) ShowOnDisplay(display domain.DisplayState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.display = display
}
