package service

import (
	"context"
	"encoding/json"
	"sync"

	"techtranslator/internal/domain"
	"techtranslator/internal/repository"

	"go.uber.org/zap"
)

const (
	// HistoryLimit is the maximum number of records kept in history
	HistoryLimit = 50

	// DefaultHistoryKey is the key the history list is stored under
	DefaultHistoryKey = "translationHistory"
)

// HistoryStore keeps past translations, most recent first, bounded by HistoryLimit.
// The whole list is stored as JSON under a single key. Persistence is best effort:
// read or write failures are logged and never returned to the caller.
type HistoryStore struct {
	kv     repository.KVStore
	key    string
	logger *zap.Logger

	mu sync.Mutex
}

// NewHistoryStore creates a history store persisted in kv under key
func NewHistoryStore(kv repository.KVStore, key string, logger *zap.Logger) *HistoryStore {
	return &HistoryStore{
		kv:     kv,
		key:    key,
		logger: logger.Named("HistoryStore").With(zap.String("key", key)),
	}
}

// Append inserts record at the front, dropping the oldest records above the limit
func (s *HistoryStore) Append(ctx context.Context, record domain.TranslationRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.load(ctx)

	updated := make([]domain.TranslationRecord, 0, len(history)+1)
	updated = append(updated, record)
	updated = append(updated, history...)
	if len(updated) > HistoryLimit {
		s.logger.Debug("Evicting oldest history records", zap.Int("evicted", len(updated)-HistoryLimit))
		updated = updated[:HistoryLimit]
	}

	s.save(ctx, updated)
}

// List returns a snapshot of the history, most recent first
func (s *HistoryStore) List(ctx context.Context) []domain.TranslationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

// Clear removes all records
func (s *HistoryStore) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, s.key); err != nil {
		s.logger.Error("Failed to clear history", zap.Error(err))
		return
	}
	s.logger.Info("History cleared")
}

// FindByIndex returns the record at position i of the most-recent-first list.
// Positions shift on every Append; prefer FindByID.
func (s *HistoryStore) FindByIndex(ctx context.Context, i int) (domain.TranslationRecord, bool) {
	history := s.List(ctx)
	if i < 0 || i >= len(history) {
		return domain.TranslationRecord{}, false
	}
	return history[i], true
}

// FindByID returns the record with the given id
func (s *HistoryStore) FindByID(ctx context.Context, id string) (domain.TranslationRecord, bool) {
	if id == "" {
		return domain.TranslationRecord{}, false
	}
	for _, record := range s.List(ctx) {
		if record.ID == id {
			return record, true
		}
	}
	return domain.TranslationRecord{}, false
}

// load reads the persisted list; any failure yields an empty list
func (s *HistoryStore) load(ctx context.Context) []domain.TranslationRecord {
	raw, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.logger.Error("Failed to load history", zap.Error(err))
		return []domain.TranslationRecord{}
	}
	if !found || raw == "" {
		return []domain.TranslationRecord{}
	}

	var history []domain.TranslationRecord
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		s.logger.Warn("Stored history is malformed, treating as empty", zap.Error(err))
		return []domain.TranslationRecord{}
	}
	if history == nil {
		return []domain.TranslationRecord{}
	}
	return history
}

func (s *HistoryStore) save(ctx context.Context, history []domain.TranslationRecord) {
	data, err := json.Marshal(history)
	if err != nil {
		s.logger.Error("Failed to encode history", zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		s.logger.Error("Failed to save history", zap.Error(err), zap.Int("records", len(history)))
	}
}
