package testutil

import (
	"fmt"
	"time"

	"techtranslator/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestRecord creates a test translation record
func NewTestRecord(id, original, translated string) domain.TranslationRecord {
	return domain.TranslationRecord{
		ID:             id,
		Original:       original,
		Translated:     translated,
		SourceLang:     "en",
		TargetLang:     "pt",
		Timestamp:      time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC),
		ElapsedSeconds: 0.5,
	}
}

// NewNumberedRecords creates n records numbered from 1, in the given order
func NewNumberedRecords(n int) []domain.TranslationRecord {
	records := make([]domain.TranslationRecord, 0, n)
	for i := 1; i <= n; i++ {
		records = append(records, NewTestRecord(
			fmt.Sprintf("id-%d", i),
			fmt.Sprintf("text %d", i),
			fmt.Sprintf("texto %d", i),
		))
	}
	return records
}
