package handler

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"techtranslator/internal/domain"
)

const (
	// maxMessageLength is the Telegram limit for one text message
	maxMessageLength = 4096

	// historyPageSize is how many history entries /history shows
	historyPageSize = 10

	// previewLength is the length of the history preview of the original text
	previewLength = 100
)

var languageCodePattern = regexp.MustCompile(`^[A-Za-z]{2,3}(-[A-Za-z0-9]{2,8})?$`)

// parseLanguageCode validates a user-supplied language code
func parseLanguageCode(arg string, allowAuto bool) (string, bool) {
	code := strings.TrimSpace(arg)
	if strings.EqualFold(code, domain.AutoDetect) {
		return domain.AutoDetect, allowAuto
	}
	if !languageCodePattern.MatchString(code) {
		return "", false
	}
	return code, true
}

// formatSeconds formats an elapsed time the way the service reports it
func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64) + "s"
}

// formatTimestamp formats a record timestamp as dd/mm/yyyy hh:mm:ss
func formatTimestamp(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("02/01/2006 15:04:05")
}

// downloadFileName returns the name of the downloaded translation file
func downloadFileName(t time.Time) string {
	return fmt.Sprintf("traducao_%s.txt", t.Format("2006-01-02"))
}

// renderSettings describes the chat's current options
func renderSettings(s ChatSettings) string {
	formatting := "desligada"
	if s.PreserveFormatting {
		formatting = "ligada"
	}
	return fmt.Sprintf("🌐 %s → %s\n📐 Preservar formatação: %s",
		domain.LanguageName(s.SourceLang),
		domain.LanguageName(s.TargetLang),
		formatting,
	)
}

// renderDisplay renders a translation for the chat
func renderDisplay(d domain.DisplayState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🌐 %s → %s • ⏱ %s\n",
		domain.LanguageName(d.SourceLang),
		domain.LanguageName(d.TargetLang),
		formatSeconds(d.ElapsedSeconds),
	)
	fmt.Fprintf(&b, "📝 %d caracteres • %d palavras\n\n", d.Stats.Chars, d.Stats.Words)
	b.WriteString(d.Translated)
	return b.String()
}

// renderHistory renders the most recent history entries
func renderHistory(records []domain.TranslationRecord, loc *time.Location) string {
	if len(records) == 0 {
		return "Nenhuma tradução no histórico"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🕘 Histórico (%d):\n", len(records))
	for i, record := range records {
		if i == historyPageSize {
			break
		}
		fmt.Fprintf(&b, "\n%d. %s → %s\n   🕒 %s • %s\n   %s\n",
			i+1,
			domain.LanguageName(record.SourceLang),
			domain.LanguageName(record.TargetLang),
			formatTimestamp(record.Timestamp, loc),
			formatSeconds(record.ElapsedSeconds),
			domain.Preview(record.Original, previewLength),
		)
	}
	return b.String()
}

// renderLanguages lists languages sorted by code
func renderLanguages(languages map[string]string) string {
	codes := make([]string, 0, len(languages))
	for code := range languages {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var b strings.Builder
	b.WriteString("🌐 Idiomas suportados:\n")
	for _, code := range codes {
		fmt.Fprintf(&b, "\n%s — %s", code, languages[code])
	}
	return b.String()
}

// splitMessage splits text into chunks that fit in one Telegram message,
// preferring to cut at line breaks
func splitMessage(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var chunks []string
	runes := []rune(text)
	for len(runes) > limit {
		cut := limit
		for i := limit - 1; i > limit/2; i-- {
			if runes[i] == '\n' {
				cut = i + 1
				break
			}
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}
