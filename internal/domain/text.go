package domain

import (
	"strings"
	"unicode/utf8"
)

// TextStats holds character and word counts of a text
type TextStats struct {
	Chars int
	Words int
}

// CountText counts characters (runes) and whitespace-separated words
func CountText(text string) TextStats {
	return TextStats{
		Chars: utf8.RuneCountInString(text),
		Words: len(strings.Fields(text)),
	}
}

// Preview returns at most limit runes of text, with "..." appended when cut
func Preview(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit]) + "..."
}
