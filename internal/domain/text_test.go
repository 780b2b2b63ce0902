package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected TextStats
	}{
		{
			name:     "empty text",
			text:     "",
			expected: TextStats{Chars: 0, Words: 0},
		},
		{
			name:     "only whitespace",
			text:     "  \n\t ",
			expected: TextStats{Chars: 5, Words: 0},
		},
		{
			name:     "simple sentence",
			text:     "hello brave world",
			expected: TextStats{Chars: 17, Words: 3},
		},
		{
			name:     "multibyte characters",
			text:     "tradução técnica",
			expected: TextStats{Chars: 16, Words: 2},
		},
		{
			name:     "newlines between words",
			text:     "one\n\ntwo\nthree",
			expected: TextStats{Chars: 14, Words: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CountText(tt.text))
		})
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		limit    int
		expected string
	}{
		{
			name:     "short text unchanged",
			text:     "hello",
			limit:    10,
			expected: "hello",
		},
		{
			name:     "exact length unchanged",
			text:     "hello",
			limit:    5,
			expected: "hello",
		},
		{
			name:     "long text cut",
			text:     "hello world",
			limit:    5,
			expected: "hello...",
		},
		{
			name:     "cut on rune boundary",
			text:     "ãããããã",
			limit:    3,
			expected: "ããã...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Preview(tt.text, tt.limit))
		})
	}
}
