package service

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"techtranslator/internal/domain"
)

// MaxDocumentSize limits the size of uploaded documents
const MaxDocumentSize = 1 << 20

// IsSupportedDocument reports whether a file can be read as source text
func IsSupportedDocument(name, mimeType string) bool {
	if strings.HasPrefix(strings.ToLower(mimeType), "text/plain") {
		return true
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md":
		return true
	}
	return false
}

// ReadDocument returns the text content of a plain text or markdown file
func ReadDocument(name, mimeType string, r io.Reader) (string, error) {
	if !IsSupportedDocument(name, mimeType) {
		return "", &domain.UnsupportedFormatError{FileName: name, MIMEType: mimeType}
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	if len(data) > MaxDocumentSize {
		return "", fmt.Errorf("file %s is larger than %d bytes", name, MaxDocumentSize)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("file %s is not valid UTF-8", name)
	}

	return strings.TrimPrefix(string(data), "\ufeff"), nil
}
