package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when there is no text to translate
	ErrEmptyInput = errors.New("empty input")

	// ErrSessionBusy is returned when a translation is already in flight
	ErrSessionBusy = errors.New("translation already in progress")
)

// TranslationError describes a failed call to the translation service.
// Message is the service-provided message when available.
type TranslationError struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *TranslationError) Error() string {
	return e.Message
}

func (e *TranslationError) Unwrap() error {
	return e.Err
}

// UnsupportedFormatError is returned for uploaded files that are not plain text
type UnsupportedFormatError struct {
	FileName string
	MIMEType string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %s (%s)", e.FileName, e.MIMEType)
}
