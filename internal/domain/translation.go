package domain

import "time"

// TranslationRecord is one entry of the translation history.
// Records are values and are never modified after creation.
type TranslationRecord struct {
	ID             string    `json:"id"`
	Original       string    `json:"original"`
	Translated     string    `json:"translated"`
	SourceLang     string    `json:"sourceLang"`
	TargetLang     string    `json:"targetLang"`
	Timestamp      time.Time `json:"timestamp"`
	ElapsedSeconds float64   `json:"time"`
}

// TranslationRequest is what the user submits for translation
type TranslationRequest struct {
	Text               string
	SourceLang         string
	TargetLang         string
	PreserveFormatting bool
}

// TranslationResult is a successful answer of the translation service
type TranslationResult struct {
	TranslatedText string
	ElapsedSeconds float64
}

// DisplayState is a render-ready projection of a translation
type DisplayState struct {
	Original       string
	Translated     string
	SourceLang     string
	TargetLang     string
	ElapsedSeconds float64
	Stats          TextStats
}

// IsEmpty reports whether there is nothing to display
func (d DisplayState) IsEmpty() bool {
	return d.Original == "" && d.Translated == ""
}

// Display returns the display projection of the record
func (r TranslationRecord) Display() DisplayState {
	return DisplayState{
		Original:       r.Original,
		Translated:     r.Translated,
		SourceLang:     r.SourceLang,
		TargetLang:     r.TargetLang,
		ElapsedSeconds: r.ElapsedSeconds,
		Stats:          CountText(r.Original),
	}
}
