package domain

// AutoDetect is the source language code that asks the service to detect the language
const AutoDetect = "auto"

// Languages maps supported language codes to display names
var Languages = map[string]string{
	"pt":       "Português",
	"en":       "Inglês",
	"es":       "Espanhol",
	"fr":       "Francês",
	"de":       "Alemão",
	"it":       "Italiano",
	"ru":       "Russo",
	"ja":       "Japonês",
	"ko":       "Coreano",
	"zh":       "Chinês",
	"ar":       "Árabe",
	AutoDetect: "Auto",
}

// LanguageName returns the display name of a code, or the code itself if unknown
func LanguageName(code string) string {
	if name, ok := Languages[code]; ok {
		return name
	}
	return code
}
