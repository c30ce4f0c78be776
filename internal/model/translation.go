package model

import "time"

// Translation is a persisted translation entry. TranslatedText is always the
// model output for the current SourceText and language pair.
type Translation struct {
	ID             int64
	SourceText     string
	TranslatedText string
	SourceLang     string
	TargetLang     string
	CreatedAt      time.Time
}
