package domain

import (
	"time"

	"github.com/google/uuid"
)

// Pictogram is a PECS record: a communication card with an image and one
// name per language. User-authored cards carry a free-text NameCustom
// instead of translations.
type Pictogram struct {
	ID         uuid.UUID
	ImageURL   string
	IsCustom   bool
	NameCustom *string
	UserID     *uuid.UUID
	CreatedAt  time.Time
}

// Translation is a language-specific name for a pictogram.
// (pictogram_id, language_code) is unique.
type Translation struct {
	ID           uuid.UUID
	PictogramID  uuid.UUID
	LanguageCode string
	Name         string
}

// FuzzyHit is one row of a trigram-ranked store search. TranslationName is
// nil for hits matched on the custom name.
type FuzzyHit struct {
	Pictogram
	TranslationName *string
	Similarity      float64
}

// Name returns the matchable display name of the hit: the translation name
// when present, otherwise the custom name, otherwise "".
func (h FuzzyHit) Name() string {
	if h.TranslationName != nil && *h.TranslationName != "" {
		return *h.TranslationName
	}
	if h.Pictogram.NameCustom != nil {
		return *h.Pictogram.NameCustom
	}
	return ""
}

// Candidate is an entry of the static matchable corpus. The JSON corpus
// files use the historical Italian field names.
type Candidate struct {
	ID   int    `json:"id"`
	Name string `json:"nome"`
}
