package models

import "time"

// Language is a target language words can be translated into
type Language struct {
	ID           int       `json:"id" db:"id"`
	LanguageCode string    `json:"language_code" db:"language_code"` // ISO code, e.g. "en", "ru"
	LanguageName string    `json:"language_name" db:"language_name"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
