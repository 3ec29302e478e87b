package models

import "time"

// Category groups words by theme (animals, food, ...)
type Category struct {
	ID           int       `json:"id" db:"id"`
	CategoryName string    `json:"category_name" db:"category_name"`
	Description  string    `json:"description" db:"description"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// CategoryTranslation is a category name localized for one language
type CategoryTranslation struct {
	ID                    int       `json:"id" db:"id"`
	CategoryID            int       `json:"category_id" db:"category_id"`
	LanguageID            int       `json:"language_id" db:"language_id"`
	TranslatedName        string    `json:"translated_name" db:"translated_name"`
	TranslatedDescription string    `json:"translated_description" db:"translated_description"`
	CreatedAt             time.Time `json:"created_at" db:"created_at"`
}
