package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/kazlearn/pkg/models"
)

// LanguageRepository handles database operations for languages
type LanguageRepository struct {
	db *sqlx.DB
}

// NewLanguageRepository creates a new repository instance
func NewLanguageRepository(db *sqlx.DB) *LanguageRepository {
	return &LanguageRepository{db: db}
}

// GetAll returns active languages ordered by code
func (r *LanguageRepository) GetAll() ([]models.Language, error) {
	var languages []models.Language
	err := r.db.Select(&languages,
		"SELECT * FROM languages WHERE is_active = true ORDER BY language_code")
	if err != nil {
		return nil, fmt.Errorf("failed to get languages: %v", err)
	}
	return languages, nil
}

// GetByCode returns a language by its ISO code
func (r *LanguageRepository) GetByCode(code string) (*models.Language, error) {
	var language models.Language
	err := r.db.Get(&language,
		r.db.Rebind("SELECT * FROM languages WHERE language_code = ?"), code)
	if err != nil {
		return nil, err
	}
	return &language, nil
}

// Create inserts a new language
func (r *LanguageRepository) Create(language *models.Language) error {
	if r.db.DriverName() == "postgres" {
		query := r.db.Rebind(`
			INSERT INTO languages (language_code, language_name, is_active)
			VALUES (?, ?, true)
			RETURNING id, created_at
		`)
		return r.db.QueryRow(query, language.LanguageCode, language.LanguageName).
			Scan(&language.ID, &language.CreatedAt)
	}

	result, err := r.db.Exec(`
		INSERT INTO languages (language_code, language_name, is_active)
		VALUES (?, ?, true)
	`, language.LanguageCode, language.LanguageName)
	if err != nil {
		return fmt.Errorf("failed to create language: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	language.ID = int(id)
	return nil
}
