package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/kazlearn/pkg/models"
)

// SentenceRepository handles database operations for example sentences
type SentenceRepository struct {
	db *sqlx.DB
}

// NewSentenceRepository creates a new repository instance
func NewSentenceRepository(db *sqlx.DB) *SentenceRepository {
	return &SentenceRepository{db: db}
}

// Create inserts a new example sentence
func (r *SentenceRepository) Create(s *models.ExampleSentence) error {
	if s.DifficultyLevel <= 0 {
		s.DifficultyLevel = 1
	}

	if r.db.DriverName() == "postgres" {
		query := r.db.Rebind(`
			INSERT INTO example_sentences (word_id, kazakh_sentence, difficulty_level, usage_context)
			VALUES (?, ?, ?, ?)
			RETURNING id, created_at
		`)
		return r.db.QueryRow(query, s.WordID, s.KazakhSentence, s.DifficultyLevel, s.UsageContext).
			Scan(&s.ID, &s.CreatedAt)
	}

	result, err := r.db.Exec(`
		INSERT INTO example_sentences (word_id, kazakh_sentence, difficulty_level, usage_context)
		VALUES (?, ?, ?, ?)
	`, s.WordID, s.KazakhSentence, s.DifficultyLevel, s.UsageContext)
	if err != nil {
		return fmt.Errorf("failed to create example sentence: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	s.ID = int(id)
	return nil
}

// GetByID returns an example sentence by ID
func (r *SentenceRepository) GetByID(id int) (*models.ExampleSentence, error) {
	var s models.ExampleSentence
	err := r.db.Get(&s, r.db.Rebind("SELECT * FROM example_sentences WHERE id = ?"), id)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByWord returns the example sentences of a word
func (r *SentenceRepository) GetByWord(wordID int) ([]models.ExampleSentence, error) {
	var sentences []models.ExampleSentence
	err := r.db.Select(&sentences,
		r.db.Rebind("SELECT * FROM example_sentences WHERE word_id = ? ORDER BY difficulty_level, id"),
		wordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get example sentences: %v", err)
	}
	return sentences, nil
}

// Delete removes an example sentence; returns whether it existed
func (r *SentenceRepository) Delete(id int) (bool, error) {
	result, err := r.db.Exec(r.db.Rebind("DELETE FROM example_sentences WHERE id = ?"), id)
	if err != nil {
		return false, fmt.Errorf("failed to delete example sentence: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// GetTranslations returns the translations of an example sentence
func (r *SentenceRepository) GetTranslations(sentenceID int) ([]models.ExampleSentenceTranslation, error) {
	var translations []models.ExampleSentenceTranslation
	err := r.db.Select(&translations,
		r.db.Rebind("SELECT * FROM example_sentence_translations WHERE example_sentence_id = ?"),
		sentenceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sentence translations: %v", err)
	}
	return translations, nil
}

// AddTranslation inserts a translation of an example sentence
func (r *SentenceRepository) AddTranslation(t *models.ExampleSentenceTranslation) error {
	if r.db.DriverName() == "postgres" {
		query := r.db.Rebind(`
			INSERT INTO example_sentence_translations (example_sentence_id, language_id, translated_sentence)
			VALUES (?, ?, ?)
			RETURNING id, created_at
		`)
		return r.db.QueryRow(query, t.ExampleSentenceID, t.LanguageID, t.TranslatedSentence).
			Scan(&t.ID, &t.CreatedAt)
	}

	result, err := r.db.Exec(`
		INSERT INTO example_sentence_translations (example_sentence_id, language_id, translated_sentence)
		VALUES (?, ?, ?)
	`, t.ExampleSentenceID, t.LanguageID, t.TranslatedSentence)
	if err != nil {
		return fmt.Errorf("failed to add sentence translation: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	t.ID = int(id)
	return nil
}
