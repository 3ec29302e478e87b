package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/example/kazlearn/pkg/models"
)

// WordRepository handles database operations for the word catalogue
type WordRepository struct {
	db *sqlx.DB
}

// NewWordRepository creates a new repository instance
func NewWordRepository(db *sqlx.DB) *WordRepository {
	return &WordRepository{db: db}
}

// WordFilter narrows catalogue listing queries
type WordFilter struct {
	CategoryID        int
	WordTypeID        int
	DifficultyLevelID int
	LanguageCode      string // language of the joined translation, defaults to "en"
	Limit             int
	Offset            int
}

// Create inserts a new word
func (r *WordRepository) Create(word *models.Word) error {
	if r.db.DriverName() == "postgres" {
		query := r.db.Rebind(`
			INSERT INTO kazakh_words (kazakh_word, kazakh_cyrillic, word_type_id, category_id, difficulty_level_id)
			VALUES (?, ?, ?, ?, ?)
			RETURNING id, created_at
		`)
		return r.db.QueryRow(query,
			word.KazakhWord, word.KazakhCyrillic, word.WordTypeID, word.CategoryID, word.DifficultyLevelID,
		).Scan(&word.ID, &word.CreatedAt)
	}

	result, err := r.db.Exec(`
		INSERT INTO kazakh_words (kazakh_word, kazakh_cyrillic, word_type_id, category_id, difficulty_level_id)
		VALUES (?, ?, ?, ?, ?)
	`, word.KazakhWord, word.KazakhCyrillic, word.WordTypeID, word.CategoryID, word.DifficultyLevelID)
	if err != nil {
		return fmt.Errorf("failed to create word: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	word.ID = int(id)
	return nil
}

// GetByID returns a word by ID
func (r *WordRepository) GetByID(id int) (*models.Word, error) {
	var word models.Word
	err := r.db.Get(&word, r.db.Rebind("SELECT * FROM kazakh_words WHERE id = ?"), id)
	if err != nil {
		return nil, err
	}
	return &word, nil
}

// GetByKazakh returns a word by its Kazakh form within a category; used by the
// importer for upserts
func (r *WordRepository) GetByKazakh(kazakhWord string, categoryID int) (*models.Word, error) {
	var word models.Word
	err := r.db.Get(&word,
		r.db.Rebind("SELECT * FROM kazakh_words WHERE kazakh_word = ? AND category_id = ?"),
		kazakhWord, categoryID)
	if err != nil {
		return nil, err
	}
	return &word, nil
}

// WordExists reports whether a word id is present in the catalogue
func (r *WordRepository) WordExists(id int) (bool, error) {
	var n int
	err := r.db.Get(&n, r.db.Rebind("SELECT COUNT(*) FROM kazakh_words WHERE id = ?"), id)
	if err != nil {
		return false, fmt.Errorf("failed to check word existence: %v", err)
	}
	return n > 0, nil
}

// summarySelect joins a word with its category, type, difficulty number and the
// translation for one language. Explicit join, no per-row lookups.
const summarySelect = `
	SELECT w.id, w.kazakh_word, w.kazakh_cyrillic,
		c.category_name, wt.type_name, dl.level_number AS difficulty_level,
		COALESCE(t.translation, '') AS translation
	FROM kazakh_words w
	JOIN categories c ON w.category_id = c.id
	JOIN word_types wt ON w.word_type_id = wt.id
	JOIN difficulty_levels dl ON w.difficulty_level_id = dl.id
	LEFT JOIN translations t ON t.word_id = w.id
		AND t.language_id = (SELECT id FROM languages WHERE language_code = ?)
`

// GetSummaries returns flat word summaries with optional filters
func (r *WordRepository) GetSummaries(f WordFilter) ([]models.WordSummary, error) {
	lang := f.LanguageCode
	if lang == "" {
		lang = "en"
	}

	query := summarySelect
	args := []interface{}{lang}

	var conds []string
	if f.CategoryID > 0 {
		conds = append(conds, "w.category_id = ?")
		args = append(args, f.CategoryID)
	}
	if f.WordTypeID > 0 {
		conds = append(conds, "w.word_type_id = ?")
		args = append(args, f.WordTypeID)
	}
	if f.DifficultyLevelID > 0 {
		conds = append(conds, "w.difficulty_level_id = ?")
		args = append(args, f.DifficultyLevelID)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY w.kazakh_word"

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, f.Offset)

	var words []models.WordSummary
	err := r.db.Select(&words, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get word summaries: %v", err)
	}
	return words, nil
}

// Search matches the Kazakh form, Cyrillic form or translation against a
// pattern
func (r *WordRepository) Search(pattern, languageCode string, limit int) ([]models.WordSummary, error) {
	if languageCode == "" {
		languageCode = "en"
	}
	if limit <= 0 {
		limit = 20
	}
	like := "%" + strings.ToLower(pattern) + "%"

	query := summarySelect + `
		WHERE LOWER(w.kazakh_word) LIKE ? OR LOWER(w.kazakh_cyrillic) LIKE ? OR LOWER(COALESCE(t.translation, '')) LIKE ?
		ORDER BY w.kazakh_word
		LIMIT ?
	`
	var words []models.WordSummary
	err := r.db.Select(&words, r.db.Rebind(query), languageCode, like, like, like, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search words: %v", err)
	}
	return words, nil
}

// GetRandom returns random word summaries, optionally filtered. Used to pad
// practice sessions.
func (r *WordRepository) GetRandom(count int, f WordFilter) ([]models.WordSummary, error) {
	lang := f.LanguageCode
	if lang == "" {
		lang = "en"
	}
	if count <= 0 {
		count = 10
	}

	query := summarySelect
	args := []interface{}{lang}

	var conds []string
	if f.CategoryID > 0 {
		conds = append(conds, "w.category_id = ?")
		args = append(args, f.CategoryID)
	}
	if f.DifficultyLevelID > 0 {
		conds = append(conds, "w.difficulty_level_id = ?")
		args = append(args, f.DifficultyLevelID)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	// RANDOM() works on both postgres and sqlite
	query += " ORDER BY RANDOM() LIMIT ?"
	args = append(args, count)

	var words []models.WordSummary
	err := r.db.Select(&words, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get random words: %v", err)
	}
	return words, nil
}

// GetTranslations returns all translations of a word
func (r *WordRepository) GetTranslations(wordID int) ([]models.Translation, error) {
	var translations []models.Translation
	err := r.db.Select(&translations,
		r.db.Rebind("SELECT * FROM translations WHERE word_id = ?"), wordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get translations: %v", err)
	}
	return translations, nil
}

// AddTranslation inserts a translation for a word
func (r *WordRepository) AddTranslation(t *models.Translation) error {
	if r.db.DriverName() == "postgres" {
		query := r.db.Rebind(`
			INSERT INTO translations (word_id, language_id, translation)
			VALUES (?, ?, ?)
			RETURNING id, created_at
		`)
		return r.db.QueryRow(query, t.WordID, t.LanguageID, t.Translation).
			Scan(&t.ID, &t.CreatedAt)
	}

	result, err := r.db.Exec(`
		INSERT INTO translations (word_id, language_id, translation)
		VALUES (?, ?, ?)
	`, t.WordID, t.LanguageID, t.Translation)
	if err != nil {
		return fmt.Errorf("failed to add translation: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	t.ID = int(id)
	return nil
}

// HasTranslation reports whether a word already has a translation for a language
func (r *WordRepository) HasTranslation(wordID, languageID int) (bool, error) {
	var n int
	err := r.db.Get(&n,
		r.db.Rebind("SELECT COUNT(*) FROM translations WHERE word_id = ? AND language_id = ?"),
		wordID, languageID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetPronunciations returns all pronunciations of a word
func (r *WordRepository) GetPronunciations(wordID int) ([]models.Pronunciation, error) {
	var pronunciations []models.Pronunciation
	err := r.db.Select(&pronunciations,
		r.db.Rebind("SELECT * FROM pronunciations WHERE word_id = ?"), wordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pronunciations: %v", err)
	}
	return pronunciations, nil
}

// AddPronunciation inserts a pronunciation for a word
func (r *WordRepository) AddPronunciation(p *models.Pronunciation) error {
	if r.db.DriverName() == "postgres" {
		query := r.db.Rebind(`
			INSERT INTO pronunciations (word_id, language_id, pronunciation, pronunciation_system, audio_file_path)
			VALUES (?, ?, ?, ?, ?)
			RETURNING id, created_at
		`)
		return r.db.QueryRow(query,
			p.WordID, p.LanguageID, p.Pronunciation, p.PronunciationSystem, p.AudioFilePath,
		).Scan(&p.ID, &p.CreatedAt)
	}

	result, err := r.db.Exec(`
		INSERT INTO pronunciations (word_id, language_id, pronunciation, pronunciation_system, audio_file_path)
		VALUES (?, ?, ?, ?, ?)
	`, p.WordID, p.LanguageID, p.Pronunciation, p.PronunciationSystem, p.AudioFilePath)
	if err != nil {
		return fmt.Errorf("failed to add pronunciation: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	p.ID = int(id)
	return nil
}

// GetImages returns the images of a word, primary first
func (r *WordRepository) GetImages(wordID int) ([]models.WordImage, error) {
	var images []models.WordImage
	err := r.db.Select(&images,
		r.db.Rebind("SELECT * FROM word_images WHERE word_id = ? ORDER BY is_primary DESC, id"), wordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get word images: %v", err)
	}
	return images, nil
}

// AddImage inserts an image for a word
func (r *WordRepository) AddImage(img *models.WordImage) error {
	if r.db.DriverName() == "postgres" {
		query := r.db.Rebind(`
			INSERT INTO word_images (word_id, image_path, image_url, image_type, alt_text, is_primary)
			VALUES (?, ?, ?, ?, ?, ?)
			RETURNING id, created_at
		`)
		return r.db.QueryRow(query,
			img.WordID, img.ImagePath, img.ImageURL, img.ImageType, img.AltText, img.IsPrimary,
		).Scan(&img.ID, &img.CreatedAt)
	}

	result, err := r.db.Exec(`
		INSERT INTO word_images (word_id, image_path, image_url, image_type, alt_text, is_primary)
		VALUES (?, ?, ?, ?, ?, ?)
	`, img.WordID, img.ImagePath, img.ImageURL, img.ImageType, img.AltText, img.IsPrimary)
	if err != nil {
		return fmt.Errorf("failed to add word image: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	img.ID = int(id)
	return nil
}

// SetPrimaryImage marks one image primary and clears the flag on the word's
// other images
func (r *WordRepository) SetPrimaryImage(imageID int) error {
	var wordID int
	err := r.db.Get(&wordID,
		r.db.Rebind("SELECT word_id FROM word_images WHERE id = ?"), imageID)
	if err != nil {
		if err == sql.ErrNoRows {
			return err
		}
		return fmt.Errorf("failed to look up image: %v", err)
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		r.db.Rebind("UPDATE word_images SET is_primary = false WHERE word_id = ?"), wordID); err != nil {
		return fmt.Errorf("failed to clear primary flags: %v", err)
	}
	if _, err := tx.Exec(
		r.db.Rebind("UPDATE word_images SET is_primary = true WHERE id = ?"), imageID); err != nil {
		return fmt.Errorf("failed to set primary image: %v", err)
	}
	return tx.Commit()
}
