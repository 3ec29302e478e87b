package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/kazlearn/pkg/models"
)

// LookupRepository handles the small reference tables: word types and
// difficulty levels
type LookupRepository struct {
	db *sqlx.DB
}

// NewLookupRepository creates a new repository instance
func NewLookupRepository(db *sqlx.DB) *LookupRepository {
	return &LookupRepository{db: db}
}

// GetWordTypes returns active word types
func (r *LookupRepository) GetWordTypes() ([]models.WordType, error) {
	var types []models.WordType
	err := r.db.Select(&types,
		"SELECT * FROM word_types WHERE is_active = true ORDER BY type_name")
	if err != nil {
		return nil, fmt.Errorf("failed to get word types: %v", err)
	}
	return types, nil
}

// GetWordTypeByName returns one word type by its canonical name
func (r *LookupRepository) GetWordTypeByName(name string) (*models.WordType, error) {
	var wt models.WordType
	err := r.db.Get(&wt, r.db.Rebind("SELECT * FROM word_types WHERE type_name = ?"), name)
	if err != nil {
		return nil, err
	}
	return &wt, nil
}

// CreateWordType inserts a word type
func (r *LookupRepository) CreateWordType(wt *models.WordType) error {
	if r.db.DriverName() == "postgres" {
		query := r.db.Rebind(`
			INSERT INTO word_types (type_name, description, is_active)
			VALUES (?, ?, true)
			RETURNING id, created_at
		`)
		return r.db.QueryRow(query, wt.TypeName, wt.Description).Scan(&wt.ID, &wt.CreatedAt)
	}

	result, err := r.db.Exec(`
		INSERT INTO word_types (type_name, description, is_active)
		VALUES (?, ?, true)
	`, wt.TypeName, wt.Description)
	if err != nil {
		return fmt.Errorf("failed to create word type: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	wt.ID = int(id)
	return nil
}

// GetDifficultyLevels returns active difficulty levels ordered by number
func (r *LookupRepository) GetDifficultyLevels() ([]models.DifficultyLevel, error) {
	var levels []models.DifficultyLevel
	err := r.db.Select(&levels,
		"SELECT * FROM difficulty_levels WHERE is_active = true ORDER BY level_number")
	if err != nil {
		return nil, fmt.Errorf("failed to get difficulty levels: %v", err)
	}
	return levels, nil
}

// GetDifficultyLevelByNumber returns one difficulty level by its 1..5 number
func (r *LookupRepository) GetDifficultyLevelByNumber(number int) (*models.DifficultyLevel, error) {
	var dl models.DifficultyLevel
	err := r.db.Get(&dl,
		r.db.Rebind("SELECT * FROM difficulty_levels WHERE level_number = ?"), number)
	if err != nil {
		return nil, err
	}
	return &dl, nil
}

// CreateDifficultyLevel inserts a difficulty level
func (r *LookupRepository) CreateDifficultyLevel(dl *models.DifficultyLevel) error {
	if r.db.DriverName() == "postgres" {
		query := r.db.Rebind(`
			INSERT INTO difficulty_levels (level_number, level_name, description, is_active)
			VALUES (?, ?, ?, true)
			RETURNING id, created_at
		`)
		return r.db.QueryRow(query, dl.LevelNumber, dl.LevelName, dl.Description).
			Scan(&dl.ID, &dl.CreatedAt)
	}

	result, err := r.db.Exec(`
		INSERT INTO difficulty_levels (level_number, level_name, description, is_active)
		VALUES (?, ?, ?, true)
	`, dl.LevelNumber, dl.LevelName, dl.Description)
	if err != nil {
		return fmt.Errorf("failed to create difficulty level: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	dl.ID = int(id)
	return nil
}
