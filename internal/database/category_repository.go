package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/kazlearn/pkg/models"
)

// CategoryRepository handles database operations for word categories
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new repository instance
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetAll returns active categories ordered by name
func (r *CategoryRepository) GetAll() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Select(&categories,
		"SELECT * FROM categories WHERE is_active = true ORDER BY category_name")
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %v", err)
	}
	return categories, nil
}

// GetByID returns a category by ID
func (r *CategoryRepository) GetByID(id int) (*models.Category, error) {
	var category models.Category
	err := r.db.Get(&category, r.db.Rebind("SELECT * FROM categories WHERE id = ?"), id)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetByName returns a category by its canonical name
func (r *CategoryRepository) GetByName(name string) (*models.Category, error) {
	var category models.Category
	err := r.db.Get(&category,
		r.db.Rebind("SELECT * FROM categories WHERE category_name = ?"), name)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Create inserts a new category
func (r *CategoryRepository) Create(category *models.Category) error {
	if r.db.DriverName() == "postgres" {
		query := r.db.Rebind(`
			INSERT INTO categories (category_name, description, is_active)
			VALUES (?, ?, true)
			RETURNING id, created_at
		`)
		return r.db.QueryRow(query, category.CategoryName, category.Description).
			Scan(&category.ID, &category.CreatedAt)
	}

	result, err := r.db.Exec(`
		INSERT INTO categories (category_name, description, is_active)
		VALUES (?, ?, true)
	`, category.CategoryName, category.Description)
	if err != nil {
		return fmt.Errorf("failed to create category: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	category.ID = int(id)
	return nil
}

// GetTranslations returns localized names for one category
func (r *CategoryRepository) GetTranslations(categoryID int) ([]models.CategoryTranslation, error) {
	var translations []models.CategoryTranslation
	err := r.db.Select(&translations,
		r.db.Rebind("SELECT * FROM category_translations WHERE category_id = ?"), categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category translations: %v", err)
	}
	return translations, nil
}

// AddTranslation inserts a localized name for a category
func (r *CategoryRepository) AddTranslation(t *models.CategoryTranslation) error {
	if r.db.DriverName() == "postgres" {
		query := r.db.Rebind(`
			INSERT INTO category_translations (category_id, language_id, translated_name, translated_description)
			VALUES (?, ?, ?, ?)
			RETURNING id, created_at
		`)
		return r.db.QueryRow(query, t.CategoryID, t.LanguageID, t.TranslatedName, t.TranslatedDescription).
			Scan(&t.ID, &t.CreatedAt)
	}

	result, err := r.db.Exec(`
		INSERT INTO category_translations (category_id, language_id, translated_name, translated_description)
		VALUES (?, ?, ?, ?)
	`, t.CategoryID, t.LanguageID, t.TranslatedName, t.TranslatedDescription)
	if err != nil {
		return fmt.Errorf("failed to add category translation: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	t.ID = int(id)
	return nil
}
