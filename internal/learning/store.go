package learning

import (
	"time"

	"github.com/example/kazlearn/pkg/models"
)

// Store is the persistence contract of the progress engine. Implementations
// must return ErrNotFound for a missing (user, word) pair and keep the
// uniqueness constraint on it.
type Store interface {
	// Get returns the record for the pair
	Get(userID, wordID int) (*models.WordProgress, error)
	// Create inserts a fresh record; if a record for the pair already exists
	// it returns the existing one untouched
	Create(p *models.WordProgress) (*models.WordProgress, error)
	// UpdateWithLock applies fn to the current record and writes the result as
	// a single atomic read-modify-write
	UpdateWithLock(userID, wordID int, fn func(p *models.WordProgress) error) (*models.WordProgress, error)
	// Delete hard-deletes the record; reports whether a row existed
	Delete(userID, wordID int) (bool, error)
	// DueForReview returns records with next_review_at <= now in one of the
	// active learning statuses, most overdue first
	DueForReview(userID int, now time.Time, limit int) ([]models.WordProgressWithWord, error)
	// List returns the user's records joined with word data
	List(userID int, f ListFilter) ([]models.WordProgressWithWord, error)
	// Aggregate folds the user's records into stats; fills the
	// progress-derived fields only
	Aggregate(userID int, now time.Time) (*models.LearningStats, error)
}

// ListFilter narrows List queries
type ListFilter struct {
	Status            models.LearningStatus // empty means all
	CategoryID        int
	DifficultyLevelID int
	LanguageCode      string // language of the joined translation
	Limit             int
	Offset            int
}

// Catalogue is the word-existence check consumed from the catalogue side
type Catalogue interface {
	WordExists(wordID int) (bool, error)
}
