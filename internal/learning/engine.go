package learning

import (
	"database/sql"
	"strings"
	"time"

	"github.com/example/kazlearn/internal/spaced_repetition"
	"github.com/example/kazlearn/pkg/models"
)

// Engine owns the per-(user, word) learning record: status, counters and the
// spaced-repetition schedule. It holds no state of its own; everything lives
// in the Store.
type Engine struct {
	store   Store
	catalog Catalogue
	now     func() time.Time
}

// NewEngine creates a progress engine over a store and a catalogue
func NewEngine(store Store, catalog Catalogue) *Engine {
	return &Engine{
		store:   store,
		catalog: catalog,
		now:     time.Now,
	}
}

// AddToList adds a word to the user's learning list. Re-adding an existing
// pair returns the existing record unchanged. Unknown words are rejected on
// every path, bulk included.
func (e *Engine) AddToList(userID, wordID int, status models.LearningStatus) (*models.WordProgress, error) {
	if status == "" {
		status = models.StatusWantToLearn
	}
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	exists, err := e.catalog.WordExists(wordID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUnknownWord
	}

	if existing, err := e.store.Get(userID, wordID); err == nil {
		return existing, nil
	} else if err != ErrNotFound {
		return nil, err
	}

	now := e.now().UTC()
	return e.store.Create(&models.WordProgress{
		UserID:             userID,
		WordID:             wordID,
		Status:             status,
		RepetitionInterval: spaced_repetition.DefaultInterval,
		EaseFactor:         spaced_repetition.DefaultEaseFactor,
		AddedAt:            now,
	})
}

// Get returns the record for the pair
func (e *Engine) Get(userID, wordID int) (*models.WordProgress, error) {
	return e.store.Get(userID, wordID)
}

// SetStatus moves the record to a new status. Transitions are unrestricted;
// the only coupled side effect is stamping first_learned_at on the first entry
// into learned.
func (e *Engine) SetStatus(userID, wordID int, status models.LearningStatus) (*models.WordProgress, error) {
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	now := e.now().UTC()
	return e.store.UpdateWithLock(userID, wordID, func(p *models.WordProgress) error {
		p.Status = status
		if status == models.StatusLearned && !p.FirstLearnedAt.Valid {
			p.FirstLearnedAt = sql.NullTime{Time: now, Valid: true}
		}
		return nil
	})
}

// RecordAnswer records one correct/incorrect answer: bumps the counters,
// stamps last_practiced_at and advances the spaced-repetition schedule. The
// whole update is applied atomically by the store.
func (e *Engine) RecordAnswer(userID, wordID int, wasCorrect bool) (*models.WordProgress, error) {
	now := e.now().UTC()
	return e.store.UpdateWithLock(userID, wordID, func(p *models.WordProgress) error {
		p.TimesSeen++
		if wasCorrect {
			p.TimesCorrect++
		} else {
			p.TimesIncorrect++
		}
		p.LastPracticedAt = sql.NullTime{Time: now, Valid: true}
		spaced_repetition.Process(p, wasCorrect, now)
		return nil
	})
}

// SetDifficultyRating stores the user's own difficulty judgement; independent
// of the algorithmic ease factor
func (e *Engine) SetDifficultyRating(userID, wordID int, rating models.DifficultyRating) (*models.WordProgress, error) {
	if !models.ValidRating(rating) {
		return nil, ErrInvalidRating
	}
	return e.store.UpdateWithLock(userID, wordID, func(p *models.WordProgress) error {
		p.DifficultyRating = sql.NullString{String: string(rating), Valid: true}
		return nil
	})
}

// SetNotes replaces the user's notes on the word
func (e *Engine) SetNotes(userID, wordID int, notes string) (*models.WordProgress, error) {
	return e.store.UpdateWithLock(userID, wordID, func(p *models.WordProgress) error {
		p.UserNotes = sql.NullString{String: notes, Valid: true}
		return nil
	})
}

// Remove hard-deletes the record; reports whether it existed
func (e *Engine) Remove(userID, wordID int) (bool, error) {
	return e.store.Delete(userID, wordID)
}

// DueForReview returns up to limit records due for practice, most overdue
// first. Pure read; repeated calls never alter the schedule.
func (e *Engine) DueForReview(userID, limit int) ([]models.WordProgressWithWord, error) {
	if limit <= 0 {
		limit = 20
	}
	return e.store.DueForReview(userID, e.now().UTC(), limit)
}

// List returns the user's learning words with filters
func (e *Engine) List(userID int, f ListFilter) ([]models.WordProgressWithWord, error) {
	if f.Status != "" && !models.ValidStatus(f.Status) {
		return nil, ErrInvalidStatus
	}
	return e.store.List(userID, f)
}

// Stats folds the user's records into aggregate statistics
func (e *Engine) Stats(userID int) (*models.LearningStats, error) {
	return e.store.Aggregate(userID, e.now().UTC())
}

// ActiveStatuses are the statuses included in review selection. want_to_learn
// is not yet being practiced and mastered no longer needs it.
func ActiveStatuses() []models.LearningStatus {
	return []models.LearningStatus{
		models.StatusLearning,
		models.StatusLearned,
		models.StatusReview,
	}
}

// ActiveStatusList renders the active statuses for an SQL IN clause
func ActiveStatusList() string {
	statuses := ActiveStatuses()
	quoted := make([]string, len(statuses))
	for i, s := range statuses {
		quoted[i] = "'" + string(s) + "'"
	}
	return strings.Join(quoted, ", ")
}
