package models

import (
	"database/sql"
	"time"
)

// LearningStatus is the learning-list state of a word for one user
type LearningStatus string

const (
	StatusWantToLearn LearningStatus = "want_to_learn"
	StatusLearning    LearningStatus = "learning"
	StatusLearned     LearningStatus = "learned"
	StatusMastered    LearningStatus = "mastered"
	StatusReview      LearningStatus = "review"
)

// ValidStatus reports whether s is one of the known learning statuses
func ValidStatus(s LearningStatus) bool {
	switch s {
	case StatusWantToLearn, StatusLearning, StatusLearned, StatusMastered, StatusReview:
		return true
	}
	return false
}

// DifficultyRating is a user's own judgement of a word, separate from the
// algorithmic ease factor
type DifficultyRating string

const (
	RatingVeryEasy DifficultyRating = "very_easy"
	RatingEasy     DifficultyRating = "easy"
	RatingMedium   DifficultyRating = "medium"
	RatingHard     DifficultyRating = "hard"
	RatingVeryHard DifficultyRating = "very_hard"
)

// ValidRating reports whether r is one of the known difficulty ratings
func ValidRating(r DifficultyRating) bool {
	switch r {
	case RatingVeryEasy, RatingEasy, RatingMedium, RatingHard, RatingVeryHard:
		return true
	}
	return false
}

// WordProgress tracks one user's progress with one word. Unique on
// (user_id, word_id).
type WordProgress struct {
	ID     int `json:"id" db:"id"`
	UserID int `json:"user_id" db:"user_id"`
	WordID int `json:"word_id" db:"word_id"`

	Status LearningStatus `json:"status" db:"status"`

	TimesSeen      int `json:"times_seen" db:"times_seen"`
	TimesCorrect   int `json:"times_correct" db:"times_correct"`
	TimesIncorrect int `json:"times_incorrect" db:"times_incorrect"`

	DifficultyRating sql.NullString `json:"difficulty_rating" db:"difficulty_rating"`

	RepetitionInterval int     `json:"repetition_interval" db:"repetition_interval"` // days until next review
	EaseFactor         float64 `json:"ease_factor" db:"ease_factor"`

	AddedAt         time.Time    `json:"added_at" db:"added_at"`
	FirstLearnedAt  sql.NullTime `json:"first_learned_at" db:"first_learned_at"` // set once, never overwritten
	LastPracticedAt sql.NullTime `json:"last_practiced_at" db:"last_practiced_at"`
	NextReviewAt    sql.NullTime `json:"next_review_at" db:"next_review_at"`

	UserNotes sql.NullString `json:"user_notes" db:"user_notes"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// WordProgressWithWord is a progress row joined with catalogue data for list
// views, avoiding per-row lookups
type WordProgressWithWord struct {
	WordProgress
	KazakhWord      string `json:"kazakh_word" db:"kazakh_word"`
	KazakhCyrillic  string `json:"kazakh_cyrillic" db:"kazakh_cyrillic"`
	CategoryName    string `json:"category_name" db:"category_name"`
	DifficultyLevel int    `json:"difficulty_level" db:"difficulty_level"`
	Translation     string `json:"translation" db:"translation"`
}
