package models

import (
	"database/sql"
	"time"
)

// LearningGoal is a user-defined target, e.g. 20 learned words in a category
type LearningGoal struct {
	ID            int           `json:"id" db:"id"`
	UserID        int           `json:"user_id" db:"user_id"`
	GoalType      string        `json:"goal_type" db:"goal_type"` // "daily_words", "category_mastery", ...
	TargetValue   int           `json:"target_value" db:"target_value"`
	CurrentValue  int           `json:"current_value" db:"current_value"`
	CategoryID    sql.NullInt64 `json:"category_id" db:"category_id"`
	IsActive      bool          `json:"is_active" db:"is_active"`
	IsCompleted   bool          `json:"is_completed" db:"is_completed"`
	StartDate     time.Time     `json:"start_date" db:"start_date"`
	TargetDate    sql.NullTime  `json:"target_date" db:"target_date"`
	CompletedDate sql.NullTime  `json:"completed_date" db:"completed_date"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
}
