package models

import (
	"database/sql"
	"time"
)

// Streak tracks consecutive days of practice for one user
type Streak struct {
	ID               int          `json:"id" db:"id"`
	UserID           int          `json:"user_id" db:"user_id"`
	StreakType       string       `json:"streak_type" db:"streak_type"` // "daily"
	CurrentStreak    int          `json:"current_streak" db:"current_streak"`
	LongestStreak    int          `json:"longest_streak" db:"longest_streak"`
	LastActivityDate sql.NullTime `json:"last_activity_date" db:"last_activity_date"`
	StreakStartDate  sql.NullTime `json:"streak_start_date" db:"streak_start_date"`
	CreatedAt        time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at" db:"updated_at"`
}
