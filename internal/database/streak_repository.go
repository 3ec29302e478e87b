package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/kazlearn/pkg/models"
)

// StreakRepository handles database operations for daily practice streaks
type StreakRepository struct {
	db *sqlx.DB
}

// NewStreakRepository creates a new repository instance
func NewStreakRepository(db *sqlx.DB) *StreakRepository {
	return &StreakRepository{db: db}
}

// Get returns the user's streak of one type, or nil when none exists yet
func (r *StreakRepository) Get(userID int, streakType string) (*models.Streak, error) {
	var streak models.Streak
	err := r.db.Get(&streak,
		r.db.Rebind("SELECT * FROM user_streaks WHERE user_id = ? AND streak_type = ?"),
		userID, streakType)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get streak: %v", err)
	}
	return &streak, nil
}

// Touch records activity for today: starts a streak, continues it when the
// last activity was yesterday, resets it after a gap. Same-day repeats are
// no-ops.
func (r *StreakRepository) Touch(userID int, streakType string) (*models.Streak, error) {
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	streak, err := r.Get(userID, streakType)
	if err != nil {
		return nil, err
	}

	if streak == nil {
		streak = &models.Streak{
			UserID:           userID,
			StreakType:       streakType,
			CurrentStreak:    1,
			LongestStreak:    1,
			LastActivityDate: sql.NullTime{Time: now, Valid: true},
			StreakStartDate:  sql.NullTime{Time: now, Valid: true},
			CreatedAt:        now,
			UpdatedAt:        now,
		}

		if r.db.DriverName() == "postgres" {
			query := r.db.Rebind(`
				INSERT INTO user_streaks (user_id, streak_type, current_streak, longest_streak, last_activity_date, streak_start_date, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
				RETURNING id
			`)
			err = r.db.QueryRow(query, userID, streakType, 1, 1, now, now, now, now).Scan(&streak.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to create streak: %v", err)
			}
			return streak, nil
		}

		result, err := r.db.Exec(`
			INSERT INTO user_streaks (user_id, streak_type, current_streak, longest_streak, last_activity_date, streak_start_date, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, userID, streakType, 1, 1, now, now, now, now)
		if err != nil {
			return nil, fmt.Errorf("failed to create streak: %v", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to get last insert ID: %v", err)
		}
		streak.ID = int(id)
		return streak, nil
	}

	if streak.LastActivityDate.Valid {
		lastDay := streak.LastActivityDate.Time.UTC().Truncate(24 * time.Hour)
		switch {
		case lastDay.Equal(today):
			// Already counted today
			return streak, nil
		case lastDay.Equal(today.AddDate(0, 0, -1)):
			streak.CurrentStreak++
			if streak.CurrentStreak > streak.LongestStreak {
				streak.LongestStreak = streak.CurrentStreak
			}
		default:
			streak.CurrentStreak = 1
			streak.StreakStartDate = sql.NullTime{Time: now, Valid: true}
		}
	} else {
		streak.CurrentStreak = 1
		streak.StreakStartDate = sql.NullTime{Time: now, Valid: true}
	}

	streak.LastActivityDate = sql.NullTime{Time: now, Valid: true}
	streak.UpdatedAt = now

	_, err = r.db.Exec(r.db.Rebind(`
		UPDATE user_streaks SET
			current_streak = ?, longest_streak = ?, last_activity_date = ?, streak_start_date = ?, updated_at = ?
		WHERE id = ?
	`), streak.CurrentStreak, streak.LongestStreak, streak.LastActivityDate,
		streak.StreakStartDate, streak.UpdatedAt, streak.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update streak: %v", err)
	}
	return streak, nil
}
