package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/kazlearn/pkg/models"
)

// GoalRepository handles database operations for learning goals
type GoalRepository struct {
	db *sqlx.DB
}

// NewGoalRepository creates a new repository instance
func NewGoalRepository(db *sqlx.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

// Create inserts a new goal
func (r *GoalRepository) Create(goal *models.LearningGoal) error {
	now := time.Now().UTC()
	goal.StartDate = now
	goal.CreatedAt = now
	goal.UpdatedAt = now
	goal.IsActive = true

	if r.db.DriverName() == "postgres" {
		query := r.db.Rebind(`
			INSERT INTO user_learning_goals (user_id, goal_type, target_value, current_value, category_id, is_active, is_completed, start_date, target_date, created_at, updated_at)
			VALUES (?, ?, ?, 0, ?, true, false, ?, ?, ?, ?)
			RETURNING id
		`)
		return r.db.QueryRow(query,
			goal.UserID, goal.GoalType, goal.TargetValue, goal.CategoryID,
			goal.StartDate, goal.TargetDate, goal.CreatedAt, goal.UpdatedAt,
		).Scan(&goal.ID)
	}

	result, err := r.db.Exec(`
		INSERT INTO user_learning_goals (user_id, goal_type, target_value, current_value, category_id, is_active, is_completed, start_date, target_date, created_at, updated_at)
		VALUES (?, ?, ?, 0, ?, true, false, ?, ?, ?, ?)
	`, goal.UserID, goal.GoalType, goal.TargetValue, goal.CategoryID,
		goal.StartDate, goal.TargetDate, goal.CreatedAt, goal.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create goal: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	goal.ID = int(id)
	return nil
}

// ListByUser returns the user's goals, newest first
func (r *GoalRepository) ListByUser(userID int, activeOnly bool) ([]models.LearningGoal, error) {
	query := "SELECT * FROM user_learning_goals WHERE user_id = ?"
	if activeOnly {
		query += " AND is_active = true"
	}
	query += " ORDER BY created_at DESC"

	var goals []models.LearningGoal
	err := r.db.Select(&goals, r.db.Rebind(query), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %v", err)
	}
	return goals, nil
}

// IncrementProgress advances a goal and stamps completion when the target is
// reached
func (r *GoalRepository) IncrementProgress(goalID, increment int) (*models.LearningGoal, error) {
	var goal models.LearningGoal
	err := r.db.Get(&goal,
		r.db.Rebind("SELECT * FROM user_learning_goals WHERE id = ?"), goalID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get goal: %v", err)
	}

	now := time.Now().UTC()
	goal.CurrentValue += increment
	goal.UpdatedAt = now
	if goal.CurrentValue >= goal.TargetValue && !goal.IsCompleted {
		goal.IsCompleted = true
		goal.CompletedDate = sql.NullTime{Time: now, Valid: true}
	}

	_, err = r.db.Exec(r.db.Rebind(`
		UPDATE user_learning_goals SET
			current_value = ?, is_completed = ?, completed_date = ?, updated_at = ?
		WHERE id = ?
	`), goal.CurrentValue, goal.IsCompleted, goal.CompletedDate, goal.UpdatedAt, goal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update goal: %v", err)
	}
	return &goal, nil
}
