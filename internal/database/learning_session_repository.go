package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/kazlearn/pkg/models"
)

// LearningSessionRepository handles database operations for practice sessions
// and their per-answer detail log
type LearningSessionRepository struct {
	db *sqlx.DB
}

// NewLearningSessionRepository creates a new repository instance
func NewLearningSessionRepository(db *sqlx.DB) *LearningSessionRepository {
	return &LearningSessionRepository{db: db}
}

// Create starts a new session
func (r *LearningSessionRepository) Create(userID int, sessionType string, categoryID sql.NullInt64) (*models.LearningSession, error) {
	now := time.Now().UTC()
	session := &models.LearningSession{
		UserID:      userID,
		SessionType: sessionType,
		CategoryID:  categoryID,
		StartedAt:   now,
		CreatedAt:   now,
	}

	if r.db.DriverName() == "postgres" {
		query := r.db.Rebind(`
			INSERT INTO user_learning_sessions (user_id, session_type, category_id, started_at, created_at)
			VALUES (?, ?, ?, ?, ?)
			RETURNING id
		`)
		err := r.db.QueryRow(query, userID, sessionType, categoryID, now, now).Scan(&session.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to create learning session: %v", err)
		}
		return session, nil
	}

	result, err := r.db.Exec(`
		INSERT INTO user_learning_sessions (user_id, session_type, category_id, started_at, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, userID, sessionType, categoryID, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create learning session: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert ID: %v", err)
	}
	session.ID = int(id)
	return session, nil
}

// GetByID returns one session
func (r *LearningSessionRepository) GetByID(id int) (*models.LearningSession, error) {
	var session models.LearningSession
	err := r.db.Get(&session,
		r.db.Rebind("SELECT * FROM user_learning_sessions WHERE id = ?"), id)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// AddDetail appends one answered question to the session log
func (r *LearningSessionRepository) AddDetail(detail *models.SessionDetail) error {
	detail.AnsweredAt = time.Now().UTC()
	if detail.QuestionType == "" {
		detail.QuestionType = "practice"
	}

	if r.db.DriverName() == "postgres" {
		query := r.db.Rebind(`
			INSERT INTO user_session_details (session_id, word_id, was_correct, response_time_ms, user_answer, correct_answer, question_type, answered_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id
		`)
		return r.db.QueryRow(query,
			detail.SessionID, detail.WordID, detail.WasCorrect, detail.ResponseTimeMs,
			detail.UserAnswer, detail.CorrectAnswer, detail.QuestionType, detail.AnsweredAt,
		).Scan(&detail.ID)
	}

	result, err := r.db.Exec(`
		INSERT INTO user_session_details (session_id, word_id, was_correct, response_time_ms, user_answer, correct_answer, question_type, answered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, detail.SessionID, detail.WordID, detail.WasCorrect, detail.ResponseTimeMs,
		detail.UserAnswer, detail.CorrectAnswer, detail.QuestionType, detail.AnsweredAt)
	if err != nil {
		return fmt.Errorf("failed to add session detail: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	detail.ID = int(id)
	return nil
}

// Finish closes a session, aggregating its counters from the detail log
func (r *LearningSessionRepository) Finish(sessionID int, durationSeconds sql.NullInt64) (*models.LearningSession, error) {
	var total, correct int
	err := r.db.QueryRow(r.db.Rebind(`
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN was_correct THEN 1 ELSE 0 END), 0)
		FROM user_session_details WHERE session_id = ?
	`), sessionID).Scan(&total, &correct)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate session details: %v", err)
	}

	result, err := r.db.Exec(r.db.Rebind(`
		UPDATE user_learning_sessions SET
			finished_at = ?,
			words_studied = ?,
			correct_answers = ?,
			incorrect_answers = ?,
			duration_seconds = ?
		WHERE id = ?
	`), time.Now().UTC(), total, correct, total-correct, durationSeconds, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to finish session: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, sql.ErrNoRows
	}

	return r.GetByID(sessionID)
}

// ListByUser returns the user's sessions, newest first
func (r *LearningSessionRepository) ListByUser(userID, limit, offset int) ([]models.LearningSession, error) {
	if limit <= 0 {
		limit = 50
	}
	var sessions []models.LearningSession
	err := r.db.Select(&sessions, r.db.Rebind(`
		SELECT * FROM user_learning_sessions
		WHERE user_id = ?
		ORDER BY started_at DESC
		LIMIT ? OFFSET ?
	`), userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %v", err)
	}
	return sessions, nil
}

// CountSince counts the user's sessions started after a point in time
func (r *LearningSessionRepository) CountSince(userID int, since time.Time) (int, error) {
	var n int
	err := r.db.Get(&n, r.db.Rebind(`
		SELECT COUNT(*) FROM user_learning_sessions
		WHERE user_id = ? AND started_at >= ?
	`), userID, since)
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %v", err)
	}
	return n, nil
}
