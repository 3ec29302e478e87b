package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/example/kazlearn/pkg/models"
)

// SessionRepository handles database operations for auth token sessions
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new repository instance
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create records a new session with a fresh JTI and returns it
func (r *SessionRepository) Create(userID int, expiresAt time.Time) (*models.UserSession, error) {
	session := &models.UserSession{
		UserID:    userID,
		TokenJTI:  uuid.NewString(),
		ExpiresAt: expiresAt.UTC(),
		CreatedAt: time.Now().UTC(),
	}

	if r.db.DriverName() == "postgres" {
		query := r.db.Rebind(`
			INSERT INTO user_sessions (user_id, token_jti, expires_at, is_revoked, created_at)
			VALUES (?, ?, ?, false, ?)
			RETURNING id
		`)
		err := r.db.QueryRow(query, session.UserID, session.TokenJTI, session.ExpiresAt, session.CreatedAt).
			Scan(&session.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to create session: %v", err)
		}
		return session, nil
	}

	result, err := r.db.Exec(`
		INSERT INTO user_sessions (user_id, token_jti, expires_at, is_revoked, created_at)
		VALUES (?, ?, ?, false, ?)
	`, session.UserID, session.TokenJTI, session.ExpiresAt, session.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert ID: %v", err)
	}
	session.ID = int(id)
	return session, nil
}

// GetValidByJTI returns the session for a JTI if it is neither revoked nor
// expired
func (r *SessionRepository) GetValidByJTI(jti string) (*models.UserSession, error) {
	var session models.UserSession
	err := r.db.Get(&session, r.db.Rebind(`
		SELECT * FROM user_sessions
		WHERE token_jti = ? AND is_revoked = false AND expires_at > ?
	`), jti, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Revoke marks one session revoked; returns whether it existed
func (r *SessionRepository) Revoke(jti string) (bool, error) {
	result, err := r.db.Exec(
		r.db.Rebind("UPDATE user_sessions SET is_revoked = true WHERE token_jti = ?"), jti)
	if err != nil {
		return false, fmt.Errorf("failed to revoke session: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// RevokeAllForUser revokes every session of a user (logout everywhere)
func (r *SessionRepository) RevokeAllForUser(userID int) error {
	_, err := r.db.Exec(
		r.db.Rebind("UPDATE user_sessions SET is_revoked = true WHERE user_id = ?"), userID)
	if err != nil {
		return fmt.Errorf("failed to revoke user sessions: %v", err)
	}
	return nil
}

// DeleteExpired removes sessions past their expiry; called by the scheduler
func (r *SessionRepository) DeleteExpired() (int64, error) {
	result, err := r.db.Exec(
		r.db.Rebind("DELETE FROM user_sessions WHERE expires_at < ?"), time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %v", err)
	}
	return result.RowsAffected()
}
