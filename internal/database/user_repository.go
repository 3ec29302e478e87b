package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/kazlearn/pkg/models"
)

// UserRepository handles database operations for user accounts
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new repository instance
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and fills generated fields
func (r *UserRepository) Create(user *models.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = models.RoleStudent
	}
	user.IsActive = true

	if r.db.DriverName() == "postgres" {
		query := r.db.Rebind(`
			INSERT INTO users (username, email, hashed_password, full_name, role, is_active, main_language_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id
		`)
		return r.db.QueryRow(query,
			user.Username, user.Email, user.HashedPassword, user.FullName,
			user.Role, user.IsActive, user.MainLanguageID, now, now,
		).Scan(&user.ID)
	}

	// SQLite: no RETURNING, use LastInsertId
	result, err := r.db.Exec(`
		INSERT INTO users (username, email, hashed_password, full_name, role, is_active, main_language_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, user.Username, user.Email, user.HashedPassword, user.FullName,
		user.Role, user.IsActive, user.MainLanguageID, now, now)
	if err != nil {
		return fmt.Errorf("failed to create user: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	user.ID = int(id)
	return nil
}

// GetByID returns a user by ID
func (r *UserRepository) GetByID(id int) (*models.User, error) {
	var user models.User
	err := r.db.Get(&user, r.db.Rebind("SELECT * FROM users WHERE id = ?"), id)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername returns a user by username
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Get(&user, r.db.Rebind("SELECT * FROM users WHERE username = ?"), username)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail returns a user by email
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Get(&user, r.db.Rebind("SELECT * FROM users WHERE email = ?"), email)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(userID int, hashedPassword string) error {
	_, err := r.db.Exec(
		r.db.Rebind("UPDATE users SET hashed_password = ?, updated_at = ? WHERE id = ?"),
		hashedPassword, time.Now().UTC(), userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %v", err)
	}
	return nil
}

// UpdateRole changes a user's role
func (r *UserRepository) UpdateRole(userID int, role models.UserRole) error {
	result, err := r.db.Exec(
		r.db.Rebind("UPDATE users SET role = ?, updated_at = ? WHERE id = ?"),
		role, time.Now().UTC(), userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update role: %v", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetMainLanguage sets or clears the user's preferred translation language
func (r *UserRepository) SetMainLanguage(userID int, languageID sql.NullInt64) error {
	_, err := r.db.Exec(
		r.db.Rebind("UPDATE users SET main_language_id = ?, updated_at = ? WHERE id = ?"),
		languageID, time.Now().UTC(), userID,
	)
	if err != nil {
		return fmt.Errorf("failed to set main language: %v", err)
	}
	return nil
}

// SetTelegramChat links a Telegram chat to the account for reminders
func (r *UserRepository) SetTelegramChat(userID int, chatID sql.NullInt64) error {
	_, err := r.db.Exec(
		r.db.Rebind("UPDATE users SET telegram_chat_id = ?, updated_at = ? WHERE id = ?"),
		chatID, time.Now().UTC(), userID,
	)
	if err != nil {
		return fmt.Errorf("failed to set telegram chat: %v", err)
	}
	return nil
}

// GetWithTelegram returns active users who linked a Telegram chat
func (r *UserRepository) GetWithTelegram() ([]models.User, error) {
	var users []models.User
	err := r.db.Select(&users,
		"SELECT * FROM users WHERE telegram_chat_id IS NOT NULL AND is_active = true")
	if err != nil {
		return nil, fmt.Errorf("failed to get users with telegram: %v", err)
	}
	return users, nil
}
