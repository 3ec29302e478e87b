package models

import (
	"database/sql"
	"time"
)

// UserRole controls access to catalogue mutation and admin endpoints
type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleWriter  UserRole = "writer"
	RoleAdmin   UserRole = "admin"
)

// User is a registered account
type User struct {
	ID             int           `json:"id" db:"id"`
	Username       string        `json:"username" db:"username"`
	Email          string        `json:"email" db:"email"`
	HashedPassword string        `json:"-" db:"hashed_password"`
	FullName       string        `json:"full_name" db:"full_name"`
	Role           UserRole      `json:"role" db:"role"`
	IsActive       bool          `json:"is_active" db:"is_active"`
	MainLanguageID sql.NullInt64 `json:"-" db:"main_language_id"` // preferred translation language
	TelegramChatID sql.NullInt64 `json:"-" db:"telegram_chat_id"` // set when the user links the reminder bot
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at" db:"updated_at"`
}

// UserSession is one issued access token, tracked by its JWT ID so it can be
// revoked before expiry
type UserSession struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id"`
	TokenJTI  string    `json:"token_jti" db:"token_jti"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	IsRevoked bool      `json:"is_revoked" db:"is_revoked"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
