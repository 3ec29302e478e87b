package api

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/example/kazlearn/internal/auth"
	"github.com/example/kazlearn/internal/database"
	"github.com/example/kazlearn/pkg/models"
)

// AuthHandler serves registration, login and account management
type AuthHandler struct {
	users     *database.UserRepository
	sessions  *database.SessionRepository
	languages *database.LanguageRepository
	tokens    *auth.TokenManager
}

// NewAuthHandler creates the handler
func NewAuthHandler(users *database.UserRepository, sessions *database.SessionRepository, languages *database.LanguageRepository, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, languages: languages, tokens: tokens}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name"`
}

// Register creates a new student account
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.users.GetByUsername(req.Username); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
		return
	}
	if _, err := h.users.GetByEmail(req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	user := &models.User{
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hash,
		FullName:       req.FullName,
		Role:           models.RoleStudent,
	}
	if err := h.users.Create(user); err != nil {
		log.Printf("Failed to create user %s: %v", req.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        *models.User `json:"user"`
}

// Login verifies credentials, opens a session and returns a signed token
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.GetByUsername(req.Username)
	if err != nil || !auth.CheckPassword(req.Password, user.HashedPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}
	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "account is deactivated"})
		return
	}

	expiresAt := time.Now().UTC().Add(h.tokens.TTL())
	session, err := h.sessions.Create(user.ID, expiresAt)
	if err != nil {
		log.Printf("Failed to create session for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log in"})
		return
	}

	token, err := h.tokens.Issue(user, session.TokenJTI, expiresAt)
	if err != nil {
		log.Printf("Failed to issue token for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log in"})
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		User:        user,
	})
}

// Logout revokes the session of the presented token
func (h *AuthHandler) Logout(c *gin.Context) {
	session := auth.CurrentSession(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	if _, err := h.sessions.Revoke(session.TokenJTI); err != nil {
		log.Printf("Failed to revoke session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// LogoutAll revokes every session of the current user
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	user := auth.CurrentUser(c)
	if err := h.sessions.RevokeAllForUser(user.ID); err != nil {
		log.Printf("Failed to revoke sessions for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out everywhere"})
}

// Me returns the current user
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, auth.CurrentUser(c))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// ChangePassword replaces the password and revokes all existing sessions
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := auth.CurrentUser(c)
	if !auth.CheckPassword(req.CurrentPassword, user.HashedPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "current password is incorrect"})
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to change password"})
		return
	}
	if err := h.users.UpdatePassword(user.ID, hash); err != nil {
		log.Printf("Failed to update password for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to change password"})
		return
	}

	// Old tokens must not survive a password change
	if err := h.sessions.RevokeAllForUser(user.ID); err != nil {
		log.Printf("Failed to revoke sessions for user %d: %v", user.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "password changed, please log in again"})
}

type mainLanguageRequest struct {
	LanguageCode string `json:"language_code" binding:"required"`
}

// SetMainLanguage sets the user's preferred translation language
func (h *AuthHandler) SetMainLanguage(c *gin.Context) {
	var req mainLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	language, err := h.languages.GetByCode(req.LanguageCode)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown language code"})
		return
	}

	user := auth.CurrentUser(c)
	langID := sql.NullInt64{Int64: int64(language.ID), Valid: true}
	if err := h.users.SetMainLanguage(user.ID, langID); err != nil {
		log.Printf("Failed to set main language for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set main language"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "main language updated", "language": language})
}

type linkTelegramRequest struct {
	ChatID int64 `json:"chat_id" binding:"required"`
}

// LinkTelegram links a Telegram chat to the account for review reminders
func (h *AuthHandler) LinkTelegram(c *gin.Context) {
	var req linkTelegramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := auth.CurrentUser(c)
	chatID := sql.NullInt64{Int64: req.ChatID, Valid: true}
	if err := h.users.SetTelegramChat(user.ID, chatID); err != nil {
		log.Printf("Failed to link telegram for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to link telegram"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "telegram linked"})
}

type setRoleRequest struct {
	Role models.UserRole `json:"role" binding:"required"`
}

// SetRole changes another user's role. Admin only.
func (h *AuthHandler) SetRole(c *gin.Context) {
	userID, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req setRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch req.Role {
	case models.RoleStudent, models.RoleWriter, models.RoleAdmin:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}

	if err := h.users.UpdateRole(userID, req.Role); err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		log.Printf("Failed to update role for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update role"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "role updated"})
}
