package auth

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/example/kazlearn/internal/database"
	"github.com/example/kazlearn/pkg/models"
)

const (
	userContextKey    = "currentUser"
	sessionContextKey = "currentSession"

	// NewTokenHeader carries a reissued token when the presented one is
	// close to expiry
	NewTokenHeader = "X-New-Token"
)

// Middleware authenticates requests against issued tokens and their
// database-backed sessions
type Middleware struct {
	tokens           *TokenManager
	users            *database.UserRepository
	sessions         *database.SessionRepository
	refreshThreshold time.Duration
}

// NewMiddleware creates the authentication middleware
func NewMiddleware(tokens *TokenManager, users *database.UserRepository, sessions *database.SessionRepository, refreshThreshold time.Duration) *Middleware {
	return &Middleware{
		tokens:           tokens,
		users:            users,
		sessions:         sessions,
		refreshThreshold: refreshThreshold,
	}
}

// RequireAuth validates the Bearer token, checks the session is still live
// and loads the user into the request context. Tokens closer than the
// refresh threshold to expiry are transparently reissued via the X-New-Token
// response header.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := m.tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		session, err := m.sessions.GetValidByJTI(claims.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session revoked or expired"})
			return
		}

		user, err := m.users.GetByID(session.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account is deactivated"})
			return
		}

		if time.Until(session.ExpiresAt) < m.refreshThreshold {
			if token, err := m.reissue(user, claims.ID); err != nil {
				log.Printf("Failed to refresh session for user %d: %v", user.ID, err)
			} else {
				c.Header(NewTokenHeader, token)
			}
		}

		c.Set(userContextKey, user)
		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// reissue opens a fresh session, signs a token for it and revokes the old one
func (m *Middleware) reissue(user *models.User, oldJTI string) (string, error) {
	expiresAt := time.Now().UTC().Add(m.tokens.TTL())
	session, err := m.sessions.Create(user.ID, expiresAt)
	if err != nil {
		return "", err
	}
	token, err := m.tokens.Issue(user, session.TokenJTI, expiresAt)
	if err != nil {
		return "", err
	}
	if _, err := m.sessions.Revoke(oldJTI); err != nil {
		return "", err
	}
	return token, nil
}

// RequireRole allows only users whose role is in the given set. Must run
// after RequireAuth.
func (m *Middleware) RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	}
}

// CurrentUser returns the authenticated user stored by RequireAuth, or nil
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userContextKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// CurrentSession returns the session of the presented token, or nil
func CurrentSession(c *gin.Context) *models.UserSession {
	if v, ok := c.Get(sessionContextKey); ok {
		if session, ok := v.(*models.UserSession); ok {
			return session
		}
	}
	return nil
}
