package auth_test

import (
	"testing"
	"time"

	"github.com/example/kazlearn/internal/auth"
	"github.com/example/kazlearn/pkg/models"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := auth.NewTokenManager("test-secret", time.Hour)
	user := &models.User{ID: 42, Username: "aigerim", Role: models.RoleWriter}
	expiresAt := time.Now().UTC().Add(time.Hour)

	token, err := manager.Issue(user, "session-jti-1", expiresAt)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := manager.Parse(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Role != models.RoleWriter {
		t.Errorf("expected role writer, got %s", claims.Role)
	}
	if claims.Subject != "aigerim" {
		t.Errorf("expected subject aigerim, got %s", claims.Subject)
	}
	if claims.ID != "session-jti-1" {
		t.Errorf("expected jti session-jti-1, got %s", claims.ID)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := auth.NewTokenManager("secret-a", time.Hour)
	verifier := auth.NewTokenManager("secret-b", time.Hour)
	user := &models.User{ID: 1, Username: "bolat", Role: models.RoleStudent}

	token, err := issuer.Issue(user, "jti", time.Now().UTC().Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := verifier.Parse(token); err == nil {
		t.Error("expected a token signed with another secret to be rejected")
	}
}

func TestTokenExpired(t *testing.T) {
	manager := auth.NewTokenManager("test-secret", time.Hour)
	user := &models.User{ID: 1, Username: "bolat", Role: models.RoleStudent}

	token, err := manager.Issue(user, "jti", time.Now().UTC().Add(-time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := manager.Parse(token); err == nil {
		t.Error("expected an expired token to be rejected")
	}
}

func TestTokenGarbage(t *testing.T) {
	manager := auth.NewTokenManager("test-secret", time.Hour)
	for _, token := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		if _, err := manager.Parse(token); err == nil {
			t.Errorf("expected %q to be rejected", token)
		}
	}
}
