package auth_test

import (
	"testing"

	"github.com/example/kazlearn/internal/auth"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("rakhmet123")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "rakhmet123" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !auth.CheckPassword("rakhmet123", hash) {
		t.Error("correct password was rejected")
	}
	if auth.CheckPassword("wrong", hash) {
		t.Error("wrong password was accepted")
	}
	if auth.CheckPassword("rakhmet123", "not-a-hash") {
		t.Error("malformed hash was accepted")
	}
}
