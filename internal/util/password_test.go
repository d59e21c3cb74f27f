package util

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	password := "MyPassword123"

	hashed, err := HashPassword(password, 4) // min cost keeps the test fast
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if !strings.HasPrefix(hashed, "$2") {
		t.Error("expected a bcrypt hash")
	}
	if hashed == password {
		t.Error("hash must not equal plaintext")
	}

	// empty password is rejected
	if _, err := HashPassword("", 4); err == nil {
		t.Error("empty password should return error")
	}

	// same password hashes differently (random salt)
	hashed2, _ := HashPassword(password, 4)
	if hashed == hashed2 {
		t.Error("same password should produce different hashes")
	}
}

func TestCheckPassword(t *testing.T) {
	password := "TestPass456"
	hashed, _ := HashPassword(password, 4)

	if !CheckPassword(password, hashed) {
		t.Error("correct password should verify")
	}
	if CheckPassword("WrongPass", hashed) {
		t.Error("wrong password should not verify")
	}
	if CheckPassword("", hashed) {
		t.Error("empty password should not verify")
	}
	if CheckPassword(password, "") {
		t.Error("empty hash should not verify")
	}
	if CheckPassword(password, "invalid-format") {
		t.Error("invalid hash format should not verify")
	}
}

func TestHashPasswordCostFallback(t *testing.T) {
	// out-of-range cost falls back to the bcrypt default and still verifies
	hashed, err := HashPassword("abc123def", 99)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if !CheckPassword("abc123def", hashed) {
		t.Error("fallback-cost hash should verify")
	}
}
