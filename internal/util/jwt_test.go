package util

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-do-not-use"

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(testSecret, 42, 40*time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if token == "" {
		t.Fatal("token is empty")
	}

	claims, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("user id: expected 42, got %d", claims.UserID)
	}
	if claims.ID == "" {
		t.Error("jti should be set")
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatal("exp/iat should be set")
	}
	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if ttl != 40*time.Minute {
		t.Errorf("ttl: expected 40m, got %v", ttl)
	}
}

func TestParseTokenMissing(t *testing.T) {
	_, err := ParseToken(testSecret, "")
	if !errors.Is(err, ErrTokenMissing) {
		t.Errorf("expected ErrTokenMissing, got %v", err)
	}
}

func TestParseTokenMalformed(t *testing.T) {
	_, err := ParseToken(testSecret, "not-a-jwt")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, 1, time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	_, err = ParseToken("a-different-secret", token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseTokenExpired(t *testing.T) {
	// token that expired a minute ago
	now := time.Now()
	claims := &Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-41 * time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	_, err = ParseToken(testSecret, token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestGenerateTokenDefaultTTL(t *testing.T) {
	token, err := GenerateToken(testSecret, 7, 0)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	claims, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if ttl != 40*time.Minute {
		t.Errorf("default ttl: expected 40m, got %v", ttl)
	}
}
