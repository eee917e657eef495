package security

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("test-secret", 42, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	parentID, err := ParseToken("test-secret", token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if parentID != 42 {
		t.Errorf("ParseToken() = %d, want 42", parentID)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("test-secret", 42, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := ParseToken("other-secret", token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ParseToken() error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken("test-secret", 42, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := ParseToken("test-secret", token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("ParseToken() error = %v, want %v", err, ErrExpiredToken)
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := ParseToken("test-secret", "not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ParseToken() error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if !CheckPassword("hunter22", hash) {
		t.Error("CheckPassword() rejected the correct password")
	}
	if CheckPassword("hunter23", hash) {
		t.Error("CheckPassword() accepted a wrong password")
	}
}
