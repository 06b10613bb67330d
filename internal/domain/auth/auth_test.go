package auth

import (
	"testing"
	"time"
)

func TestVerifyPasswordPlaintextFallback(t *testing.T) {
	if !VerifyPassword("password123", "password123") {
		t.Fatal("expected plaintext match to verify")
	}
	if VerifyPassword("password123", "wrong") {
		t.Fatal("expected plaintext mismatch to fail")
	}
}

func TestVerifyPasswordBcrypt(t *testing.T) {
	hashed, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if !VerifyPassword(hashed, "s3cret") {
		t.Fatal("expected bcrypt match to verify")
	}
	if VerifyPassword(hashed, "not-it") {
		t.Fatal("expected bcrypt mismatch to fail")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("unit-secret", Claims{UserID: 7, Username: "hrmanager", Role: "hr_manager"}, time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := ParseToken("unit-secret", token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "hrmanager" || claims.Role != "hr_manager" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret-a", Claims{UserID: 1, Username: "x"}, time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := ParseToken("secret-b", token); err == nil {
		t.Fatal("expected parse with wrong secret to fail")
	}
}
