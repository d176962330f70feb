package auth

import (
	"testing"
	"time"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret-key"

	token, issued, err := GenerateToken(secret, time.Hour, 1, "bob")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	if claims.UserID != 1 {
		t.Errorf("expected user_id 1, got %d", claims.UserID)
	}
	if claims.Username != "bob" {
		t.Errorf("expected username 'bob', got %q", claims.Username)
	}
	if claims.ID == "" || claims.ID != issued.ID {
		t.Errorf("expected JTI %q, got %q", issued.ID, claims.ID)
	}
}

func TestTokensHaveUniqueIDs(t *testing.T) {
	_, a, _ := GenerateToken("s", time.Hour, 1, "bob")
	_, b, _ := GenerateToken("s", time.Hour, 1, "bob")
	if a.ID == b.ID {
		t.Error("expected distinct JTIs for separate sessions")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, _, _ := GenerateToken("secret1", time.Hour, 1, "bob")

	if _, err := ValidateToken("secret2", token); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestValidateTokenInvalid(t *testing.T) {
	if _, err := ValidateToken("secret", "not-a-token"); err == nil {
		t.Error("expected error for invalid token")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	expired, _, _ := generateExpired("secret")
	if _, err := ValidateToken("secret", expired); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestGenerateTokenDefaultTTL(t *testing.T) {
	_, claims, err := GenerateToken("secret", 0, 1, "bob")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	diff := time.Until(claims.ExpiresAt.Time) - DefaultTokenTTL
	if diff < -5*time.Second || diff > 5*time.Second {
		t.Errorf("expected default TTL, diff=%v", diff)
	}
}

func TestTokenExpiry(t *testing.T) {
	_, claims, _ := GenerateToken("test", 2*time.Hour, 1, "test")

	diff := time.Until(claims.ExpiresAt.Time) - 2*time.Hour
	if diff < -5*time.Second || diff > 5*time.Second {
		t.Errorf("token expiry too far from expected: diff=%v", diff)
	}
}
