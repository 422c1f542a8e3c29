package auth_test

import (
	"testing"
	"time"

	"github.com/hirebridge/placement-service/internal/auth"
	"github.com/hirebridge/placement-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", 60)

	token, expiresAt, err := tm.GenerateToken("user-1", domain.RolePartner)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if !expiresAt.After(time.Now()) {
		t.Errorf("expiry %v is not in the future", expiresAt)
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.SubjectID != "user-1" {
		t.Errorf("subject = %q, want user-1", claims.SubjectID)
	}
	if claims.Role != domain.RolePartner {
		t.Errorf("role = %q, want partner", claims.Role)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	issuer := auth.NewTokenManager("secret-a", 60)
	verifier := auth.NewTokenManager("secret-b", 60)

	token, _, err := issuer.GenerateToken("user-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if _, err := verifier.ParseToken(token); err == nil {
		t.Error("token signed with a different secret should not parse")
	}
}

func TestParseToken_Garbage(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", 60)
	if _, err := tm.ParseToken("not.a.token"); err == nil {
		t.Error("garbage token should not parse")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hashed, err := auth.HashPassword("s3cret!", 4)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if err := auth.ComparePassword(hashed, "s3cret!"); err != nil {
		t.Errorf("ComparePassword rejected the right password: %v", err)
	}
	if err := auth.ComparePassword(hashed, "wrong"); err == nil {
		t.Error("ComparePassword accepted the wrong password")
	}
}
