package security

import (
	"strings"
	"testing"
	"time"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
)

func TestGenerateAndParse(t *testing.T) {
	p := NewJWTProvider("secret")
	userID := common.NewUUID()

	token, expiresAt, err := p.Generate(userID, "technician", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !expiresAt.After(time.Now()) {
		t.Fatal("expected a future expiry")
	}

	claims, err := p.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != userID.String() {
		t.Fatalf("expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.Role != "technician" {
		t.Fatalf("unexpected role %q", claims.Role)
	}
}

func TestParseRejectsTamperedToken(t *testing.T) {
	p := NewJWTProvider("secret")
	token, _, err := p.Generate(common.NewUUID(), "company", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]
	if _, err := p.Parse(tampered); err == nil {
		t.Fatal("expected tampered token to fail")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, _, err := NewJWTProvider("secret-a").Generate(common.NewUUID(), "company", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := NewJWTProvider("secret-b").Parse(token); err == nil {
		t.Fatal("expected signature mismatch")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	p := NewJWTProvider("secret")
	token, _, err := p.Generate(common.NewUUID(), "company", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := p.Parse(token); err == nil {
		t.Fatal("expected expired token to fail")
	}
}
