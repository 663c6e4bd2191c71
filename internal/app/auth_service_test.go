package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/auth"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/security"
)

type fakeRefreshRepo struct {
	mu     sync.Mutex
	tokens map[string]*auth.RefreshToken
}

func newFakeRefreshRepo() *fakeRefreshRepo {
	return &fakeRefreshRepo{tokens: make(map[string]*auth.RefreshToken)}
}

func (r *fakeRefreshRepo) Store(ctx context.Context, token auth.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := token
	r.tokens[token.Token] = &stored
	return nil
}

func (r *fakeRefreshRepo) GetByToken(ctx context.Context, token string) (*auth.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tokens[token]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "refresh token not found", nil)
	}
	out := *stored
	return &out, nil
}

func (r *fakeRefreshRepo) Revoke(ctx context.Context, token string, revokedAtUnix int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tokens[token]
	if !ok {
		return common.NewError(common.CodeNotFound, "refresh token not found", nil)
	}
	revokedAt := time.Unix(revokedAtUnix, 0).UTC()
	stored.RevokedAt = &revokedAt
	return nil
}

func (r *fakeRefreshRepo) RevokeAll(ctx context.Context, userID common.UUID, revokedAtUnix int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	revokedAt := time.Unix(revokedAtUnix, 0).UTC()
	for _, stored := range r.tokens {
		if stored.UserID == userID && stored.RevokedAt == nil {
			stored.RevokedAt = &revokedAt
		}
	}
	return nil
}

func newAuthService() (*AuthService, *fakeUserRepo, *fakeRefreshRepo) {
	users := newFakeUserRepo()
	refresh := newFakeRefreshRepo()
	svc := NewAuthService(
		users,
		refresh,
		security.NewJWTProvider("test-secret"),
		security.NewBcryptHasher(),
		15*time.Minute,
		24*time.Hour,
		zerolog.Nop(),
	)
	return svc, users, refresh
}

func TestRegisterIssuesTokenPair(t *testing.T) {
	svc, _, _ := newAuthService()

	pair, account, err := svc.Register(context.Background(), RegisterInput{
		Email:    "Tech@Example.com",
		Password: "supersecret",
		Name:     "Ana",
		Role:     "technician",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected a token pair")
	}
	if account.Email != "tech@example.com" {
		t.Fatalf("expected lowercased email, got %q", account.Email)
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	svc, _, _ := newAuthService()

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "not-an-email",
		Password: "short",
		Name:     "",
		Role:     "admin",
	})
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation, got %v", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthService()

	in := RegisterInput{Email: "tech@example.com", Password: "supersecret", Name: "Ana", Role: "technician"}
	if _, _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, _, err := svc.Register(context.Background(), in)
	if !common.Is(err, common.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLoginUniformFailureMessage(t *testing.T) {
	svc, _, _ := newAuthService()

	if _, _, err := svc.Register(context.Background(), RegisterInput{
		Email: "tech@example.com", Password: "supersecret", Name: "Ana", Role: "technician",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, wrongPassword := svc.Login(context.Background(), "tech@example.com", "wrong")
	_, _, unknownUser := svc.Login(context.Background(), "nobody@example.com", "whatever")

	for _, err := range []error{wrongPassword, unknownUser} {
		if !common.Is(err, common.CodeUnauthorized) {
			t.Fatalf("expected unauthorized, got %v", err)
		}
		if err.Error() != "invalid credentials" {
			t.Fatalf("expected uniform message, got %q", err.Error())
		}
	}
}

func TestLoginSucceeds(t *testing.T) {
	svc, _, _ := newAuthService()

	if _, _, err := svc.Register(context.Background(), RegisterInput{
		Email: "tech@example.com", Password: "supersecret", Name: "Ana", Role: "technician",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	pair, account, err := svc.Login(context.Background(), "TECH@example.com", "supersecret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if pair.AccessToken == "" || account == nil {
		t.Fatal("expected tokens and account")
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _, _ := newAuthService()

	pair, _, err := svc.Register(context.Background(), RegisterInput{
		Email: "tech@example.com", Password: "supersecret", Name: "Ana", Role: "technician",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	next, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if next.RefreshToken == pair.RefreshToken {
		t.Fatal("expected a rotated refresh token")
	}

	// The old token is revoked and cannot be replayed.
	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	if !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestRefreshRejectsUnknownToken(t *testing.T) {
	svc, _, _ := newAuthService()

	_, err := svc.Refresh(context.Background(), "missing")
	if !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, _, _ := newAuthService()

	pair, _, err := svc.Register(context.Background(), RegisterInput{
		Email: "tech@example.com", Password: "supersecret", Name: "Ana", Role: "technician",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.Logout(context.Background(), pair.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	// Logging out an unknown or already revoked token is not an error.
	if err := svc.Logout(context.Background(), "missing"); err != nil {
		t.Fatalf("logout unknown: %v", err)
	}
}
