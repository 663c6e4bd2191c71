package app

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/auth"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/user"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/security"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type AuthService struct {
	users      user.Repository
	refresh    auth.RefreshTokenRepository
	jwt        *security.JWTProvider
	hasher     security.PasswordHasher
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     zerolog.Logger
}

func NewAuthService(users user.Repository, refresh auth.RefreshTokenRepository, jwt *security.JWTProvider, hasher security.PasswordHasher, accessTTL, refreshTTL time.Duration, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, refresh: refresh, jwt: jwt, hasher: hasher, accessTTL: accessTTL, refreshTTL: refreshTTL, logger: logger}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*auth.TokenPair, *user.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	fields := map[string]string{}
	if !emailPattern.MatchString(email) {
		fields["email"] = "a valid email is required"
	}
	if len(in.Password) < 8 {
		fields["password"] = "password must be at least 8 characters"
	}
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "name is required"
	}
	role, ok := user.ParseRole(strings.ToLower(strings.TrimSpace(in.Role)))
	if !ok {
		fields["role"] = "role must be technician or company"
	}
	if len(fields) > 0 {
		return nil, nil, common.NewValidationError("invalid request", fields)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, nil, common.NewError(common.CodeConflict, "email is already registered", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	account, err := s.users.Create(ctx, user.User{
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(in.Name),
		Role:         role,
	})
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.issuePair(ctx, account)
	if err != nil {
		return nil, nil, err
	}
	return pair, account, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*auth.TokenPair, *user.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	account, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, nil, common.NewError(common.CodeUnauthorized, "invalid credentials", nil)
		}
		return nil, nil, err
	}
	if !s.hasher.Compare(account.PasswordHash, password) {
		return nil, nil, common.NewError(common.CodeUnauthorized, "invalid credentials", nil)
	}
	pair, err := s.issuePair(ctx, account)
	if err != nil {
		return nil, nil, err
	}
	return pair, account, nil
}

// Refresh rotates the presented token: the old one is revoked and a fresh
// pair is issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	stored, err := s.refresh.GetByToken(ctx, refreshToken)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeUnauthorized, "invalid refresh token", nil)
		}
		return nil, err
	}
	now := time.Now().UTC()
	if !stored.Usable(now) {
		return nil, common.NewError(common.CodeUnauthorized, "refresh token expired or revoked", nil)
	}
	account, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.refresh.Revoke(ctx, refreshToken, now.Unix()); err != nil {
		return nil, err
	}
	return s.issuePair(ctx, account)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	err := s.refresh.Revoke(ctx, refreshToken, time.Now().UTC().Unix())
	if err != nil && common.Is(err, common.CodeNotFound) {
		return nil
	}
	return err
}

func (s *AuthService) issuePair(ctx context.Context, account *user.User) (*auth.TokenPair, error) {
	access, expiresAt, err := s.jwt.Generate(account.ID, string(account.Role), s.accessTTL)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to sign token", err)
	}
	now := time.Now().UTC()
	token := auth.RefreshToken{
		Token:     common.NewUUID().String() + common.NewUUID().String(),
		UserID:    account.ID,
		ExpiresAt: now.Add(s.refreshTTL),
		CreatedAt: now,
	}
	if err := s.refresh.Store(ctx, token); err != nil {
		return nil, err
	}
	return &auth.TokenPair{AccessToken: access, RefreshToken: token.Token, ExpiresAt: expiresAt}, nil
}
