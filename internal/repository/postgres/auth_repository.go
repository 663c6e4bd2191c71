package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/auth"
)

type RefreshTokenRepository struct {
	db *sql.DB
}

func NewRefreshTokenRepository(db *sql.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Store(ctx context.Context, token auth.RefreshToken) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO refresh_tokens (token, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)`,
		token.Token, token.UserID, token.ExpiresAt, token.CreatedAt)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to store refresh token", err)
	}
	return nil
}

func (r *RefreshTokenRepository) GetByToken(ctx context.Context, token string) (*auth.RefreshToken, error) {
	row := r.db.QueryRowContext(ctx, `SELECT token, user_id, expires_at, created_at, revoked_at FROM refresh_tokens WHERE token = $1`, token)
	var stored auth.RefreshToken
	if err := row.Scan(&stored.Token, &stored.UserID, &stored.ExpiresAt, &stored.CreatedAt, &stored.RevokedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "refresh token not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load refresh token", err)
	}
	return &stored, nil
}

func (r *RefreshTokenRepository) Revoke(ctx context.Context, token string, revokedAtUnix int64) error {
	revokedAt := time.Unix(revokedAtUnix, 0).UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE refresh_tokens SET revoked_at = $1 WHERE token = $2 AND revoked_at IS NULL`, revokedAt, token)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to revoke refresh token", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return common.NewError(common.CodeNotFound, "refresh token not found", nil)
	}
	return nil
}

func (r *RefreshTokenRepository) RevokeAll(ctx context.Context, userID common.UUID, revokedAtUnix int64) error {
	revokedAt := time.Unix(revokedAtUnix, 0).UTC()
	_, err := r.db.ExecContext(ctx, `UPDATE refresh_tokens SET revoked_at = $1 WHERE user_id = $2 AND revoked_at IS NULL`, revokedAt, userID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to revoke refresh tokens", err)
	}
	return nil
}
