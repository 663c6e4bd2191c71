package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/review"
)

type ReviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rev review.Review) (*review.Review, error) {
	rev.ID = common.NewUUID()
	rev.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO reviews (id, project_id, author_id, target_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rev.ID, rev.ProjectID, rev.AuthorID, rev.TargetID, rev.Rating, rev.Comment, rev.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "project already reviewed", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create review", err)
	}
	return &rev, nil
}

func (r *ReviewRepository) FindByProjectAndAuthor(ctx context.Context, projectID, authorID common.UUID) (*review.Review, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, project_id, author_id, target_id, rating, comment, created_at
		FROM reviews WHERE project_id = $1 AND author_id = $2`, projectID, authorID)
	var rev review.Review
	if err := row.Scan(&rev.ID, &rev.ProjectID, &rev.AuthorID, &rev.TargetID, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "review not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load review", err)
	}
	return &rev, nil
}

func (r *ReviewRepository) ListByTarget(ctx context.Context, targetID common.UUID) ([]review.Review, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, project_id, author_id, target_id, rating, comment, created_at
		FROM reviews WHERE target_id = $1 ORDER BY created_at DESC`, targetID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list reviews", err)
	}
	defer rows.Close()
	var items []review.Review
	for rows.Next() {
		var rev review.Review
		if err := rows.Scan(&rev.ID, &rev.ProjectID, &rev.AuthorID, &rev.TargetID, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan review", err)
		}
		items = append(items, rev)
	}
	return items, nil
}
