package review

import (
	"context"
	"time"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
)

type Review struct {
	ID        common.UUID `json:"id"`
	ProjectID common.UUID `json:"project_id"`
	AuthorID  common.UUID `json:"author_id"`
	TargetID  common.UUID `json:"target_id"`
	Rating    int         `json:"rating"`
	Comment   string      `json:"comment"`
	CreatedAt time.Time   `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, r Review) (*Review, error)
	FindByProjectAndAuthor(ctx context.Context, projectID, authorID common.UUID) (*Review, error)
	ListByTarget(ctx context.Context, targetID common.UUID) ([]Review, error)
}
