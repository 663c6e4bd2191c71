package notification

import (
	"context"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
)

type Repository interface {
	Create(ctx context.Context, n Notification) (common.UUID, error)
	GetByID(ctx context.Context, id common.UUID) (*Notification, error)
	ListByUser(ctx context.Context, userID common.UUID) ([]Notification, error)
	MarkRead(ctx context.Context, id, userID common.UUID) error
	Delete(ctx context.Context, id, userID common.UUID) error
}
