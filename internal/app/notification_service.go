package app

import (
	"context"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/notification"
)

// NotificationService covers the user-facing surface only; writes happen
// inside the lifecycle flows.
type NotificationService struct {
	repo notification.Repository
}

func NewNotificationService(repo notification.Repository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) List(ctx context.Context, userID common.UUID) ([]notification.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID common.UUID) error {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *NotificationService) Delete(ctx context.Context, id, userID common.UUID) error {
	return s.repo.Delete(ctx, id, userID)
}
