package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/notification"
)

type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n notification.Notification) (common.UUID, error) {
	n.ID = common.NewUUID()
	n.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO notifications (id, user_id, type, title, message, related_id, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7)`,
		n.ID, n.UserID, n.Type, n.Title, n.Message, n.RelatedID, n.CreatedAt)
	if err != nil {
		return "", common.NewError(common.CodeInternal, "failed to create notification", err)
	}
	return n.ID, nil
}

func (r *NotificationRepository) GetByID(ctx context.Context, id common.UUID) (*notification.Notification, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, user_id, type, title, message, related_id, is_read, created_at FROM notifications WHERE id = $1`, id)
	var n notification.Notification
	if err := row.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.RelatedID, &n.IsRead, &n.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "notification not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load notification", err)
	}
	return &n, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID common.UUID) ([]notification.Notification, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, user_id, type, title, message, related_id, is_read, created_at
		FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list notifications", err)
	}
	defer rows.Close()
	var items []notification.Notification
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.RelatedID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan notification", err)
		}
		items = append(items, n)
	}
	return items, nil
}

// MarkRead and Delete are scoped by user_id so a notification owned by
// someone else behaves exactly like a missing one.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID common.UUID) error {
	result, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to mark notification read", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return common.NewError(common.CodeNotFound, "notification not found", nil)
	}
	return nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id, userID common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete notification", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return common.NewError(common.CodeNotFound, "notification not found", nil)
	}
	return nil
}
