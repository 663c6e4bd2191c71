package message

import (
	"context"
	"time"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
)

type Message struct {
	ID            common.UUID `json:"id"`
	ApplicationID common.UUID `json:"application_id"`
	SenderID      common.UUID `json:"sender_id"`
	Body          string      `json:"body"`
	CreatedAt     time.Time   `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, m Message) (*Message, error)
	ListByApplication(ctx context.Context, applicationID common.UUID, limit, offset int) ([]Message, error)
}
