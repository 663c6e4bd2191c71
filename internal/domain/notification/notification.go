package notification

import (
	"time"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
)

type Type string

const (
	TypeApplicationSubmitted Type = "application_submitted"
	TypeApplicationReceived  Type = "application_received"
	TypeStatusChanged        Type = "status_changed"
	TypeGeneric              Type = "generic"
)

// Notification is an in-app, persisted, per-user message. Only the system
// creates them; the target user owns them for read and delete purposes.
type Notification struct {
	ID        common.UUID  `json:"id"`
	UserID    common.UUID  `json:"user_id"`
	Type      Type         `json:"type"`
	Title     string       `json:"title"`
	Message   string       `json:"message"`
	RelatedID *common.UUID `json:"related_id,omitempty"`
	IsRead    bool         `json:"is_read"`
	CreatedAt time.Time    `json:"created_at"`
}
