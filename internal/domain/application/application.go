package application

import (
	"time"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
)

func ValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusAccepted, StatusRejected, StatusWithdrawn:
		return true
	default:
		return false
	}
}

type Application struct {
	ID                common.UUID `json:"id"`
	ProjectID         common.UUID `json:"project_id"`
	TechnicianID      common.UUID `json:"technician_id"`
	CoverLetter       string      `json:"cover_letter"`
	ProposedRate      *float64    `json:"proposed_rate,omitempty"`
	AvailabilityStart *time.Time  `json:"availability_start,omitempty"`
	AvailabilityEnd   *time.Time  `json:"availability_end,omitempty"`
	Status            Status      `json:"status"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}
