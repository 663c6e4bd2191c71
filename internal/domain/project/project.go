package project

import (
	"time"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
)

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func ValidStatus(status Status) bool {
	switch status {
	case StatusOpen, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

type Project struct {
	ID                  common.UUID `json:"id"`
	CompanyID           common.UUID `json:"company_id"`
	Title               string      `json:"title"`
	Description         string      `json:"description"`
	Category            string      `json:"category"`
	Location            string      `json:"location"`
	Budget              *float64    `json:"budget,omitempty"`
	Status              Status      `json:"status"`
	ApplicationDeadline time.Time   `json:"application_deadline"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

// AcceptsApplications reports whether a technician may still apply.
func (p Project) AcceptsApplications(today time.Time) bool {
	if p.Status != StatusOpen {
		return false
	}
	deadline := p.ApplicationDeadline
	return !deadline.Before(today.Truncate(24 * time.Hour))
}
