package profile

import (
	"time"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
)

type TechnicianProfile struct {
	UserID     common.UUID `json:"user_id"`
	FullName   string      `json:"full_name"`
	Phone      string      `json:"phone"`
	Skills     []string    `json:"skills"`
	Bio        string      `json:"bio"`
	HourlyRate *float64    `json:"hourly_rate,omitempty"`
	CVUploaded bool        `json:"cv_uploaded"`
	CVFile     string      `json:"cv_file,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

type CompanyProfile struct {
	UserID      common.UUID `json:"user_id"`
	CompanyName string      `json:"company_name"`
	Phone       string      `json:"phone"`
	Description string      `json:"description"`
	Website     string      `json:"website"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
