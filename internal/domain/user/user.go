package user

import (
	"time"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
)

type Role string

const (
	RoleTechnician Role = "technician"
	RoleCompany    Role = "company"
)

func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleTechnician, RoleCompany:
		return Role(value), true
	default:
		return "", false
	}
}

type User struct {
	ID           common.UUID `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Name         string      `json:"name"`
	Role         Role        `json:"role"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
