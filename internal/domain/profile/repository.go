package profile

import (
	"context"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
)

// One repository per role. Services pick the implementation by role tag,
// never by building table names at runtime.

type TechnicianRepository interface {
	GetByUserID(ctx context.Context, userID common.UUID) (*TechnicianProfile, error)
	Upsert(ctx context.Context, p TechnicianProfile) (*TechnicianProfile, error)
	SetCV(ctx context.Context, userID common.UUID, filename string) error
}

type CompanyRepository interface {
	GetByUserID(ctx context.Context, userID common.UUID) (*CompanyProfile, error)
	Upsert(ctx context.Context, p CompanyProfile) (*CompanyProfile, error)
}
