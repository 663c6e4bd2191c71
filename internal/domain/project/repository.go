package project

import (
	"context"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
)

type Repository interface {
	Create(ctx context.Context, p Project) (*Project, error)
	Update(ctx context.Context, p Project) (*Project, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status) (*Project, error)
	GetByID(ctx context.Context, id common.UUID) (*Project, error)
	ListOpen(ctx context.Context, limit, offset int) ([]Project, error)
	ListByCompany(ctx context.Context, companyID common.UUID) ([]Project, error)
}
