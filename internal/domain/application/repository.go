package application

import (
	"context"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
)

type Repository interface {
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	FindByProjectAndTechnician(ctx context.Context, projectID, technicianID common.UUID) (*Application, error)
	ListByTechnician(ctx context.Context, technicianID common.UUID) ([]Application, error)
	ListByProject(ctx context.Context, projectID common.UUID) ([]Application, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status) (*Application, error)
}
