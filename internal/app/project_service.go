package app

import (
	"context"
	"strings"
	"time"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/project"
)

type ProjectService struct {
	repo project.Repository
}

func NewProjectService(repo project.Repository) *ProjectService {
	return &ProjectService{repo: repo}
}

func (s *ProjectService) Create(ctx context.Context, p project.Project) (*project.Project, error) {
	fields := map[string]string{}
	if strings.TrimSpace(p.Title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(p.Description) == "" {
		fields["description"] = "description is required"
	}
	if p.ApplicationDeadline.IsZero() {
		fields["application_deadline"] = "application_deadline is required"
	} else if p.ApplicationDeadline.Before(time.Now().UTC().Truncate(24 * time.Hour)) {
		fields["application_deadline"] = "application_deadline must not be in the past"
	}
	if p.Budget != nil && *p.Budget < 0 {
		fields["budget"] = "budget must not be negative"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid request", fields)
	}
	if p.Status == "" {
		p.Status = project.StatusOpen
	}
	if !project.ValidStatus(p.Status) {
		return nil, common.NewValidationError("invalid request", map[string]string{"status": "unknown status"})
	}
	return s.repo.Create(ctx, p)
}

func (s *ProjectService) Update(ctx context.Context, p project.Project) (*project.Project, error) {
	current, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if current.CompanyID != p.CompanyID {
		return nil, common.NewError(common.CodeForbidden, "project belongs to another company", nil)
	}
	if p.Status == "" {
		p.Status = current.Status
	}
	if !project.ValidStatus(p.Status) {
		return nil, common.NewValidationError("invalid request", map[string]string{"status": "unknown status"})
	}
	return s.repo.Update(ctx, p)
}

func (s *ProjectService) UpdateStatus(ctx context.Context, companyID, projectID common.UUID, status project.Status) (*project.Project, error) {
	current, err := s.repo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if current.CompanyID != companyID {
		return nil, common.NewError(common.CodeForbidden, "project belongs to another company", nil)
	}
	status = project.Status(strings.ToLower(strings.TrimSpace(string(status))))
	if !project.ValidStatus(status) {
		return nil, common.NewValidationError("invalid request", map[string]string{"status": "unknown status"})
	}
	if !projectTransitionAllowed(current.Status, status) {
		return nil, common.NewError(common.CodeInvalidState, "project cannot change from "+string(current.Status)+" to "+string(status), nil)
	}
	return s.repo.UpdateStatus(ctx, projectID, status)
}

func projectTransitionAllowed(from, to project.Status) bool {
	if from == to {
		return true
	}
	switch from {
	case project.StatusOpen:
		return to == project.StatusInProgress || to == project.StatusCancelled
	case project.StatusInProgress:
		return to == project.StatusCompleted || to == project.StatusCancelled
	default:
		return false
	}
}

func (s *ProjectService) Get(ctx context.Context, id common.UUID) (*project.Project, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProjectService) ListOpen(ctx context.Context, limit, offset int) ([]project.Project, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListOpen(ctx, limit, offset)
}

func (s *ProjectService) ListByCompany(ctx context.Context, companyID common.UUID) ([]project.Project, error) {
	return s.repo.ListByCompany(ctx, companyID)
}
