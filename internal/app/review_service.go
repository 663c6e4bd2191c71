package app

import (
	"context"
	"strings"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/application"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/project"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/review"
)

type ReviewService struct {
	repo         review.Repository
	projects     project.Repository
	applications application.Repository
}

func NewReviewService(repo review.Repository, projects project.Repository, applications application.Repository) *ReviewService {
	return &ReviewService{repo: repo, projects: projects, applications: applications}
}

type CreateReviewInput struct {
	ProjectID common.UUID
	AuthorID  common.UUID
	Rating    int
	Comment   string
}

// Create accepts one review per participant per project, only once the
// project is completed. The target is always the other party.
func (s *ReviewService) Create(ctx context.Context, in CreateReviewInput) (*review.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, common.NewValidationError("invalid request", map[string]string{"rating": "rating must be between 1 and 5"})
	}
	proj, err := s.projects.GetByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if proj.Status != project.StatusCompleted {
		return nil, common.NewError(common.CodeInvalidState, "reviews are only allowed on completed projects", nil)
	}

	target, err := s.resolveTarget(ctx, proj, in.AuthorID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByProjectAndAuthor(ctx, in.ProjectID, in.AuthorID); err == nil {
		return nil, common.NewError(common.CodeConflict, "project already reviewed", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}

	return s.repo.Create(ctx, review.Review{
		ProjectID: in.ProjectID,
		AuthorID:  in.AuthorID,
		TargetID:  target,
		Rating:    in.Rating,
		Comment:   strings.TrimSpace(in.Comment),
	})
}

func (s *ReviewService) ListByUser(ctx context.Context, userID common.UUID) ([]review.Review, error) {
	return s.repo.ListByTarget(ctx, userID)
}

// resolveTarget figures out who is being reviewed: the company reviews the
// accepted technician and the accepted technician reviews the company.
func (s *ReviewService) resolveTarget(ctx context.Context, proj *project.Project, authorID common.UUID) (common.UUID, error) {
	accepted, err := s.acceptedTechnician(ctx, proj.ID)
	if err != nil {
		return "", err
	}
	if authorID == proj.CompanyID {
		if accepted == "" {
			return "", common.NewError(common.CodeInvalidState, "project has no accepted technician to review", nil)
		}
		return accepted, nil
	}
	if authorID == accepted {
		return proj.CompanyID, nil
	}
	return "", common.NewError(common.CodeForbidden, "only project participants can leave a review", nil)
}

func (s *ReviewService) acceptedTechnician(ctx context.Context, projectID common.UUID) (common.UUID, error) {
	apps, err := s.applications.ListByProject(ctx, projectID)
	if err != nil {
		return "", err
	}
	for _, app := range apps {
		if app.Status == application.StatusAccepted {
			return app.TechnicianID, nil
		}
	}
	return "", nil
}
