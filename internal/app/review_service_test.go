package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/application"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/project"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/review"
)

type fakeReviewRepo struct {
	mu    sync.Mutex
	items []review.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{}
}

func (r *fakeReviewRepo) Create(ctx context.Context, rv review.Review) (*review.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.ProjectID == rv.ProjectID && existing.AuthorID == rv.AuthorID {
			return nil, common.NewError(common.CodeConflict, "project already reviewed", nil)
		}
	}
	rv.ID = common.NewUUID()
	rv.CreatedAt = time.Now().UTC()
	r.items = append(r.items, rv)
	out := rv
	return &out, nil
}

func (r *fakeReviewRepo) FindByProjectAndAuthor(ctx context.Context, projectID, authorID common.UUID) (*review.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.ProjectID == projectID && item.AuthorID == authorID {
			out := item
			return &out, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "review not found", nil)
}

func (r *fakeReviewRepo) ListByTarget(ctx context.Context, targetID common.UUID) ([]review.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []review.Review
	for _, item := range r.items {
		if item.TargetID == targetID {
			out = append(out, item)
		}
	}
	return out, nil
}

type reviewFixture struct {
	service      *ReviewService
	projects     *fakeProjectRepo
	applications *fakeApplicationRepo

	companyID    common.UUID
	technicianID common.UUID
	projectID    common.UUID
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()

	f := &reviewFixture{
		projects:     newFakeProjectRepo(),
		applications: newFakeApplicationRepo(),
		companyID:    common.NewUUID(),
		technicianID: common.NewUUID(),
	}
	f.service = NewReviewService(newFakeReviewRepo(), f.projects, f.applications)

	ctx := context.Background()
	proj, err := f.projects.Create(ctx, project.Project{
		CompanyID:           f.companyID,
		Title:               "Completed job",
		Status:              project.StatusCompleted,
		ApplicationDeadline: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	f.projectID = proj.ID

	app, err := f.applications.Create(ctx, application.Application{
		ProjectID:    proj.ID,
		TechnicianID: f.technicianID,
		CoverLetter:  "done",
		Status:       application.StatusPending,
	})
	if err != nil {
		t.Fatalf("create application: %v", err)
	}
	if _, err := f.applications.UpdateStatus(ctx, app.ID, application.StatusAccepted); err != nil {
		t.Fatalf("accept application: %v", err)
	}
	return f
}

func TestReviewCompanyReviewsAcceptedTechnician(t *testing.T) {
	f := newReviewFixture(t)

	created, err := f.service.Create(context.Background(), CreateReviewInput{
		ProjectID: f.projectID,
		AuthorID:  f.companyID,
		Rating:    5,
		Comment:   "great work",
	})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
	if created.TargetID != f.technicianID {
		t.Fatalf("expected technician target, got %s", created.TargetID)
	}
}

func TestReviewTechnicianReviewsCompany(t *testing.T) {
	f := newReviewFixture(t)

	created, err := f.service.Create(context.Background(), CreateReviewInput{
		ProjectID: f.projectID,
		AuthorID:  f.technicianID,
		Rating:    4,
	})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
	if created.TargetID != f.companyID {
		t.Fatalf("expected company target, got %s", created.TargetID)
	}
}

func TestReviewRatingBounds(t *testing.T) {
	f := newReviewFixture(t)

	for _, rating := range []int{0, 6, -1} {
		_, err := f.service.Create(context.Background(), CreateReviewInput{
			ProjectID: f.projectID,
			AuthorID:  f.companyID,
			Rating:    rating,
		})
		if !common.Is(err, common.CodeValidation) {
			t.Fatalf("rating %d: expected validation, got %v", rating, err)
		}
	}
}

func TestReviewRequiresCompletedProject(t *testing.T) {
	f := newReviewFixture(t)

	ctx := context.Background()
	if _, err := f.projects.UpdateStatus(ctx, f.projectID, project.StatusInProgress); err != nil {
		t.Fatalf("update status: %v", err)
	}
	_, err := f.service.Create(ctx, CreateReviewInput{
		ProjectID: f.projectID,
		AuthorID:  f.companyID,
		Rating:    5,
	})
	if !common.Is(err, common.CodeInvalidState) {
		t.Fatalf("expected invalid_state, got %v", err)
	}
}

func TestReviewOncePerAuthor(t *testing.T) {
	f := newReviewFixture(t)

	ctx := context.Background()
	if _, err := f.service.Create(ctx, CreateReviewInput{ProjectID: f.projectID, AuthorID: f.companyID, Rating: 5}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := f.service.Create(ctx, CreateReviewInput{ProjectID: f.projectID, AuthorID: f.companyID, Rating: 3})
	if !common.Is(err, common.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	// The other party still gets their one review.
	if _, err := f.service.Create(ctx, CreateReviewInput{ProjectID: f.projectID, AuthorID: f.technicianID, Rating: 4}); err != nil {
		t.Fatalf("technician review: %v", err)
	}
}

func TestReviewRejectsOutsiders(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.service.Create(context.Background(), CreateReviewInput{
		ProjectID: f.projectID,
		AuthorID:  common.NewUUID(),
		Rating:    5,
	})
	if !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
