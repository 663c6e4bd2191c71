package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/app"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/application"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/notification"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/profile"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/project"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/review"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/user"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/http/handlers"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/http/metrics"
	httpmw "github.com/amadokevin66-sudo/back-trabajatec/internal/http/middleware"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/mail"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/security"
)

func routeNotFound() error {
	return common.NewError(common.CodeNotFound, "not found", nil)
}

type routeApplicationRepo struct {
	stored *application.Application
}

func (r *routeApplicationRepo) Create(ctx context.Context, a application.Application) (*application.Application, error) {
	return &a, nil
}

func (r *routeApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	if r.stored != nil && r.stored.ID == id {
		copied := *r.stored
		return &copied, nil
	}
	return nil, routeNotFound()
}

func (r *routeApplicationRepo) FindByProjectAndTechnician(ctx context.Context, projectID, technicianID common.UUID) (*application.Application, error) {
	return nil, routeNotFound()
}

func (r *routeApplicationRepo) ListByTechnician(ctx context.Context, technicianID common.UUID) ([]application.Application, error) {
	return nil, nil
}

func (r *routeApplicationRepo) ListByProject(ctx context.Context, projectID common.UUID) ([]application.Application, error) {
	if r.stored != nil && r.stored.ProjectID == projectID {
		return []application.Application{*r.stored}, nil
	}
	return nil, nil
}

func (r *routeApplicationRepo) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	if r.stored == nil || r.stored.ID != id {
		return nil, routeNotFound()
	}
	r.stored.Status = status
	copied := *r.stored
	return &copied, nil
}

type routeProjectRepo struct {
	stored *project.Project
}

func (r *routeProjectRepo) Create(ctx context.Context, p project.Project) (*project.Project, error) {
	return &p, nil
}

func (r *routeProjectRepo) Update(ctx context.Context, p project.Project) (*project.Project, error) {
	return &p, nil
}

func (r *routeProjectRepo) UpdateStatus(ctx context.Context, id common.UUID, status project.Status) (*project.Project, error) {
	if r.stored == nil || r.stored.ID != id {
		return nil, routeNotFound()
	}
	r.stored.Status = status
	copied := *r.stored
	return &copied, nil
}

func (r *routeProjectRepo) GetByID(ctx context.Context, id common.UUID) (*project.Project, error) {
	if r.stored != nil && r.stored.ID == id {
		copied := *r.stored
		return &copied, nil
	}
	return nil, routeNotFound()
}

func (r *routeProjectRepo) ListOpen(ctx context.Context, limit, offset int) ([]project.Project, error) {
	return nil, nil
}

func (r *routeProjectRepo) ListByCompany(ctx context.Context, companyID common.UUID) ([]project.Project, error) {
	return nil, nil
}

type routeTechnicianRepo struct{}

func (routeTechnicianRepo) GetByUserID(ctx context.Context, userID common.UUID) (*profile.TechnicianProfile, error) {
	return nil, routeNotFound()
}

func (routeTechnicianRepo) Upsert(ctx context.Context, p profile.TechnicianProfile) (*profile.TechnicianProfile, error) {
	return &p, nil
}

func (routeTechnicianRepo) SetCV(ctx context.Context, userID common.UUID, filename string) error {
	return nil
}

type routeCompanyRepo struct{}

func (routeCompanyRepo) GetByUserID(ctx context.Context, userID common.UUID) (*profile.CompanyProfile, error) {
	return nil, routeNotFound()
}

func (routeCompanyRepo) Upsert(ctx context.Context, p profile.CompanyProfile) (*profile.CompanyProfile, error) {
	return &p, nil
}

type routeUserRepo struct{}

func (routeUserRepo) Create(ctx context.Context, account user.User) (*user.User, error) {
	return &account, nil
}

func (routeUserRepo) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	return nil, routeNotFound()
}

func (routeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, routeNotFound()
}

type routeNotificationRepo struct{}

func (routeNotificationRepo) Create(ctx context.Context, n notification.Notification) (common.UUID, error) {
	return common.NewUUID(), nil
}

func (routeNotificationRepo) GetByID(ctx context.Context, id common.UUID) (*notification.Notification, error) {
	return nil, routeNotFound()
}

func (routeNotificationRepo) ListByUser(ctx context.Context, userID common.UUID) ([]notification.Notification, error) {
	return nil, nil
}

func (routeNotificationRepo) MarkRead(ctx context.Context, id, userID common.UUID) error {
	return nil
}

func (routeNotificationRepo) Delete(ctx context.Context, id, userID common.UUID) error {
	return nil
}

type routeReviewRepo struct{}

func (routeReviewRepo) Create(ctx context.Context, rv review.Review) (*review.Review, error) {
	return &rv, nil
}

func (routeReviewRepo) FindByProjectAndAuthor(ctx context.Context, projectID, authorID common.UUID) (*review.Review, error) {
	return nil, routeNotFound()
}

func (routeReviewRepo) ListByTarget(ctx context.Context, targetID common.UUID) ([]review.Review, error) {
	return nil, nil
}

type routeSender struct{}

func (routeSender) Send(msg mail.OutboundEmail) mail.Result {
	return mail.Result{Delivered: true}
}

type routeResolver struct{}

func (routeResolver) Path(stored string) (string, error) {
	return "/tmp/uploads/" + stored, nil
}

type routerFixture struct {
	handler      http.Handler
	jwt          *security.JWTProvider
	technicianID common.UUID
	companyID    common.UUID
	project      *project.Project
	application  *application.Application
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	logger := zerolog.Nop()
	technicianID := common.NewUUID()
	companyID := common.NewUUID()
	proj := &project.Project{
		ID:        common.NewUUID(),
		CompanyID: companyID,
		Title:     "Fiber rollout",
		Status:    project.StatusOpen,
	}
	stored := &application.Application{
		ID:           common.NewUUID(),
		ProjectID:    proj.ID,
		TechnicianID: technicianID,
		CoverLetter:  "hello",
		Status:       application.StatusPending,
	}

	applicationRepo := &routeApplicationRepo{stored: stored}
	projectRepo := &routeProjectRepo{stored: proj}
	applications := app.NewApplicationService(
		applicationRepo,
		projectRepo,
		routeTechnicianRepo{},
		routeCompanyRepo{},
		routeUserRepo{},
		routeNotificationRepo{},
		routeSender{},
		routeResolver{},
		application.DefaultPolicy(),
		"ops@example.com",
		logger,
	)
	projects := app.NewProjectService(projectRepo)
	reviews := app.NewReviewService(routeReviewRepo{}, projectRepo, applicationRepo)

	jwt := security.NewJWTProvider("router-test-secret")
	handler := NewRouter(RouterDependencies{
		ApplicationHandler: handlers.NewApplicationHandler(applications, nil),
		ProjectHandler:     handlers.NewProjectHandler(projects),
		ReviewHandler:      handlers.NewReviewHandler(reviews),
		AuthMiddleware:     httpmw.NewAuthMiddleware(jwt),
		Metrics:            metrics.NewCollector(),
		Logger:             logger,
		RequestTimeout:     time.Second,
	})
	return &routerFixture{
		handler:      handler,
		jwt:          jwt,
		technicianID: technicianID,
		companyID:    companyID,
		project:      proj,
		application:  stored,
	}
}

func (f *routerFixture) bearer(t *testing.T, id common.UUID, role string) string {
	t.Helper()
	token, _, err := f.jwt.Generate(id, role, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return "Bearer " + token
}

func (f *routerFixture) do(t *testing.T, method, target, auth, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return envelope.Error.Code
}

func TestWithdrawHidesApplicationFromCompanyRole(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodPut, "/applications/"+f.application.ID.String()+"/withdraw",
		f.bearer(t, f.companyID, "company"), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "not_found" {
		t.Fatalf("expected not_found, got %q", code)
	}
	if f.application.Status != application.StatusPending {
		t.Fatalf("application should stay pending, got %s", f.application.Status)
	}
}

func TestWithdrawHidesApplicationFromOtherTechnician(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodPut, "/applications/"+f.application.ID.String()+"/withdraw",
		f.bearer(t, common.NewUUID(), "technician"), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "not_found" {
		t.Fatalf("expected not_found, got %q", code)
	}
}

func TestWithdrawByOwningTechnician(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodPut, "/applications/"+f.application.ID.String()+"/withdraw",
		f.bearer(t, f.technicianID, "technician"), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if f.application.Status != application.StatusWithdrawn {
		t.Fatalf("expected withdrawn, got %s", f.application.Status)
	}
}

func TestCompanyProjectsRoute(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/companies/projects", f.bearer(t, f.companyID, "company"), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = f.do(t, http.MethodGet, "/companies/projects", f.bearer(t, f.technicianID, "technician"), "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for technician, got %d", rec.Code)
	}
}

func TestProjectUpdateUsesPatch(t *testing.T) {
	f := newRouterFixture(t)
	body := `{"title":"Fiber rollout phase 2","description":"extended scope"}`

	rec := f.do(t, http.MethodPatch, "/projects/"+f.project.ID.String(),
		f.bearer(t, f.companyID, "company"), body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = f.do(t, http.MethodPut, "/projects/"+f.project.ID.String(),
		f.bearer(t, f.companyID, "company"), body)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("PUT should not be routed, got %d", rec.Code)
	}
}

func TestReviewCreationNestedUnderProject(t *testing.T) {
	f := newRouterFixture(t)
	f.project.Status = project.StatusCompleted
	f.application.Status = application.StatusAccepted

	rec := f.do(t, http.MethodPost, "/projects/"+f.project.ID.String()+"/reviews",
		f.bearer(t, f.companyID, "company"), `{"rating":5,"comment":"great work"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}
