package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/user"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/http/handlers"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/http/metrics"
	httpmw "github.com/amadokevin66-sudo/back-trabajatec/internal/http/middleware"
)

type RouterDependencies struct {
	AuthHandler         *handlers.AuthHandler
	ProfileHandler      *handlers.ProfileHandler
	ProjectHandler      *handlers.ProjectHandler
	ApplicationHandler  *handlers.ApplicationHandler
	MessageHandler      *handlers.MessageHandler
	ReviewHandler       *handlers.ReviewHandler
	NotificationHandler *handlers.NotificationHandler
	UploadHandler       *handlers.UploadHandler
	MetricsHandler      *handlers.MetricsHandler
	HealthHandler       *handlers.HealthHandler
	AuthMiddleware      *httpmw.AuthMiddleware
	Metrics             *metrics.Collector
	Logger              zerolog.Logger
	RequestTimeout      time.Duration
}

type Router struct {
	deps RouterDependencies
}

const (
	maxBodyBytes = 1 << 20
	// multipart CV uploads carry up to 10MB of file plus form overhead
	maxUploadBytes = 12 << 20
)

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	bodyLimit := int64(maxBodyBytes)
	if strings.HasPrefix(req.URL.Path, "/uploads/") {
		bodyLimit = maxUploadBytes
	}
	handler := httpmw.Chain(r.baseHandler(),
		httpmw.RequestID,
		httpmw.Logging(r.deps.Logger),
		httpmw.BodyLimit(bodyLimit),
		httpmw.Recover(r.deps.Logger),
		httpmw.Metrics(r.deps.Metrics),
		httpmw.Timeout(r.deps.RequestTimeout),
	)
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			r.deps.HealthHandler.Get(w, req)
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.MetricsHandler.Get(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/register":
			r.deps.AuthHandler.Register(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/login":
			r.deps.AuthHandler.Login(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/refresh":
			r.deps.AuthHandler.Refresh(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/logout":
			r.deps.AuthHandler.Logout(w, req)
			return
		case req.Method == http.MethodGet && path == "/projects":
			r.deps.ProjectHandler.ListOpen(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/projects/") &&
			!strings.HasSuffix(path, "/applications"):
			r.deps.ProjectHandler.Get(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/users/") && strings.HasSuffix(path, "/reviews"):
			r.deps.ReviewHandler.ListByUser(w, req)
			return
		}

		if strings.HasPrefix(path, "/projects") || strings.HasPrefix(path, "/applications") ||
			strings.HasPrefix(path, "/technicians") || strings.HasPrefix(path, "/companies") ||
			strings.HasPrefix(path, "/notifications") || strings.HasPrefix(path, "/uploads") {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				r.handleProtected(w, req)
			}))
			protected.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodGet && path == "/technicians/profile":
		httpmw.RequireRole(user.RoleTechnician)(http.HandlerFunc(r.deps.ProfileHandler.GetTechnician)).ServeHTTP(w, req)
		return
	case (req.Method == http.MethodPost || req.Method == http.MethodPut) && path == "/technicians/profile":
		httpmw.RequireRole(user.RoleTechnician)(http.HandlerFunc(r.deps.ProfileHandler.UpsertTechnician)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/companies/profile":
		httpmw.RequireRole(user.RoleCompany)(http.HandlerFunc(r.deps.ProfileHandler.GetCompany)).ServeHTTP(w, req)
		return
	case (req.Method == http.MethodPost || req.Method == http.MethodPut) && path == "/companies/profile":
		httpmw.RequireRole(user.RoleCompany)(http.HandlerFunc(r.deps.ProfileHandler.UpsertCompany)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/uploads/cv":
		httpmw.RequireRole(user.RoleTechnician)(http.HandlerFunc(r.deps.UploadHandler.UploadCV)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/projects":
		httpmw.RequireRole(user.RoleCompany)(http.HandlerFunc(r.deps.ProjectHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/companies/projects":
		httpmw.RequireRole(user.RoleCompany)(http.HandlerFunc(r.deps.ProjectHandler.ListByCompany)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/projects/") && strings.HasSuffix(path, "/applications"):
		httpmw.RequireRole(user.RoleCompany)(http.HandlerFunc(r.deps.ApplicationHandler.ListForProject)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/projects/") && strings.HasSuffix(path, "/status"):
		httpmw.RequireRole(user.RoleCompany)(http.HandlerFunc(r.deps.ProjectHandler.UpdateStatus)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/projects/") && strings.HasSuffix(path, "/reviews"):
		r.deps.ReviewHandler.Create(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/projects/"):
		httpmw.RequireRole(user.RoleCompany)(http.HandlerFunc(r.deps.ProjectHandler.Update)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/applications":
		httpmw.RequireRole(user.RoleTechnician)(http.HandlerFunc(r.deps.ApplicationHandler.Submit)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications/my":
		httpmw.RequireRole(user.RoleTechnician)(http.HandlerFunc(r.deps.ApplicationHandler.ListMine)).ServeHTTP(w, req)
		return
	case (req.Method == http.MethodPut || req.Method == http.MethodPatch) && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/status"):
		httpmw.RequireRole(user.RoleCompany)(http.HandlerFunc(r.deps.ApplicationHandler.UpdateStatus)).ServeHTTP(w, req)
		return
	// No role gate here: the service hides the resource with not_found for
	// anyone but the owning technician, so existence never leaks as a 403.
	case (req.Method == http.MethodPut || req.Method == http.MethodPatch) && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/withdraw"):
		r.deps.ApplicationHandler.Withdraw(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/messages"):
		r.deps.MessageHandler.Send(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/messages"):
		r.deps.MessageHandler.List(w, req)
		return
	case req.Method == http.MethodGet && path == "/notifications":
		r.deps.NotificationHandler.List(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/notifications/") && strings.HasSuffix(path, "/read"):
		r.deps.NotificationHandler.MarkRead(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/notifications/"):
		r.deps.NotificationHandler.Delete(w, req)
		return
	}

	http.NotFound(w, req)
}
