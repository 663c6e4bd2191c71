package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/app"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/application"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/http/middleware"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/http/response"
)

type ApplicationHandler struct {
	applications *app.ApplicationService
	limiter      middleware.Limiter
}

func NewApplicationHandler(applications *app.ApplicationService, limiter middleware.Limiter) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, limiter: limiter}
}

type submitRequest struct {
	ProjectID         string   `json:"project_id"`
	CoverLetter       string   `json:"cover_letter"`
	ProposedRate      *float64 `json:"proposed_rate"`
	AvailabilityStart string   `json:"availability_start"`
	AvailabilityEnd   string   `json:"availability_end"`
}

func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	technicianID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	role, _ := middleware.RoleFromContext(r.Context())

	var req submitRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if strings.TrimSpace(req.ProjectID) == "" {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"project_id": "project_id is required"}))
		return
	}
	projectID, err := common.ParseUUID(req.ProjectID)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"project_id": "invalid uuid"}))
		return
	}
	availabilityStart, err := parseDate("availability_start", req.AvailabilityStart)
	if err != nil {
		response.Error(w, err)
		return
	}
	availabilityEnd, err := parseDate("availability_end", req.AvailabilityEnd)
	if err != nil {
		response.Error(w, err)
		return
	}
	if h.limiter != nil {
		key := "apply:" + projectID.String() + ":" + technicianID.String()
		if !h.limiter.Allow(key, 3, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "apply rate limit exceeded", nil))
			return
		}
	}

	created, err := h.applications.Submit(r.Context(), technicianID, role, app.SubmitApplicationInput{
		ProjectID:         projectID,
		CoverLetter:       req.CoverLetter,
		ProposedRate:      req.ProposedRate,
		AvailabilityStart: availabilityStart,
		AvailabilityEnd:   availabilityEnd,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, map[string]string{
		"message":        "application submitted",
		"application_id": created.ID.String(),
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	role, _ := middleware.RoleFromContext(r.Context())
	applicationID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if req.Status == "" {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"status": "status is required"}))
		return
	}
	status, err := h.applications.UpdateStatus(r.Context(), companyID, role, applicationID, application.Status(req.Status))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{
		"message": "application status updated",
		"status":  string(status),
	})
}

func (h *ApplicationHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	technicianID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	role, _ := middleware.RoleFromContext(r.Context())
	applicationID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	if _, err := h.applications.Withdraw(r.Context(), technicianID, role, applicationID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"message": "application withdrawn"})
}

func (h *ApplicationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	technicianID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.applications.ListMine(r.Context(), technicianID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

// ListForProject serves GET /projects/{id}/applications for the owning
// company.
func (h *ApplicationHandler) ListForProject(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	projectID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	items, err := h.applications.ListForProject(r.Context(), companyID, projectID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}
