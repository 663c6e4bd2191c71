package handlers

import (
	"net/http"
	"strconv"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/app"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/project"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/http/middleware"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/http/response"
)

type ProjectHandler struct {
	projects *app.ProjectService
}

func NewProjectHandler(projects *app.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

type projectRequest struct {
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	Category            string   `json:"category"`
	Location            string   `json:"location"`
	Budget              *float64 `json:"budget"`
	Status              string   `json:"status"`
	ApplicationDeadline string   `json:"application_deadline"`
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req projectRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	deadline, err := parseDate("application_deadline", req.ApplicationDeadline)
	if err != nil {
		response.Error(w, err)
		return
	}
	p := project.Project{
		CompanyID:   companyID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Budget:      req.Budget,
		Status:      project.Status(req.Status),
	}
	if deadline != nil {
		p.ApplicationDeadline = *deadline
	}
	created, err := h.projects.Create(r.Context(), p)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	var req projectRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	deadline, err := parseDate("application_deadline", req.ApplicationDeadline)
	if err != nil {
		response.Error(w, err)
		return
	}
	p := project.Project{
		ID:          projectID,
		CompanyID:   companyID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Budget:      req.Budget,
		Status:      project.Status(req.Status),
	}
	if deadline != nil {
		p.ApplicationDeadline = *deadline
	}
	updated, err := h.projects.Update(r.Context(), p)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

type projectStatusRequest struct {
	Status string `json:"status"`
}

func (h *ProjectHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
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
	var req projectStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if req.Status == "" {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"status": "status is required"}))
		return
	}
	updated, err := h.projects.UpdateStatus(r.Context(), companyID, projectID, project.Status(req.Status))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	projectID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.projects.Get(r.Context(), projectID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *ProjectHandler) ListOpen(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	items, err := h.projects.ListOpen(r.Context(), limit, offset)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ProjectHandler) ListByCompany(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.projects.ListByCompany(r.Context(), companyID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}
