package handlers

import (
	"net/http"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/app"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/profile"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/user"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/http/middleware"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/http/response"
)

type ProfileHandler struct {
	profiles *app.ProfileService
}

func NewProfileHandler(profiles *app.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) GetTechnician(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	item, err := h.profiles.Get(r.Context(), userID, user.RoleTechnician)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

type technicianProfileRequest struct {
	FullName   string   `json:"full_name"`
	Phone      string   `json:"phone"`
	Skills     []string `json:"skills"`
	Bio        string   `json:"bio"`
	HourlyRate *float64 `json:"hourly_rate"`
}

func (h *ProfileHandler) UpsertTechnician(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req technicianProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.profiles.UpsertTechnician(r.Context(), profile.TechnicianProfile{
		UserID:     userID,
		FullName:   req.FullName,
		Phone:      req.Phone,
		Skills:     req.Skills,
		Bio:        req.Bio,
		HourlyRate: req.HourlyRate,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *ProfileHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	item, err := h.profiles.Get(r.Context(), userID, user.RoleCompany)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

type companyProfileRequest struct {
	CompanyName string `json:"company_name"`
	Phone       string `json:"phone"`
	Description string `json:"description"`
	Website     string `json:"website"`
}

func (h *ProfileHandler) UpsertCompany(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req companyProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.profiles.UpsertCompany(r.Context(), profile.CompanyProfile{
		UserID:      userID,
		CompanyName: req.CompanyName,
		Phone:       req.Phone,
		Description: req.Description,
		Website:     req.Website,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}
