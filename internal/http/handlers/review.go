package handlers

import (
	"net/http"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/app"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/http/middleware"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/http/response"
)

type ReviewHandler struct {
	reviews *app.ReviewService
}

func NewReviewHandler(reviews *app.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type createReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Create serves POST /projects/{id}/reviews.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	authorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	projectID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req createReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.reviews.Create(r.Context(), app.CreateReviewInput{
		ProjectID: projectID,
		AuthorID:  authorID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

// ListByUser serves GET /users/{id}/reviews, the public rating page.
func (h *ReviewHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	items, err := h.reviews.ListByUser(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}
