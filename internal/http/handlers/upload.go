package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/app"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/http/middleware"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/http/response"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/storage"
)

const maxCVSize = 10 << 20

var allowedCVExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

type UploadHandler struct {
	store    *storage.LocalStore
	profiles *app.ProfileService
}

func NewUploadHandler(store *storage.LocalStore, profiles *app.ProfileService) *UploadHandler {
	return &UploadHandler{store: store, profiles: profiles}
}

// UploadCV serves POST /uploads/cv with a multipart "file" part.
func (h *UploadHandler) UploadCV(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	if err := r.ParseMultipartForm(maxCVSize); err != nil {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"file": "multipart form required"}))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"file": "file part is required"}))
		return
	}
	defer file.Close()

	if header.Size > maxCVSize {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"file": "file exceeds 10MB"}))
		return
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedCVExtensions[ext] {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"file": "only pdf, doc and docx files are accepted"}))
		return
	}

	stored, err := h.store.Save(header.Filename, file)
	if err != nil {
		response.Error(w, common.NewError(common.CodeInternal, "failed to store file", err))
		return
	}
	if err := h.profiles.AttachCV(r.Context(), userID, stored); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, map[string]string{
		"message":  "cv uploaded",
		"filename": stored,
	})
}
