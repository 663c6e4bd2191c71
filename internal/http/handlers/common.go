package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
)

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return common.NewError(common.CodeValidation, "request body is required", err)
		}
		return common.NewError(common.CodeValidation, "invalid json body", err)
	}
	return nil
}

// idFromPath parses the UUID at the given segment index of the request path,
// e.g. index 2 for /applications/{id}/status.
func idFromPath(r *http.Request, index int) (common.UUID, error) {
	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if index < 1 || index > len(segments) {
		return "", common.NewError(common.CodeValidation, "invalid path", nil)
	}
	parsed, err := common.ParseUUID(segments[index-1])
	if err != nil {
		return "", common.NewValidationError("invalid request", map[string]string{"id": "invalid uuid"})
	}
	return parsed, nil
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "authentication required", nil)
}

// parseDate accepts YYYY-MM-DD.
func parseDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, common.NewValidationError("invalid request", map[string]string{field: "expected date in YYYY-MM-DD format"})
	}
	parsed = parsed.UTC()
	return &parsed, nil
}
