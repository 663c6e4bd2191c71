package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
)

// ErrorCollector lets the metrics layer count error responses without a
// dependency cycle.
type ErrorCollector interface {
	ObserveError(code string)
}

var errorCollector ErrorCollector

func SetErrorCollector(collector ErrorCollector) {
	errorCollector = collector
}

// The observed API surface returns 400 for duplicate applications, so
// conflict maps to 400 rather than 409.
var statusByCode = map[common.Code]int{
	common.CodeValidation:   http.StatusBadRequest,
	common.CodePrecondition: http.StatusBadRequest,
	common.CodeInvalidState: http.StatusBadRequest,
	common.CodeConflict:     http.StatusBadRequest,
	common.CodeUnauthorized: http.StatusUnauthorized,
	common.CodeForbidden:    http.StatusForbidden,
	common.CodeNotFound:     http.StatusNotFound,
	common.CodeRateLimited:  http.StatusTooManyRequests,
	common.CodeInternal:     http.StatusInternalServerError,
}

type errorBody struct {
	Code    common.Code       `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// Error writes the taxonomy code and message; internal causes never reach
// the body.
func Error(w http.ResponseWriter, err error) {
	body := errorBody{Code: common.CodeInternal, Message: "internal error"}
	var appErr *common.Error
	if errors.As(err, &appErr) {
		body.Code = appErr.Code
		body.Fields = appErr.Fields
		if appErr.Code != common.CodeInternal {
			body.Message = appErr.Message
		}
	}
	if errorCollector != nil {
		errorCollector.ObserveError(string(body.Code))
	}
	status, ok := statusByCode[body.Code]
	if !ok {
		status = http.StatusInternalServerError
	}
	JSON(w, status, errorEnvelope{Error: body})
}
