package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/condogate/condogate/internal/domain"
	"github.com/condogate/condogate/pkg/logger"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Error codes
const (
	CodeInvalidInput  = "INVALID_INPUT"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeRateLimit     = "RATE_LIMIT_EXCEEDED"
	CodeInternalError = "INTERNAL_ERROR"
	CodeInvalidToken  = "INVALID_TOKEN"
)

func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func WriteError(w http.ResponseWriter, statusCode int, message, code string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message, Code: code})
}

// WriteDomainError maps a service failure onto an HTTP status with a
// single switch over the error kind.
func WriteDomainError(w http.ResponseWriter, err error) {
	var domainErr *domain.Error
	if !errors.As(err, &domainErr) {
		WriteError(w, http.StatusInternalServerError, "internal error", CodeInternalError)
		return
	}

	switch domainErr.Kind {
	case domain.KindValidation:
		WriteError(w, http.StatusBadRequest, domainErr.Message, CodeInvalidInput)
	case domain.KindUnauthorized:
		WriteError(w, http.StatusUnauthorized, domainErr.Message, CodeUnauthorized)
	case domain.KindNotFound:
		WriteError(w, http.StatusNotFound, domainErr.Message, CodeNotFound)
	case domain.KindConflict:
		WriteError(w, http.StatusConflict, domainErr.Message, CodeConflict)
	default:
		WriteError(w, http.StatusInternalServerError, domainErr.Message, CodeInternalError)
	}
}

func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message, CodeNotFound)
}

func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message, CodeInvalidInput)
}

func Unauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, message, CodeUnauthorized)
}

func RateLimit(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusTooManyRequests, message, CodeRateLimit)
}
