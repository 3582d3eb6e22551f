package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/libroquest/gamebook-server/internal/model"
	"github.com/libroquest/gamebook-server/internal/services/auth"
	"github.com/libroquest/gamebook-server/internal/services/progression"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInvalidSchool  = "INVALID_SCHOOL"
	CodeInvalidGender  = "INVALID_GENDER"
	CodeInvalidLevel   = "INVALID_LEVEL"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeDocumentTaken  = "DOCUMENT_TAKEN"
	CodePlayerNotFound = "PLAYER_NOT_FOUND"
	CodeDataIntegrity  = "DATA_INTEGRITY"
	CodeInternalError  = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrDocumentTaken):
		return &httpError{http.StatusConflict, APIError{CodeDocumentTaken, "Document already registered"}}
	case errors.Is(err, model.ErrInvalidSchool):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidSchool, "School is not a valid value"}}
	case errors.Is(err, model.ErrInvalidGender):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidGender, "Gender is not a valid value"}}
	case errors.Is(err, model.ErrInvalidLevel):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidLevel, "Level must be at least 1"}}
	case errors.Is(err, model.ErrCorruptMoney):
		// Data integrity faults are server-side, never caller-recoverable
		return &httpError{http.StatusInternalServerError, APIError{CodeDataIntegrity, "Stored money balance is corrupt"}}

	// Map progression errors
	case errors.Is(err, progression.ErrNegativeCoins):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "coins_earned must be non-negative"}}
	case errors.Is(err, progression.ErrNegativeTime):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "time_spent must be non-negative"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
