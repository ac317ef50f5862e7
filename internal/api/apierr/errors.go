package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Aung-Nyi-Thant/KeepMemories/internal/model"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/services/auth"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/services/memories"
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
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeAlreadyPaired      = "ALREADY_PAIRED"
	CodeNotPaired          = "NOT_PAIRED"
	CodeSelfPair           = "SELF_PAIR"
	CodePairCodeNotFound   = "PAIR_CODE_NOT_FOUND"
	CodePairCodeExpired    = "PAIR_CODE_EXPIRED"
	CodeNoteNotFound       = "NOTE_NOT_FOUND"
	CodeDateNotFound       = "DATE_NOT_FOUND"
	CodeForbidden          = "FORBIDDEN"
	CodeInternalError      = "INTERNAL_ERROR"
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
	case errors.Is(err, model.ErrAlreadyPaired):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyPaired, "Player is already paired"}}
	case errors.Is(err, model.ErrNotPaired):
		return &httpError{http.StatusNotFound, APIError{CodeNotPaired, "Player is not paired"}}
	case errors.Is(err, model.ErrSelfPair):
		return &httpError{http.StatusConflict, APIError{CodeSelfPair, "Cannot pair with yourself"}}
	case errors.Is(err, model.ErrPairCodeNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePairCodeNotFound, "Pair code not found"}}
	case errors.Is(err, model.ErrPairCodeExpired):
		return &httpError{http.StatusGone, APIError{CodePairCodeExpired, "Pair code has expired"}}
	case errors.Is(err, model.ErrNoteNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeNoteNotFound, "Note not found"}}
	case errors.Is(err, model.ErrDateNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeDateNotFound, "Special date not found"}}
	case errors.Is(err, model.ErrNotPairOwner):
		return &httpError{http.StatusForbidden, APIError{CodeForbidden, "Entry belongs to a different pair"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired token"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	// Map memories validation errors
	case errors.Is(err, memories.ErrEmptyTitle):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Note title is required"}}
	case errors.Is(err, memories.ErrEmptyLabel):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Date label is required"}}

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
