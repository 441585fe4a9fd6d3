package error

import (
	"errors"
	"net/http"

	"github.com/fixora/insights/internal/domain"
)

type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Error codes returned to API clients
const (
	CodeBadRequest      = "BAD_REQUEST"
	CodeInvalidCriteria = "INVALID_CRITERIA"
	CodeInvalidSort     = "INVALID_SORT"
	CodeInvalidPage     = "INVALID_PAGE"
	CodeInvalidView     = "INVALID_VIEW"
	CodeNotFound        = "NOT_FOUND"
	CodeSessionNotFound = "SESSION_NOT_FOUND"
	CodeInternal        = "INTERNAL_ERROR"
)

var (
	ErrBadRequest     = &AppError{Code: CodeBadRequest, Message: "Bad request", Status: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: CodeNotFound, Message: "Not found", Status: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: CodeInternal, Message: "Internal server error", Status: http.StatusInternalServerError}
)

func NewBadRequest(message string) *AppError {
	return &AppError{Code: CodeBadRequest, Message: message, Status: http.StatusBadRequest}
}

func NewNotFound(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message, Status: http.StatusNotFound}
}

func NewInternalServer(message string) *AppError {
	return &AppError{Code: CodeInternal, Message: message, Status: http.StatusInternalServerError}
}

func newCoded(code string, status int, err error) *AppError {
	return &AppError{Code: code, Message: err.Error(), Status: status}
}

// MapError converts domain errors to their API representation. Anything
// unrecognised becomes an opaque internal error.
func MapError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCriteria):
		return newCoded(CodeInvalidCriteria, http.StatusBadRequest, err)
	case errors.Is(err, domain.ErrInvalidSortKey), errors.Is(err, domain.ErrInvalidSortDir):
		return newCoded(CodeInvalidSort, http.StatusBadRequest, err)
	case errors.Is(err, domain.ErrInvalidPage):
		return newCoded(CodeInvalidPage, http.StatusBadRequest, err)
	case errors.Is(err, domain.ErrInvalidView):
		return newCoded(CodeInvalidView, http.StatusBadRequest, err)
	case errors.Is(err, domain.ErrSessionNotFound):
		return newCoded(CodeSessionNotFound, http.StatusNotFound, err)
	default:
		return NewInternalServer("An unexpected error occurred")
	}
}
