// ABOUTME: API error envelope and constructors for common HTTP failure statuses
// ABOUTME: Server errors are logged at error level, client errors at warn level

package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/paritydotcx/paritycx/internal/log"
)

// AppError is an error carrying an HTTP status and optional details.
type AppError struct {
	Status  int
	Message string
	Details any
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, StatusName(e.Status), e.Message)
}

// Envelope is the JSON body of every error response.
type Envelope struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Issue is one failed validation rule.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

var statusNames = map[int]string{
	http.StatusBadRequest:            "Bad Request",
	http.StatusUnauthorized:          "Unauthorized",
	http.StatusForbidden:             "Forbidden",
	http.StatusNotFound:              "Not Found",
	http.StatusConflict:              "Conflict",
	http.StatusRequestEntityTooLarge: "Payload Too Large",
	http.StatusUnprocessableEntity:   "Unprocessable Entity",
	http.StatusTooManyRequests:       "Too Many Requests",
	http.StatusInternalServerError:   "Internal Server Error",
	http.StatusBadGateway:            "Bad Gateway",
	http.StatusServiceUnavailable:    "Service Unavailable",
}

// StatusName returns the envelope error name for status, or "Error".
func StatusName(status int) string {
	if name, ok := statusNames[status]; ok {
		return name
	}
	return "Error"
}

func newError(status int, msg string) *AppError {
	return &AppError{Status: status, Message: msg}
}

// NewBadRequestError returns a 400 error.
func NewBadRequestError(msg string) *AppError {
	return newError(http.StatusBadRequest, msg)
}

// NewUnauthorizedError returns a 401 error.
func NewUnauthorizedError(msg string) *AppError {
	return newError(http.StatusUnauthorized, msg)
}

// NewNotFoundError returns a 404 error with optional details.
func NewNotFoundError(msg string, details any) *AppError {
	return &AppError{Status: http.StatusNotFound, Message: msg, Details: details}
}

// NewConflictError returns a 409 error.
func NewConflictError(msg string) *AppError {
	return newError(http.StatusConflict, msg)
}

// NewValidationError returns a 422 error listing the failed rules.
func NewValidationError(msg string, issues []Issue) *AppError {
	e := newError(http.StatusUnprocessableEntity, msg)
	if len(issues) > 0 {
		e.Details = issues
	}
	return e
}

// NewRateLimitError returns a 429 error.
func NewRateLimitError() *AppError {
	return newError(http.StatusTooManyRequests, "Rate limit exceeded. Please wait before making more requests.")
}

// writeError renders err as an envelope. Errors that are not *AppError
// become a 500 with a generic message; the cause is only logged.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			appErr = newError(http.StatusRequestEntityTooLarge, "request entity too large")
		} else {
			appErr = newError(http.StatusInternalServerError, "Internal server error")
		}
	}

	l := log.With("request_id", RequestID(r.Context()), "path", r.URL.Path)
	if appErr.Status >= http.StatusInternalServerError {
		l.Errorw("server error", "message", appErr.Message, "error", err)
	} else {
		l.Warnw("client error", "status", appErr.Status, "message", appErr.Message)
	}

	writeJSON(w, appErr.Status, Envelope{
		Status:  appErr.Status,
		Error:   StatusName(appErr.Status),
		Message: appErr.Message,
		Details: appErr.Details,
	})
}
