package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Категории ошибок, которые видит пользователь
var (
	// ErrTransport indicates that the server could not be reached
	ErrTransport = errors.New("transport failure")

	// ErrNotFound indicates that the record no longer exists on the server
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates that the server rejected the request body
	ErrValidation = errors.New("validation failed")

	// ErrConflict indicates a conflicting state on the server
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized indicates a missing or expired token
	ErrUnauthorized = errors.New("unauthorized")

	// ErrHasID is returned by Create for a record that was already persisted
	ErrHasID = errors.New("a new credential cannot already have an ID")

	// ErrMissingID is returned by Update for a draft record
	ErrMissingID = errors.New("credential has no ID")
)

// Error описывает ответ сервера с кодом не из диапазона 2xx
type Error struct {
	Message    string
	ErrorKey   string
	StatusCode int
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// Is maps HTTP status codes onto the sentinel categories.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrValidation:
		return e.StatusCode == http.StatusBadRequest
	case ErrConflict:
		return e.StatusCode == http.StatusConflict
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return false
}

// Describe returns a short message suitable for showing in a view or dialog.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *Error
	switch {
	case errors.Is(err, ErrTransport):
		return "server is unreachable, please try again"
	case errors.Is(err, ErrNotFound):
		return "credential not found (it may have been deleted)"
	case errors.Is(err, ErrUnauthorized):
		return "not authenticated. Please run 'credadmin login' first"
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	}
	return err.Error()
}
