// Package apperr holds the error kinds returned by the training services
// and their mapping onto HTTP responses.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/2beens/fitflow/pkg"

	log "github.com/sirupsen/logrus"
)

// ValidationError is returned for out of range or malformed input.
// Field names the offending input, it may be empty for cross-field checks.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation builds a ValidationError with a formatted message.
func Validation(field, format string, args ...any) error {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// NotFoundError is returned when a referenced entity does not exist
// or is not visible to the caller.
type NotFoundError struct {
	Entity string
	ID     any
}

func (e *NotFoundError) Error() string {
	if e.ID == nil {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %v not found", e.Entity, e.ID)
}

func NotFound(entity string, id any) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError is returned on a unique key violation that is not deduplicated.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func Conflict(format string, args ...any) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// ForbiddenError is returned when the caller acts on another user's resource.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

func Forbidden(format string, args ...any) error {
	return &ForbiddenError{Message: fmt.Sprintf(format, args...)}
}

type errorResponse struct {
	Error string `json:"error"`
}

// StatusCode maps an error kind to its HTTP status code.
func StatusCode(err error) int {
	var (
		validationErr *ValidationError
		notFoundErr   *NotFoundError
		conflictErr   *ConflictError
		forbiddenErr  *ForbiddenError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &conflictErr):
		return http.StatusConflict
	case errors.As(err, &forbiddenErr):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes the JSON error body for err. Unknown errors are logged
// and surfaced as a generic message, fallbackMsg, so internals never leak.
func WriteError(w http.ResponseWriter, err error, fallbackMsg string) {
	status := StatusCode(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Errorf("%s: %s", fallbackMsg, err)
		msg = fallbackMsg
	}
	pkg.WriteJSON(w, errorResponse{Error: msg}, status)
}

// WriteMessage writes a JSON error body with an explicit status.
func WriteMessage(w http.ResponseWriter, msg string, status int) {
	pkg.WriteJSON(w, errorResponse{Error: msg}, status)
}
