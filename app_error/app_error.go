package app_error

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error kinds. Callers wrap them with fmt.Errorf("%w: ...") and test with
// errors.Is; Status maps them onto HTTP codes.
var (
	ErrInvalidFormat = errors.New("invalid format")
	ErrUnauthorized  = errors.New("unauthorized")
	// ErrUnauthenticated is the ErrUnauthorized case of a missing identity.
	ErrUnauthenticated   = fmt.Errorf("%w: not authenticated", ErrUnauthorized)
	ErrInvalidTransition = errors.New("invalid transition")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	// ErrConflictExternal is returned when the store rejected a conditional
	// write. The caller may retry the action.
	ErrConflictExternal = errors.New("the record was changed concurrently, please retry")
)

type statusError struct {
	error
	status int
}

func (e statusError) Unwrap() error {
	return e.error
}

func (e statusError) HTTPStatus() int {
	return e.status
}

// WithStatus pins an explicit HTTP status on err.
func WithStatus(err error, status int) error {
	return statusError{error: err, status: status}
}

func Status(err error) int {
	var se interface{ HTTPStatus() int }
	if errors.As(err, &se) {
		return se.HTTPStatus()
	}
	switch {
	case errors.Is(err, ErrInvalidFormat):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrConflict), errors.Is(err, ErrConflictExternal):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflictExternal)
}

func WithHTTPStatus(c *gin.Context, err error, status int) {
	c.JSON(status, gin.H{"error": err.Error()})
}

// Respond writes err with the status of its kind.
func Respond(c *gin.Context, err error) {
	if IsRetryable(err) {
		c.JSON(Status(err), gin.H{"error": err.Error(), "retryable": true})
		return
	}
	WithHTTPStatus(c, err, Status(err))
}
