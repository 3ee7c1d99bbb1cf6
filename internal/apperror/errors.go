package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for common cases
var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal server error")
	ErrValidation   = errors.New("validation error")

	// Vault operation errors. All of these are expected conditions reported
	// as typed results; none of them indicate a core bug.
	ErrInvalidReference    = errors.New("lock references unknown term")
	ErrBelowMinimum        = errors.New("amount below term minimum")
	ErrNotConnected        = errors.New("wallet not connected")
	ErrNotMature           = errors.New("lock has not matured")
	ErrDuplicateSubmission = errors.New("action already in progress")
	ErrExecutionFailure    = errors.New("submission failed")
)

// AppError wraps errors with HTTP status and user-friendly message
type AppError struct {
	Err        error  // Original error (for logging)
	Message    string // User-friendly message
	StatusCode int    // HTTP status code
	Field      string // Optional field name for validation errors
}

func (e *AppError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Constructor functions for common errors

func NotFound(resource string) *AppError {
	return &AppError{
		Err:        ErrNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: http.StatusNotFound,
	}
}

func BadRequest(message string) *AppError {
	return &AppError{
		Err:        ErrBadRequest,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func ValidationError(field, message string) *AppError {
	return &AppError{
		Err:        ErrValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Field:      field,
	}
}

func Unauthorized(message string) *AppError {
	if message == "" {
		message = "unauthorized"
	}
	return &AppError{
		Err:        ErrUnauthorized,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Err:        ErrConflict,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Err:        err,
		Message:    "an internal error occurred",
		StatusCode: http.StatusInternalServerError,
	}
}

func Wrap(err error, message string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
	}
}

// BelowMinimum reports a lockup amount under the term's minimum.
func BelowMinimum(minimum string) *AppError {
	return &AppError{
		Err:        ErrBelowMinimum,
		Message:    fmt.Sprintf("amount is below the term minimum of %s", minimum),
		StatusCode: http.StatusBadRequest,
		Field:      "amount",
	}
}

// NotConnected reports an action that requires a connected wallet session.
func NotConnected() *AppError {
	return &AppError{
		Err:        ErrNotConnected,
		Message:    "connect a wallet before submitting this action",
		StatusCode: http.StatusUnauthorized,
	}
}

// NotMature reports a redemption attempted before the lock's due date.
func NotMature(daysRemaining int) *AppError {
	return &AppError{
		Err:        ErrNotMature,
		Message:    fmt.Sprintf("lock matures in %d days", daysRemaining),
		StatusCode: http.StatusConflict,
	}
}

// DuplicateSubmission reports an action whose key is already in flight.
// This is the dedup guard tripping, not an alarming condition.
func DuplicateSubmission(key string) *AppError {
	return &AppError{
		Err:        ErrDuplicateSubmission,
		Message:    "this action is already in progress",
		StatusCode: http.StatusConflict,
		Field:      key,
	}
}

// InvalidReference reports a lock whose term is missing from the catalog.
// Surfaced loudly: a silently dropped lock is a lost-funds visibility bug.
func InvalidReference(noteAddress string) *AppError {
	return &AppError{
		Err:        ErrInvalidReference,
		Message:    fmt.Sprintf("lock references unknown term %s", noteAddress),
		StatusCode: http.StatusInternalServerError,
	}
}

// ExecutionFailure reports a terminal failure from the submission
// collaborator. The action key has already been freed for retry by the time
// this is returned.
func ExecutionFailure(err error) *AppError {
	return &AppError{
		Err:        errors.Join(ErrExecutionFailure, err),
		Message:    "transaction submission failed",
		StatusCode: http.StatusBadGateway,
	}
}

// GetStatusCode extracts HTTP status from error, defaults to 500
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	// Check sentinel errors
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrNotConnected):
		return http.StatusUnauthorized
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrValidation), errors.Is(err, ErrBelowMinimum):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict), errors.Is(err, ErrNotMature), errors.Is(err, ErrDuplicateSubmission):
		return http.StatusConflict
	case errors.Is(err, ErrExecutionFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// GetMessage extracts user message from error
func GetMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
