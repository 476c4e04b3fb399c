package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error so controllers can map it to an HTTP status and
// callers can branch on it without string matching.
type Kind string

const (
	KindValidation            Kind = "validation"
	KindNotFound              Kind = "not_found"
	KindInsufficientInventory Kind = "insufficient_inventory"
	KindRoomUnavailable       Kind = "room_unavailable"
	KindConflict              Kind = "conflict"
	KindInactiveState         Kind = "inactive_state"
	KindInternal              Kind = "internal"
)

// AppError carries an error kind, a user-facing message and an optional
// underlying error (not exposed to the user).
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a kind and message.
func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// Newf creates a new AppError with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of err, unwrapping as needed, or KindInternal for
// plain errors.
func KindOf(err error) Kind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Is lets errors.Is match two AppErrors by kind.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// HTTPStatus maps an error kind to an HTTP status code.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindInsufficientInventory, KindRoomUnavailable, KindConflict, KindInactiveState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
