package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies an operation failure so the transport layer can map it
// to an HTTP status without inspecting message text.
type ErrorKind string

const (
	KindValidation        ErrorKind = "VALIDATION"
	KindAuthorization     ErrorKind = "AUTHORIZATION"
	KindNotFound          ErrorKind = "NOT_FOUND"
	KindConflict          ErrorKind = "CONFLICT"
	KindInvalidTransition ErrorKind = "INVALID_TRANSITION"
	KindMisconfiguration  ErrorKind = "MISCONFIGURATION"
)

// AppError is the typed error returned by every service operation.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func ValidationError(format string, args ...any) *AppError {
	return &AppError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func AuthorizationError(format string, args ...any) *AppError {
	return &AppError{Kind: KindAuthorization, Message: fmt.Sprintf(format, args...)}
}

func NotFoundError(format string, args ...any) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func ConflictError(format string, args ...any) *AppError {
	return &AppError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// InvalidTransitionError names both endpoints of the rejected status change.
func InvalidTransitionError(from, to string) *AppError {
	return &AppError{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("invalid status transition from %s to %s", from, to),
	}
}

func MisconfigurationError(format string, args ...any) *AppError {
	return &AppError{Kind: KindMisconfiguration, Message: fmt.Sprintf(format, args...)}
}

// WrapInternal tags a lower-layer store failure so it never escapes untyped.
func WrapInternal(msg string, err error) *AppError {
	return &AppError{Kind: "INTERNAL", Message: msg, Err: err}
}

// KindOf extracts the kind from err, or empty if err is not an AppError.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// HTTPStatus maps an error to the response status the API contract defines.
// InvalidTransition is a validation subtype and shares 400.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindInvalidTransition:
		return http.StatusBadRequest
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
