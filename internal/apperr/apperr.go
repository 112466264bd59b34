// Package apperr holds the error taxonomy shared by services and the HTTP
// boundary. Services return *Error values; handlers turn them into status
// codes and stable error codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

// SQLSTATE codes the services react to.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type Error struct {
	Kind    error
	Code    string
	Message string
	Details map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

func newErr(kind error, code, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

func NotFound(code, format string, args ...any) *Error {
	return newErr(ErrNotFound, code, format, args...)
}

func Forbidden(code, format string, args ...any) *Error {
	return newErr(ErrForbidden, code, format, args...)
}

func Conflict(code, format string, args ...any) *Error {
	return newErr(ErrConflict, code, format, args...)
}

func Validation(code, format string, args ...any) *Error {
	return newErr(ErrValidation, code, format, args...)
}

func Unauthorized(code, format string, args ...any) *Error {
	return newErr(ErrUnauthorized, code, format, args...)
}

// WithDetails attaches per-field messages, used for validation failures.
func (e *Error) WithDetails(d map[string]string) *Error {
	e.Details = d
	return e
}

// Wrap keeps the store error as the cause.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func IsUniqueViolation(err error) bool { return pgCode(err) == pgUniqueViolation }

func IsForeignKeyViolation(err error) bool { return pgCode(err) == pgForeignKeyViolation }

// FromStore classifies constraint violations; other errors pass through and
// end up as 500s at the boundary.
func FromStore(err error) error {
	switch {
	case err == nil:
		return nil
	case IsUniqueViolation(err):
		return Conflict("UNIQUE_VIOLATION", "Resource already exists").Wrap(err)
	case IsForeignKeyViolation(err):
		return Conflict("REFERENCE_VIOLATION", "Resource is still referenced or references a missing record").Wrap(err)
	default:
		return err
	}
}

// HTTPStatus maps an error to the status code the API answers with.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// As extracts the *Error from err, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
