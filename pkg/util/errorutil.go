package util

import (
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// Error codes carried by DomainError.
const (
	CodeValidation          = "VALIDATION_FAILED"
	CodeNotFound            = "NOT_FOUND"
	CodeConstraintViolation = "CONSTRAINT_VIOLATION"
	CodeConnectionFailure   = "CONNECTION_FAILURE"
	CodeInternal            = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidation, message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

// NewConstraintViolation reports a rejected write such as a NOT NULL or length check.
func NewConstraintViolation(err error, details map[string]any) error {
	return &DomainError{
		Code:       CodeConstraintViolation,
		Message:    "constraint violation",
		HTTPStatus: http.StatusConflict,
		Details:    details,
		Err:        err,
	}
}

// NewConnectionFailure reports that the database could not be reached.
func NewConnectionFailure(err error) error {
	return &DomainError{
		Code:       CodeConnectionFailure,
		Message:    "database unavailable",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// IsCode reports whether err carries the given DomainError code.
func IsCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// IsNotFound is shorthand for IsCode(err, CodeNotFound).
func IsNotFound(err error) bool {
	return IsCode(err, CodeNotFound)
}

// ToDomainError converts driver and generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
		return NewNotFound("resource", nil).(*DomainError)
	}

	diag := Diagnose(err)
	details := diag.Fields()

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "23"):
			return NewConstraintViolation(err, details).(*DomainError)
		case strings.HasPrefix(pgErr.Code, "08"):
			return NewConnectionFailure(err).(*DomainError)
		case strings.HasPrefix(pgErr.Code, "22"):
			return NewDomainError(CodeValidation, pgErr.Message, http.StatusBadRequest, details)
		}
		return NewInternalError(err).(*DomainError)
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return NewConnectionFailure(err).(*DomainError)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrConstraint:
			return NewConstraintViolation(err, details).(*DomainError)
		case sqlite3.ErrCantOpen, sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrIoErr, sqlite3.ErrNotADB, sqlite3.ErrPerm:
			return NewConnectionFailure(err).(*DomainError)
		}
		return NewInternalError(err).(*DomainError)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return NewConnectionFailure(err).(*DomainError)
	}

	return NewInternalError(err).(*DomainError)
}

// MapError converts generic errors to DomainError.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}

// Diagnostic holds the vendor-specific fields of a database error.
type Diagnostic struct {
	SQLState   string
	VendorCode int
	Message    string
}

// Fields renders the diagnostic as DomainError details.
func (d Diagnostic) Fields() map[string]any {
	fields := map[string]any{}
	if d.SQLState != "" {
		fields["sql_state"] = d.SQLState
	}
	if d.VendorCode != 0 {
		fields["vendor_code"] = d.VendorCode
	}
	return fields
}

// Diagnose extracts SQL state, vendor code and message from err.
// Postgres reports no numeric vendor code; SQLite reports no SQL state.
func Diagnose(err error) Diagnostic {
	if err == nil {
		return Diagnostic{}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return Diagnostic{SQLState: pgErr.Code, Message: pgErr.Message}
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return Diagnostic{VendorCode: int(sqliteErr.ExtendedCode), Message: sqliteErr.Error()}
	}

	return Diagnostic{Message: err.Error()}
}
