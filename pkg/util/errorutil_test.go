package util

import (
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func TestToDomainErrorClassification(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"sql no rows", sql.ErrNoRows, CodeNotFound, http.StatusNotFound},
		{"pgx no rows", fmt.Errorf("get: %w", pgx.ErrNoRows), CodeNotFound, http.StatusNotFound},
		{"pg not null", &pgconn.PgError{Code: "23502", Message: "null value in column \"name\""}, CodeConstraintViolation, http.StatusConflict},
		{"pg connection", &pgconn.PgError{Code: "08006", Message: "connection failure"}, CodeConnectionFailure, http.StatusServiceUnavailable},
		{"pg too long", &pgconn.PgError{Code: "22001", Message: "value too long"}, CodeValidation, http.StatusBadRequest},
		{"pg syntax", &pgconn.PgError{Code: "42601", Message: "syntax error"}, CodeInternal, http.StatusInternalServerError},
		{"sqlite constraint", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}, CodeConstraintViolation, http.StatusConflict},
		{"sqlite cant open", sqlite3.Error{Code: sqlite3.ErrCantOpen}, CodeConnectionFailure, http.StatusServiceUnavailable},
		{"sqlite generic", sqlite3.Error{Code: sqlite3.ErrError}, CodeInternal, http.StatusInternalServerError},
		{"dial", &net.OpError{Op: "dial", Err: errors.New("connection refused")}, CodeConnectionFailure, http.StatusServiceUnavailable},
		{"plain", errors.New("boom"), CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			domainErr := ToDomainError(tc.err)
			assert.Equal(t, tc.code, domainErr.Code)
			assert.Equal(t, tc.status, domainErr.HTTPStatus)
		})
	}
}

func TestToDomainErrorKeepsDomainErrors(t *testing.T) {
	original := NewNotFound("employee", map[string]any{"id": 1})
	wrapped := fmt.Errorf("lookup: %w", original)
	assert.Same(t, original, ToDomainError(wrapped))
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsCode(errors.New("x"), CodeNotFound))
	assert.Nil(t, MapError(nil))
}

func TestDomainErrorUnwraps(t *testing.T) {
	cause := &pgconn.PgError{Code: "23502"}
	err := MapError(cause)
	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "23502", err.(*DomainError).Details["sql_state"])
}

func TestDiagnose(t *testing.T) {
	pg := Diagnose(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23502", Message: "null value"}))
	assert.Equal(t, Diagnostic{SQLState: "23502", Message: "null value"}, pg)

	lite := Diagnose(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull})
	assert.Equal(t, int(sqlite3.ErrConstraintNotNull), lite.VendorCode)
	assert.Empty(t, lite.SQLState)
	assert.NotEmpty(t, lite.Message)

	assert.Equal(t, Diagnostic{}, Diagnose(nil))
	assert.Equal(t, "boom", Diagnose(errors.New("boom")).Message)
}
