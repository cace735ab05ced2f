package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/staffdesk/employee-manager/internal/api/http/handlers"
	"github.com/staffdesk/employee-manager/internal/config"
	"github.com/staffdesk/employee-manager/internal/observability"
	"github.com/staffdesk/employee-manager/internal/persistence"
	"github.com/staffdesk/employee-manager/internal/repository"
	"github.com/staffdesk/employee-manager/internal/service"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

type employeeBody struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Department string  `json:"department"`
	Salary     float64 `json:"salary"`
}

func newTestApp(t *testing.T, path string, ensureSchema bool) (*fiber.App, *observability.Metrics) {
	t.Helper()
	logger := zap.NewNop()
	store := persistence.NewSQLite(config.SQLiteConfig{Path: path}, logger)
	if ensureSchema {
		require.NoError(t, store.EnsureSchema(context.Background()))
	}
	metrics := observability.NewMetrics()
	svc := service.NewEmployeeService(service.EmployeeDependencies{
		Repo:    repository.NewSQLiteEmployeeRepository(store),
		Metrics: metrics,
		Logger:  logger,
	})

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 0)
	RegisterRoutes(app, RouteConfig{
		Health:    handlers.NewHealthHandler("employee-manager", "test", store, nil),
		Employees: handlers.NewEmployeeHandler(svc),
	})
	return app, metrics
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env))
	}
	return resp.StatusCode, env
}

func TestEmployeeEndpoints(t *testing.T) {
	app, metrics := newTestApp(t, filepath.Join(t.TempDir(), "employees.db"), true)

	status, env := do(t, app, "GET", "/employees", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `[]`, string(env.Data))

	status, env = do(t, app, "POST", "/employees", `{"name":"Alice","department":"Engineering","salary":75000}`)
	require.Equal(t, fiber.StatusCreated, status)
	var created employeeBody
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, int64(1), created.ID)

	status, env = do(t, app, "PUT", "/employees/1", `{"salary":80000}`)
	require.Equal(t, fiber.StatusOK, status)
	var updated employeeBody
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, employeeBody{ID: 1, Name: "Alice", Department: "Engineering", Salary: 80000}, updated)

	status, env = do(t, app, "GET", "/employees/1", "")
	require.Equal(t, fiber.StatusOK, status)
	var fetched employeeBody
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, 80000.0, fetched.Salary)

	status, _ = do(t, app, "DELETE", "/employees/1", "")
	assert.Equal(t, fiber.StatusNoContent, status)

	status, env = do(t, app, "GET", "/employees/1", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	status, env = do(t, app, "DELETE", "/employees/1", "")
	assert.Equal(t, fiber.StatusNotFound, status)

	assert.Equal(t, int64(1), metrics.OperationCount(service.OpDelete, "ok"))
}

func TestCreateValidation(t *testing.T) {
	app, _ := newTestApp(t, filepath.Join(t.TempDir(), "employees.db"), true)

	status, env := do(t, app, "POST", "/employees", `{"name":"Alice"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)

	status, _ = do(t, app, "GET", "/employees/abc", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestUnknownRoute(t *testing.T) {
	app, _ := newTestApp(t, filepath.Join(t.TempDir(), "employees.db"), true)
	status, env := do(t, app, "GET", "/nowhere", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestDatabaseUnavailable(t *testing.T) {
	app, _ := newTestApp(t, filepath.Join(t.TempDir(), "missing", "employees.db"), false)

	status, env := do(t, app, "GET", "/employees", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CONNECTION_FAILURE", env.Error.Code)

	status, env = do(t, app, "GET", "/health/ready", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "DEPENDENCY_UNAVAILABLE", env.Error.Code)
}

func TestHealthProbes(t *testing.T) {
	app, _ := newTestApp(t, filepath.Join(t.TempDir(), "employees.db"), true)

	req := httptest.NewRequest("GET", "/health/ready", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(observability.RequestIDHeader))

	req = httptest.NewRequest("GET", "/health/live", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
