package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/staffdesk/employee-manager/internal/domain"
	"github.com/staffdesk/employee-manager/internal/events"
	"github.com/staffdesk/employee-manager/internal/observability"
	"github.com/staffdesk/employee-manager/internal/repository"
	apperrors "github.com/staffdesk/employee-manager/pkg/util"
)

// Operation names used in logs and metrics.
const (
	OpCreate = "create"
	OpList   = "list"
	OpGet    = "get"
	OpUpdate = "update"
	OpDelete = "delete"
)

// EmployeeService is the data-access boundary for employees. Every failure
// leaves it as a *util.DomainError after its diagnostics have been logged.
type EmployeeService struct {
	repo       repository.EmployeeRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// EmployeeDependencies encapsulates collaborators of EmployeeService.
type EmployeeDependencies struct {
	Repo       repository.EmployeeRepository
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewEmployeeService constructs the service.
func NewEmployeeService(deps EmployeeDependencies) *EmployeeService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeService{
		repo:       deps.Repo,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
	}
}

// Create persists a new employee and assigns its id.
func (s *EmployeeService) Create(ctx context.Context, employee *domain.Employee) error {
	start := time.Now()
	if employee == nil {
		return s.finish(OpCreate, start, apperrors.NewValidationError("employee required", nil))
	}
	if err := s.repo.Create(ctx, employee); err != nil {
		if errors.Is(err, domain.ErrIDAlreadyAssigned) {
			err = apperrors.NewValidationError("employee already has an id", map[string]any{"id": employee.ID()})
		}
		return s.finish(OpCreate, start, err)
	}
	s.finish(OpCreate, start, nil)
	s.publish(ctx, events.NewEvent(events.EventEmployeeCreated, employee.ID(), snapshot(employee)))
	return nil
}

// List returns every employee ordered by id.
func (s *EmployeeService) List(ctx context.Context) ([]domain.Employee, error) {
	start := time.Now()
	employees, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.finish(OpList, start, err)
	}
	s.finish(OpList, start, nil)
	return employees, nil
}

// Get returns the employee with id, or a NOT_FOUND error.
func (s *EmployeeService) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	start := time.Now()
	employee, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(apperrors.MapError(err)) {
			err = apperrors.NewNotFound("employee", map[string]any{"id": id})
		}
		return nil, s.finish(OpGet, start, err)
	}
	s.finish(OpGet, start, nil)
	return employee, nil
}

// Update writes every mutable field of employee. Zero rows affected is reported
// as NOT_FOUND.
func (s *EmployeeService) Update(ctx context.Context, employee *domain.Employee) error {
	start := time.Now()
	if employee == nil || !employee.HasID() {
		return s.finish(OpUpdate, start, apperrors.NewValidationError("employee id required", nil))
	}
	if err := s.repo.Update(ctx, employee); err != nil {
		if apperrors.IsNotFound(apperrors.MapError(err)) {
			err = apperrors.NewDomainError(apperrors.CodeNotFound, "employee not found or no changes made",
				http.StatusNotFound, map[string]any{"id": employee.ID()})
		}
		return s.finish(OpUpdate, start, err)
	}
	s.finish(OpUpdate, start, nil)
	s.publish(ctx, events.NewEvent(events.EventEmployeeUpdated, employee.ID(), snapshot(employee)))
	return nil
}

// Delete removes the employee with id. Zero rows affected is reported as NOT_FOUND.
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	if err := s.repo.Delete(ctx, id); err != nil {
		if apperrors.IsNotFound(apperrors.MapError(err)) {
			err = apperrors.NewNotFound("employee", map[string]any{"id": id})
		}
		return s.finish(OpDelete, start, err)
	}
	s.finish(OpDelete, start, nil)
	s.publish(ctx, events.NewEvent(events.EventEmployeeDeleted, id, nil))
	return nil
}

// finish records the outcome of an operation and returns err as a DomainError.
func (s *EmployeeService) finish(op string, start time.Time, err error) error {
	elapsed := time.Since(start)
	if err == nil {
		s.metrics.RecordOperation(op, "ok", elapsed)
		s.logger.Debug("employee operation", zap.String("operation", op), zap.Duration("duration", elapsed))
		return nil
	}

	domainErr := apperrors.ToDomainError(err)
	s.metrics.RecordOperation(op, domainErr.Code, elapsed)

	switch domainErr.Code {
	case apperrors.CodeNotFound, apperrors.CodeValidation:
		s.logger.Info("employee operation rejected",
			zap.String("operation", op),
			zap.String("error_code", domainErr.Code),
			zap.String("message", domainErr.Message),
		)
	default:
		diag := apperrors.Diagnose(err)
		s.logger.Error("employee operation failed",
			zap.String("operation", op),
			zap.String("error_code", domainErr.Code),
			zap.String("sql_state", diag.SQLState),
			zap.Int("vendor_code", diag.VendorCode),
			zap.String("message", diag.Message),
		)
	}
	return domainErr
}

func (s *EmployeeService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event delivery failed",
			zap.String("event_type", string(event.Type)),
			zap.Int64("employee_id", event.EmployeeID),
			zap.Error(err),
		)
	}
}

func snapshot(employee *domain.Employee) events.EmployeeSnapshotPayload {
	return events.EmployeeSnapshotPayload{
		Name:       employee.Name(),
		Department: employee.Department(),
		Salary:     employee.Salary(),
	}
}
