package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/staffdesk/employee-manager/internal/api/dto"
	"github.com/staffdesk/employee-manager/internal/domain"
	"github.com/staffdesk/employee-manager/internal/service"
	apperrors "github.com/staffdesk/employee-manager/pkg/util"
)

// EmployeeHandler exposes the employee CRUD endpoints.
type EmployeeHandler struct {
	service *service.EmployeeService
}

// NewEmployeeHandler constructs handler.
func NewEmployeeHandler(employeeService *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: employeeService}
}

// Create POST /employees.
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" || req.Salary == nil {
		return apperrors.NewValidationError("name and salary required", nil)
	}

	employee := domain.NewEmployee(strings.TrimSpace(req.Name), strings.TrimSpace(req.Department), *req.Salary)
	if err := h.service.Create(c.UserContext(), employee); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": employeeResponse(employee)})
}

// List GET /employees.
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	employees, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		items = append(items, employeeResponse(&employees[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /employees/:id.
func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	employee, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": employeeResponse(employee)})
}

// Update PUT /employees/:id.
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	employee, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		employee.SetName(strings.TrimSpace(*req.Name))
	}
	if req.Department != nil && strings.TrimSpace(*req.Department) != "" {
		employee.SetDepartment(strings.TrimSpace(*req.Department))
	}
	if req.Salary != nil {
		employee.SetSalary(*req.Salary)
	}

	if err := h.service.Update(c.UserContext(), employee); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": employeeResponse(employee)})
}

// Delete DELETE /employees/:id.
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid employee id", map[string]any{"id": c.Params("id")})
	}
	return id, nil
}

func employeeResponse(employee *domain.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:         employee.ID(),
		Name:       employee.Name(),
		Department: employee.Department(),
		Salary:     employee.Salary(),
	}
}
