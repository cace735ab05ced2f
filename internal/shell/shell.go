// Package shell implements the interactive console menu for managing employees.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"

	"github.com/staffdesk/employee-manager/internal/domain"
	apperrors "github.com/staffdesk/employee-manager/pkg/util"
)

// Menu selections.
const (
	ChoiceAdd = iota + 1
	ChoiceViewAll
	ChoiceUpdate
	ChoiceDelete
	ChoiceExit
)

const rule = "---------------------------------------------------------------------------------------"

// EmployeeService is the data-access boundary the shell drives.
type EmployeeService interface {
	Create(ctx context.Context, employee *domain.Employee) error
	List(ctx context.Context) ([]domain.Employee, error)
	Get(ctx context.Context, id int64) (*domain.Employee, error)
	Update(ctx context.Context, employee *domain.Employee) error
	Delete(ctx context.Context, id int64) error
}

var (
	successTag = color.New(color.FgGreen, color.Bold).SprintFunc()
	failureTag = color.New(color.FgRed).SprintFunc()
	warningTag = color.New(color.FgYellow).SprintFunc()
	errorTag   = color.New(color.FgRed, color.Bold).SprintFunc()
)

// Shell reads menu selections and field values line by line and prints results.
type Shell struct {
	reader  *bufio.Reader
	out     io.Writer
	errOut  io.Writer
	service EmployeeService
	logger  *zap.Logger
}

// New builds a shell. Prompts and results go to out, input errors to errOut.
func New(in io.Reader, out, errOut io.Writer, service EmployeeService, logger *zap.Logger) *Shell {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Shell{
		reader:  bufio.NewReader(in),
		out:     out,
		errOut:  errOut,
		service: service,
		logger:  logger,
	}
}

// Run loops until the exit selection, end of input or ctx cancellation.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "=================================================")
	fmt.Fprintln(s.out, "       EMPLOYEE DATABASE CRUD APPLICATION")
	fmt.Fprintln(s.out, "=================================================")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.displayMenu()
		line, ok := s.readLine()
		if !ok {
			fmt.Fprintln(s.out)
			break
		}

		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			s.inputError("Invalid input. Please enter a number.")
			continue
		}
		if choice == ChoiceExit {
			break
		}
		s.logger.Debug("menu selection", zap.Int("choice", choice))
		s.processChoice(ctx, choice)
	}

	fmt.Fprintln(s.out, "\nApplication shutdown complete. Goodbye!")
	return nil
}

func (s *Shell) displayMenu() {
	fmt.Fprintln(s.out, "\n--- Menu ---")
	fmt.Fprintln(s.out, "1. Add New Employee (Create)")
	fmt.Fprintln(s.out, "2. View All Employees (Read)")
	fmt.Fprintln(s.out, "3. Update Employee")
	fmt.Fprintln(s.out, "4. Delete Employee")
	fmt.Fprintln(s.out, "5. Exit")
	fmt.Fprint(s.out, "Enter your choice: ")
}

func (s *Shell) processChoice(ctx context.Context, choice int) {
	switch choice {
	case ChoiceAdd:
		s.addEmployee(ctx)
	case ChoiceViewAll:
		s.viewAllEmployees(ctx)
	case ChoiceUpdate:
		s.updateEmployee(ctx)
	case ChoiceDelete:
		s.deleteEmployee(ctx)
	default:
		s.inputError("Invalid choice. Please select 1-5.")
	}
}

func (s *Shell) addEmployee(ctx context.Context) {
	fmt.Fprintln(s.out, "\n--- ADD EMPLOYEE ---")
	name := s.prompt("Enter Name: ")
	department := s.prompt("Enter Department: ")
	salary, err := parseSalary(s.prompt("Enter Salary: "))
	if err != nil {
		s.inputError("Invalid salary format. Aborting addition.")
		return
	}

	employee := domain.NewEmployee(name, department, salary)
	if err := s.service.Create(ctx, employee); err != nil {
		s.failure("Employee could not be added: %s.", describe(err))
		return
	}
	s.success("Employee added successfully with ID %d.", employee.ID())
}

func (s *Shell) viewAllEmployees(ctx context.Context) {
	fmt.Fprintln(s.out, "\n--- ALL EMPLOYEES ---")
	employees, err := s.service.List(ctx)
	if err != nil {
		s.failure("Employees could not be loaded: %s.", describe(err))
		return
	}
	if len(employees) == 0 {
		fmt.Fprintln(s.out, "No employees found in the database.")
		return
	}

	if err := renderEmployees(s.out, employees); err != nil {
		s.logger.Warn("rendering employee table failed", zap.Error(err))
		s.failure("Employees could not be displayed: %v.", err)
	}
}

func renderEmployees(w io.Writer, employees []domain.Employee) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Name", "Department", "Salary"})
	for i := range employees {
		e := &employees[i]
		if err := table.Append([]string{
			strconv.FormatInt(e.ID(), 10),
			e.Name(),
			e.Department(),
			"$" + domain.FormatSalary(e.Salary()),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

func (s *Shell) updateEmployee(ctx context.Context) {
	fmt.Fprintln(s.out, "\n--- UPDATE EMPLOYEE ---")
	id, ok := s.promptID("Enter Employee ID to update: ")
	if !ok {
		return
	}

	employee, err := s.service.Get(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			s.warning("Employee with ID %d not found.", id)
			return
		}
		s.failure("Employee ID %d could not be loaded: %s.", id, describe(err))
		return
	}

	fmt.Fprintf(s.out, "\nCurrent Data: %s\n", employee)

	if name := s.prompt(fmt.Sprintf("Enter new Name (Current: %s): ", employee.Name())); name != "" {
		employee.SetName(name)
	}
	if department := s.prompt(fmt.Sprintf("Enter new Department (Current: %s): ", employee.Department())); department != "" {
		employee.SetDepartment(department)
	}
	current := strconv.FormatFloat(employee.Salary(), 'f', 2, 64)
	if raw := s.prompt(fmt.Sprintf("Enter new Salary (Current: %s): ", current)); raw != "" {
		salary, err := parseSalary(raw)
		if err != nil {
			s.inputError("Invalid salary format. Keeping original salary.")
		} else {
			employee.SetSalary(salary)
		}
	}

	if err := s.service.Update(ctx, employee); err != nil {
		if apperrors.IsNotFound(err) {
			s.failure("Employee ID %d not found or no changes made.", id)
			return
		}
		s.failure("Employee ID %d could not be updated: %s.", id, describe(err))
		return
	}
	s.success("Employee ID %d updated successfully.", id)
}

func (s *Shell) deleteEmployee(ctx context.Context) {
	fmt.Fprintln(s.out, "\n--- DELETE EMPLOYEE ---")
	id, ok := s.promptID("Enter Employee ID to delete: ")
	if !ok {
		return
	}

	if err := s.service.Delete(ctx, id); err != nil {
		if apperrors.IsNotFound(err) {
			s.failure("Employee ID %d not found.", id)
			return
		}
		s.failure("Employee ID %d could not be deleted: %s.", id, describe(err))
		return
	}
	s.success("Employee ID %d deleted successfully.", id)
}

// prompt prints label and returns the next input line with surrounding space
// removed. End of input yields "".
func (s *Shell) prompt(label string) string {
	fmt.Fprint(s.out, label)
	line, _ := s.readLine()
	return strings.TrimSpace(line)
}

func (s *Shell) promptID(label string) (int64, bool) {
	id, err := strconv.ParseInt(s.prompt(label), 10, 64)
	if err != nil {
		s.inputError("Invalid ID format.")
		return 0, false
	}
	return id, true
}

// readLine returns the next line without its terminator. Lines have no length
// limit; a final line without a newline is still returned.
func (s *Shell) readLine() (string, bool) {
	line, err := s.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			s.logger.Warn("reading input failed", zap.Error(err))
		}
		if line == "" {
			return "", false
		}
	}
	return strings.TrimRight(line, "\r\n"), true
}

func (s *Shell) success(format string, args ...any) {
	fmt.Fprintf(s.out, "\n%s %s\n", successTag("[SUCCESS]"), fmt.Sprintf(format, args...))
}

func (s *Shell) failure(format string, args ...any) {
	fmt.Fprintf(s.out, "\n%s %s\n", failureTag("[FAILURE]"), fmt.Sprintf(format, args...))
}

func (s *Shell) warning(format string, args ...any) {
	fmt.Fprintf(s.out, "%s %s\n", warningTag("[WARNING]"), fmt.Sprintf(format, args...))
}

func (s *Shell) inputError(message string) {
	fmt.Fprintf(s.errOut, "\n%s %s\n", errorTag("[ERROR]"), message)
}

func parseSalary(raw string) (float64, error) {
	salary, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(salary) || math.IsInf(salary, 0) {
		return 0, fmt.Errorf("salary %q is not a finite number", raw)
	}
	return salary, nil
}

func describe(err error) string {
	domainErr := apperrors.ToDomainError(err)
	if domainErr == nil {
		return "unknown error"
	}
	return domainErr.Message
}
