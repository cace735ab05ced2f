package repository

import (
	"context"
	"math"

	"github.com/jackc/pgx/v5"

	"github.com/staffdesk/employee-manager/internal/domain"
	"github.com/staffdesk/employee-manager/internal/persistence"
)

// EmployeeRepository manages employee persistence. Each call acquires and
// releases its own connection.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	Update(ctx context.Context, employee *domain.Employee) error
	Delete(ctx context.Context, id int64) error
}

const (
	insertEmployeeSQL = `
        INSERT INTO employees (name, department, salary)
        VALUES ($1,$2,$3)
        RETURNING id`
	selectEmployeeByIDSQL = `
        SELECT id, name, department, salary
        FROM employees WHERE id=$1`
	selectEmployeesSQL = `
        SELECT id, name, department, salary
        FROM employees ORDER BY id`
	updateEmployeeSQL = `
        UPDATE employees SET name=$1, department=$2, salary=$3
        WHERE id=$4`
	deleteEmployeeSQL = `
        DELETE FROM employees WHERE id=$1`
)

type postgresEmployeeRepository struct {
	db *persistence.Postgres
}

// NewPostgresEmployeeRepository builds the repository on top of a Postgres connector.
func NewPostgresEmployeeRepository(db *persistence.Postgres) EmployeeRepository {
	return &postgresEmployeeRepository{db: db}
}

func (r *postgresEmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	if employee.HasID() {
		return domain.ErrIDAlreadyAssigned
	}
	conn, err := r.db.Connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	var id int64
	if err := conn.QueryRow(ctx, insertEmployeeSQL,
		employee.Name(),
		nullableDepartment(employee.Department()),
		roundedSalary(employee),
	).Scan(&id); err != nil {
		return err
	}
	return employee.AssignID(id)
}

func (r *postgresEmployeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	conn, err := r.db.Connect(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close(ctx)

	var row employeeRow
	if err := conn.QueryRow(ctx, selectEmployeeByIDSQL, id).Scan(
		&row.ID,
		&row.Name,
		&row.Department,
		&row.Salary,
	); err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *postgresEmployeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	conn, err := r.db.Connect(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close(ctx)

	rows, err := conn.Query(ctx, selectEmployeesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Employee{}
	for rows.Next() {
		var row employeeRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Department, &row.Salary); err != nil {
			return nil, err
		}
		result = append(result, *row.toDomain())
	}
	return result, rows.Err()
}

func (r *postgresEmployeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	conn, err := r.db.Connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	cmd, err := conn.Exec(ctx, updateEmployeeSQL,
		employee.Name(),
		nullableDepartment(employee.Department()),
		roundedSalary(employee),
		employee.ID(),
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *postgresEmployeeRepository) Delete(ctx context.Context, id int64) error {
	conn, err := r.db.Connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	cmd, err := conn.Exec(ctx, deleteEmployeeSQL, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// employeeRow is the scan target shared by both backends.
type employeeRow struct {
	ID         int64
	Name       string
	Department *string
	Salary     float64
}

func (r employeeRow) toDomain() *domain.Employee {
	department := ""
	if r.Department != nil {
		department = *r.Department
	}
	return domain.RestoreEmployee(r.ID, r.Name, department, r.Salary)
}

// nullableDepartment stores an empty department as NULL.
func nullableDepartment(department string) *string {
	if department == "" {
		return nil
	}
	return &department
}

// roundedSalary rounds the salary to cents and keeps employee in step with
// the stored value. SQLite does not enforce the column's DECIMAL(10,2).
func roundedSalary(employee *domain.Employee) float64 {
	salary := math.Round(employee.Salary()*100) / 100
	employee.SetSalary(salary)
	return salary
}
