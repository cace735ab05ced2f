package repository

import (
	"context"
	"database/sql"

	"github.com/staffdesk/employee-manager/internal/domain"
	"github.com/staffdesk/employee-manager/internal/persistence"
)

type sqliteEmployeeRepository struct {
	db *persistence.SQLite
}

// NewSQLiteEmployeeRepository builds the repository on top of a SQLite connector.
func NewSQLiteEmployeeRepository(db *persistence.SQLite) EmployeeRepository {
	return &sqliteEmployeeRepository{db: db}
}

func (r *sqliteEmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	if employee.HasID() {
		return domain.ErrIDAlreadyAssigned
	}
	db, err := r.db.Open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	var id int64
	if err := db.QueryRowContext(ctx, insertEmployeeSQL,
		employee.Name(),
		nullableDepartment(employee.Department()),
		roundedSalary(employee),
	).Scan(&id); err != nil {
		return err
	}
	return employee.AssignID(id)
}

func (r *sqliteEmployeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	db, err := r.db.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var row employeeRow
	if err := db.QueryRowContext(ctx, selectEmployeeByIDSQL, id).Scan(
		&row.ID,
		&row.Name,
		&row.Department,
		&row.Salary,
	); err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *sqliteEmployeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	db, err := r.db.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, selectEmployeesSQL)
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

func (r *sqliteEmployeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	db, err := r.db.Open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, updateEmployeeSQL,
		employee.Name(),
		nullableDepartment(employee.Department()),
		roundedSalary(employee),
		employee.ID(),
	)
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}

func (r *sqliteEmployeeRepository) Delete(ctx context.Context, id int64) error {
	db, err := r.db.Open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, deleteEmployeeSQL, id)
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}

func requireRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
