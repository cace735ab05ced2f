package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrIDAlreadyAssigned is returned when a persisted employee is given a second identifier.
var ErrIDAlreadyAssigned = errors.New("employee id already assigned")

// Employee models a single persisted employee row.
// The identifier is set by the database and never changes afterwards.
type Employee struct {
	id         int64
	name       string
	department string
	salary     float64
}

// NewEmployee builds an employee that has not been persisted yet.
func NewEmployee(name, department string, salary float64) *Employee {
	return &Employee{name: name, department: department, salary: salary}
}

// RestoreEmployee rebuilds an employee read back from storage.
func RestoreEmployee(id int64, name, department string, salary float64) *Employee {
	return &Employee{id: id, name: name, department: department, salary: salary}
}

func (e *Employee) ID() int64          { return e.id }
func (e *Employee) HasID() bool        { return e.id != 0 }
func (e *Employee) Name() string       { return e.name }
func (e *Employee) Department() string { return e.department }
func (e *Employee) Salary() float64    { return e.salary }

func (e *Employee) SetName(name string)             { e.name = name }
func (e *Employee) SetDepartment(department string) { e.department = department }
func (e *Employee) SetSalary(salary float64)        { e.salary = salary }

// AssignID records the database-assigned identifier.
func (e *Employee) AssignID(id int64) error {
	if e.HasID() {
		return ErrIDAlreadyAssigned
	}
	if id <= 0 {
		return fmt.Errorf("invalid employee id %d", id)
	}
	e.id = id
	return nil
}

func (e *Employee) String() string {
	return fmt.Sprintf("| ID: %-4d | Name: %-20s | Dept: %-15s | Salary: $%s |",
		e.id, e.name, e.department, FormatSalary(e.salary))
}

// FormatSalary renders an amount with two decimals and comma thousands separators.
func FormatSalary(amount float64) string {
	raw := strconv.FormatFloat(amount, 'f', 2, 64)
	sign := ""
	if strings.HasPrefix(raw, "-") {
		sign, raw = "-", raw[1:]
	}
	whole, frac, _ := strings.Cut(raw, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "." + frac
}
