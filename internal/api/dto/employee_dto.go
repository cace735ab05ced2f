package dto

// CreateEmployeeRequest payload.
type CreateEmployeeRequest struct {
	Name       string   `json:"name"`
	Department string   `json:"department"`
	Salary     *float64 `json:"salary"`
}

// UpdateEmployeeRequest payload. Omitted fields keep their current value.
type UpdateEmployeeRequest struct {
	Name       *string  `json:"name"`
	Department *string  `json:"department"`
	Salary     *float64 `json:"salary"`
}

// EmployeeResponse is the wire form of an employee.
type EmployeeResponse struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Department string  `json:"department"`
	Salary     float64 `json:"salary"`
}
