// Package tools defines the tool names and data structures
// for the staffstore service.
package tools

import "github.com/localrivet/staffstore/internal/recordstore"

const (
	// ToolAddEmployee is the name of the add_employee MCP tool
	ToolAddEmployee = "add_employee"

	// ToolGetEmployee is the name of the get_employee MCP tool
	ToolGetEmployee = "get_employee"

	// ToolUpdateEmployee is the name of the update_employee MCP tool
	ToolUpdateEmployee = "update_employee"

	// ToolDeleteEmployee is the name of the delete_employee MCP tool
	ToolDeleteEmployee = "delete_employee"

	// ToolListEmployees is the name of the list_employees MCP tool
	ToolListEmployees = "list_employees"

	// ResourceEmployeeIDs is the URI of the employee IDs MCP resource
	ResourceEmployeeIDs = "employees://ids"
)

// AddEmployeeRequest defines the input schema for the add_employee tool
type AddEmployeeRequest struct {
	// Name is the employee's full name
	Name string `json:"name"`

	// JobRole is the employee's job role
	JobRole string `json:"job_role"`

	// Department is the employee's department
	Department string `json:"department"`

	// Salary is the employee's salary, must be greater than zero
	Salary float64 `json:"salary"`
}

// AddEmployeeResponse defines the output schema for the add_employee tool
type AddEmployeeResponse struct {
	// Status indicates the result of the operation ("success" or "error")
	Status string `json:"status"`

	// ID is the identifier assigned to the new employee
	ID int `json:"id,omitempty"`

	// Message is the human-readable confirmation text
	Message string `json:"message,omitempty"`

	// Error contains an error message if Status is "error"
	Error string `json:"error,omitempty"`
}

// GetEmployeeRequest defines the input schema for the get_employee tool
type GetEmployeeRequest struct {
	// EmployeeID is the unique ID of the employee to retrieve
	EmployeeID int `json:"employee_id"`
}

// GetEmployeeResponse defines the output schema for the get_employee tool
type GetEmployeeResponse struct {
	// Status indicates the result of the operation ("success" or "error")
	Status string `json:"status"`

	// Employee contains the matching record on success
	Employee *recordstore.Employee `json:"employee,omitempty"`

	// Error contains an error message if Status is "error"
	Error string `json:"error,omitempty"`
}

// UpdateEmployeeRequest defines the input schema for the update_employee tool
type UpdateEmployeeRequest struct {
	// EmployeeID is the unique ID of the employee to update
	EmployeeID int `json:"employee_id"`

	// Name is the updated full name
	Name string `json:"name"`

	// JobRole is the updated job role
	JobRole string `json:"job_role"`

	// Department is the updated department
	Department string `json:"department"`

	// Salary is the updated salary, must be greater than zero
	Salary float64 `json:"salary"`
}

// UpdateEmployeeResponse defines the output schema for the update_employee tool
type UpdateEmployeeResponse struct {
	// Status indicates the result of the operation ("success" or "error")
	Status string `json:"status"`

	// Message is the human-readable confirmation text
	Message string `json:"message,omitempty"`

	// Error contains an error message if Status is "error"
	Error string `json:"error,omitempty"`
}

// DeleteEmployeeRequest defines the input schema for the delete_employee tool
type DeleteEmployeeRequest struct {
	// EmployeeID is the unique ID of the employee to delete
	EmployeeID int `json:"employee_id"`
}

// DeleteEmployeeResponse defines the output schema for the delete_employee tool
type DeleteEmployeeResponse struct {
	// Status indicates the result of the operation ("success" or "error")
	Status string `json:"status"`

	// Message is the human-readable confirmation text
	Message string `json:"message,omitempty"`

	// Error contains an error message if Status is "error"
	Error string `json:"error,omitempty"`
}

// ListEmployeesRequest defines the input schema for the list_employees tool
type ListEmployeesRequest struct{}

// ListEmployeesResponse defines the output schema for the list_employees tool
type ListEmployeesResponse struct {
	// Status indicates the result of the operation ("success" or "error")
	Status string `json:"status"`

	// Employees contains the full collection in stored order
	Employees []recordstore.Employee `json:"employees"`

	// Error contains an error message if Status is "error"
	Error string `json:"error,omitempty"`
}

// EmployeeIDsArgs defines the (empty) argument schema for the employee IDs
// resource
type EmployeeIDsArgs struct{}
