// Package recordstore provides storage interfaces and implementations for
// the employee records managed by the staffstore service.
package recordstore

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by RecordStore implementations. Callers should
// test for them with errors.Is.
var (
	// ErrNotFound is returned when no record with the requested ID exists.
	ErrNotFound = errors.New("employee not found")

	// ErrInvalidRecord is returned when a record fails field validation.
	ErrInvalidRecord = errors.New("invalid employee record")
)

// Employee is a single employee record. The ID is assigned by the store on
// creation and never supplied by callers.
type Employee struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	JobRole    string  `json:"job_role"`
	Department string  `json:"department"`
	Salary     float64 `json:"salary"`
}

// RecordStore defines the interface for storing and retrieving employee
// records.
type RecordStore interface {
	// Initialize initializes the store with the given backing path,
	// creating an empty collection if none exists yet.
	Initialize(path string) error

	// Close closes the store and releases any resources.
	Close() error

	// Create validates the given fields, assigns the next free ID and
	// appends the record to the collection. It returns the assigned ID.
	Create(name, jobRole, department string, salary float64) (int, error)

	// Get returns the record with the given ID, or ErrNotFound.
	Get(id int) (Employee, error)

	// Update replaces the four mutable fields of the record with the given
	// ID, keeping the ID itself. It applies the same validation as Create.
	Update(id int, name, jobRole, department string, salary float64) error

	// Delete removes the record with the given ID, or returns ErrNotFound
	// if no record had that ID.
	Delete(id int) error

	// List returns the full collection in stored order.
	List() ([]Employee, error)

	// ListIDs returns the IDs of all records in stored order.
	ListIDs() ([]int, error)
}

// validateFields checks the record fields shared by Create and Update.
// Validation is applied uniformly to both operations.
func validateFields(name, jobRole, department string, salary float64) error {
	if name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidRecord)
	}
	if jobRole == "" {
		return fmt.Errorf("%w: job_role must not be empty", ErrInvalidRecord)
	}
	if department == "" {
		return fmt.Errorf("%w: department must not be empty", ErrInvalidRecord)
	}
	if salary <= 0 {
		return fmt.Errorf("%w: salary must be greater than zero", ErrInvalidRecord)
	}
	return nil
}

// nextID computes the ID assigned to a new record: one greater than the
// highest ID currently present, or 1 for an empty collection.
func nextID(employees []Employee) int {
	max := 0
	for _, emp := range employees {
		if emp.ID > max {
			max = emp.ID
		}
	}
	return max + 1
}
