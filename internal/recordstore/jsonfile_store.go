package recordstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// JSONFileStore is an implementation of RecordStore backed by a single flat
// JSON file. Every operation loads the whole collection into memory and
// mutating operations rewrite the whole file.
//
// A mutex serializes operations so the store can be embedded in a process
// with concurrent callers. Cross-process writers are not supported.
type JSONFileStore struct {
	path           string
	recoverCorrupt bool
	mu             sync.Mutex
}

// JSONFileStoreOptions configures a JSONFileStore.
type JSONFileStoreOptions struct {
	// RecoverCorrupt controls the malformed-data policy: when true, a
	// backing file that cannot be parsed as a JSON array is treated as an
	// empty collection instead of failing the operation. The next mutation
	// then overwrites the corrupt file. This trades data-loss risk for
	// availability.
	RecoverCorrupt bool
}

// NewJSONFileStore creates a new JSONFileStore instance with corruption
// recovery enabled.
func NewJSONFileStore() *JSONFileStore {
	return NewJSONFileStoreWithOptions(JSONFileStoreOptions{RecoverCorrupt: true})
}

// NewJSONFileStoreWithOptions creates a new JSONFileStore instance with the
// given options.
func NewJSONFileStoreWithOptions(opts JSONFileStoreOptions) *JSONFileStore {
	return &JSONFileStore{recoverCorrupt: opts.RecoverCorrupt}
}

// Initialize initializes the store with the given backing file path. The
// enclosing directory is created if absent, and the file itself is created
// as an empty collection if absent.
func (s *JSONFileStore) Initialize(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.path = path

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return s.persist([]Employee{})
	} else if err != nil {
		return fmt.Errorf("failed to stat backing file: %w", err)
	}

	return nil
}

// Close closes the store. The JSON file store holds no open resources.
func (s *JSONFileStore) Close() error {
	return nil
}

// load reads the full collection from the backing file. A missing file is an
// empty collection. An unparsable file is an empty collection when corruption
// recovery is enabled, an error otherwise.
func (s *JSONFileStore) load() ([]Employee, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Employee{}, nil
		}
		return nil, fmt.Errorf("failed to read backing file: %w", err)
	}

	var employees []Employee
	if err := json.Unmarshal(data, &employees); err != nil {
		if s.recoverCorrupt {
			return []Employee{}, nil
		}
		return nil, fmt.Errorf("failed to parse backing file: %w", err)
	}

	return employees, nil
}

// persist replaces the backing file with the given collection. The data is
// written to a temporary file in the same directory and renamed into place so
// a crash mid-write cannot leave a truncated file behind.
func (s *JSONFileStore) persist(employees []Employee) error {
	data, err := json.MarshalIndent(employees, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal collection: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace backing file: %w", err)
	}

	return nil
}

// Create validates the fields, assigns the next free ID, appends the record
// and persists the full collection.
func (s *JSONFileStore) Create(name, jobRole, department string, salary float64) (int, error) {
	if err := validateFields(name, jobRole, department, salary); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	employees, err := s.load()
	if err != nil {
		return 0, err
	}

	emp := Employee{
		ID:         nextID(employees),
		Name:       name,
		JobRole:    jobRole,
		Department: department,
		Salary:     salary,
	}
	employees = append(employees, emp)

	if err := s.persist(employees); err != nil {
		return 0, err
	}

	return emp.ID, nil
}

// Get returns the record with the given ID.
func (s *JSONFileStore) Get(id int) (Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	employees, err := s.load()
	if err != nil {
		return Employee{}, err
	}

	for _, emp := range employees {
		if emp.ID == id {
			return emp, nil
		}
	}

	return Employee{}, fmt.Errorf("employee %d: %w", id, ErrNotFound)
}

// Update replaces the mutable fields of the record with the given ID and
// persists the full collection.
func (s *JSONFileStore) Update(id int, name, jobRole, department string, salary float64) error {
	if err := validateFields(name, jobRole, department, salary); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	employees, err := s.load()
	if err != nil {
		return err
	}

	for i := range employees {
		if employees[i].ID == id {
			employees[i].Name = name
			employees[i].JobRole = jobRole
			employees[i].Department = department
			employees[i].Salary = salary
			return s.persist(employees)
		}
	}

	return fmt.Errorf("employee %d: %w", id, ErrNotFound)
}

// Delete removes the record with the given ID and persists the full
// collection. Absence is detected by comparing collection length before and
// after removal.
func (s *JSONFileStore) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	employees, err := s.load()
	if err != nil {
		return err
	}

	remaining := employees[:0:0]
	for _, emp := range employees {
		if emp.ID != id {
			remaining = append(remaining, emp)
		}
	}

	if len(remaining) == len(employees) {
		return fmt.Errorf("employee %d: %w", id, ErrNotFound)
	}

	return s.persist(remaining)
}

// List returns the full collection in stored order.
func (s *JSONFileStore) List() ([]Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

// ListIDs returns the IDs of all records in stored order.
func (s *JSONFileStore) ListIDs() ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	employees, err := s.load()
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(employees))
	for _, emp := range employees {
		ids = append(ids, emp.ID)
	}

	return ids, nil
}
