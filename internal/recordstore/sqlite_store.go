package recordstore

import (
	"fmt"

	"crawshaw.io/sqlite"
)

// SQLiteStore is an implementation of RecordStore that uses SQLite. It is an
// alternative backend for deployments that outgrow the flat JSON file; the
// record semantics (validation, ID assignment, not-found behavior) are
// identical to JSONFileStore.
type SQLiteStore struct {
	conn   *sqlite.Conn
	dbPath string
}

// NewSQLiteStore creates a new SQLiteStore instance.
func NewSQLiteStore() *SQLiteStore {
	return &SQLiteStore{}
}

// Initialize initializes the store with the given database path.
func (s *SQLiteStore) Initialize(dbPath string) error {
	s.dbPath = dbPath

	conn, err := sqlite.OpenConn(dbPath, sqlite.SQLITE_OPEN_CREATE|sqlite.SQLITE_OPEN_READWRITE)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	s.conn = conn

	if err := s.createTable(); err != nil {
		s.conn.Close()
		return fmt.Errorf("failed to create table: %w", err)
	}

	return nil
}

// createTable creates the employees table if it doesn't exist.
func (s *SQLiteStore) createTable() error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS employees (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		job_role TEXT NOT NULL,
		department TEXT NOT NULL,
		salary REAL NOT NULL
	);`

	stmt, err := s.conn.Prepare(createTableSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare create table statement: %w", err)
	}
	defer stmt.Reset()

	_, err = stmt.Step()
	if err != nil {
		return fmt.Errorf("failed to execute create table statement: %w", err)
	}

	return nil
}

// Close closes the store and releases any resources.
func (s *SQLiteStore) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Create validates the fields, assigns the next free ID and inserts the
// record.
func (s *SQLiteStore) Create(name, jobRole, department string, salary float64) (int, error) {
	if err := validateFields(name, jobRole, department, salary); err != nil {
		return 0, err
	}

	employees, err := s.selectAll()
	if err != nil {
		return 0, err
	}
	id := nextID(employees)

	insertSQL := `
	INSERT INTO employees (id, name, job_role, department, salary)
	VALUES (?, ?, ?, ?, ?);`

	stmt, err := s.conn.Prepare(insertSQL)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Reset()

	// Bind parameters - indices in sqlite are 1-based
	stmt.BindInt64(1, int64(id))
	stmt.BindText(2, name)
	stmt.BindText(3, jobRole)
	stmt.BindText(4, department)
	stmt.BindFloat(5, salary)

	if _, err := stmt.Step(); err != nil {
		return 0, fmt.Errorf("failed to insert employee: %w", err)
	}

	return id, nil
}

// Get returns the record with the given ID.
func (s *SQLiteStore) Get(id int) (Employee, error) {
	selectSQL := `
	SELECT id, name, job_role, department, salary FROM employees
	WHERE id = ?;`

	stmt, err := s.conn.Prepare(selectSQL)
	if err != nil {
		return Employee{}, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Reset()

	stmt.BindInt64(1, int64(id))

	hasRow, err := stmt.Step()
	if err != nil {
		return Employee{}, fmt.Errorf("failed to execute select statement: %w", err)
	}
	if !hasRow {
		return Employee{}, fmt.Errorf("employee %d: %w", id, ErrNotFound)
	}

	return Employee{
		ID:         int(stmt.ColumnInt64(0)),
		Name:       stmt.ColumnText(1),
		JobRole:    stmt.ColumnText(2),
		Department: stmt.ColumnText(3),
		Salary:     stmt.ColumnFloat(4),
	}, nil
}

// Update replaces the mutable fields of the record with the given ID.
func (s *SQLiteStore) Update(id int, name, jobRole, department string, salary float64) error {
	if err := validateFields(name, jobRole, department, salary); err != nil {
		return err
	}

	if _, err := s.Get(id); err != nil {
		return err
	}

	updateSQL := `
	UPDATE employees SET name = ?, job_role = ?, department = ?, salary = ?
	WHERE id = ?;`

	stmt, err := s.conn.Prepare(updateSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare update statement: %w", err)
	}
	defer stmt.Reset()

	stmt.BindText(1, name)
	stmt.BindText(2, jobRole)
	stmt.BindText(3, department)
	stmt.BindFloat(4, salary)
	stmt.BindInt64(5, int64(id))

	if _, err := stmt.Step(); err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}

	return nil
}

// Delete removes the record with the given ID.
func (s *SQLiteStore) Delete(id int) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	deleteSQL := `DELETE FROM employees WHERE id = ?;`

	stmt, err := s.conn.Prepare(deleteSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare delete statement: %w", err)
	}
	defer stmt.Reset()

	stmt.BindInt64(1, int64(id))

	if _, err := stmt.Step(); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	return nil
}

// List returns the full collection in insertion order.
func (s *SQLiteStore) List() ([]Employee, error) {
	return s.selectAll()
}

// ListIDs returns the IDs of all records in insertion order.
func (s *SQLiteStore) ListIDs() ([]int, error) {
	employees, err := s.selectAll()
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(employees))
	for _, emp := range employees {
		ids = append(ids, emp.ID)
	}

	return ids, nil
}

// selectAll retrieves all employee rows ordered by rowid, which preserves
// insertion order the way the JSON file does.
func (s *SQLiteStore) selectAll() ([]Employee, error) {
	selectSQL := `
	SELECT id, name, job_role, department, salary FROM employees
	ORDER BY rowid;`

	stmt, err := s.conn.Prepare(selectSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Reset()

	employees := []Employee{}
	for {
		hasRow, err := stmt.Step()
		if err != nil {
			return nil, fmt.Errorf("failed to execute select statement: %w", err)
		}
		if !hasRow {
			break
		}

		employees = append(employees, Employee{
			ID:         int(stmt.ColumnInt64(0)),
			Name:       stmt.ColumnText(1),
			JobRole:    stmt.ColumnText(2),
			Department: stmt.ColumnText(3),
			Salary:     stmt.ColumnFloat(4),
		})
	}

	return employees, nil
}
