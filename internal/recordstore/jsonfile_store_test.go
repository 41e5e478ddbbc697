package recordstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// newTestStore creates an initialized JSONFileStore backed by a temp file.
func newTestStore(t *testing.T) *JSONFileStore {
	t.Helper()

	store := NewJSONFileStore()
	path := filepath.Join(t.TempDir(), "employees.json")
	if err := store.Initialize(path); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	return store
}

func TestInitializeCreatesEmptyCollection(t *testing.T) {
	store := NewJSONFileStore()
	path := filepath.Join(t.TempDir(), "data", "employees.json")

	if err := store.Initialize(path); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}

	// The backing file and its directory should now exist
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected backing file to be created: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("Expected empty collection, got: %s", data)
	}

	employees, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(employees) != 0 {
		t.Errorf("Expected empty collection, got %d records", len(employees))
	}
}

func TestCreateAndGetRoundtrip(t *testing.T) {
	store := newTestStore(t)

	id, err := store.Create("Ana", "Engineer", "R&D", 95000.0)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id != 1 {
		t.Errorf("Expected first ID to be 1, got %d", id)
	}

	emp, err := store.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if emp.ID != id || emp.Name != "Ana" || emp.JobRole != "Engineer" ||
		emp.Department != "R&D" || emp.Salary != 95000.0 {
		t.Errorf("Retrieved record doesn't match inputs: %+v", emp)
	}
}

func TestIDAssignment(t *testing.T) {
	store := newTestStore(t)

	id1, _ := store.Create("Ana", "Engineer", "R&D", 95000.0)
	id2, _ := store.Create("Bo", "Analyst", "Finance", 70000.0)
	if id1 != 1 || id2 != 2 {
		t.Fatalf("Expected IDs 1 and 2, got %d and %d", id1, id2)
	}

	// Deleting the highest ID frees it for reuse; the next ID is always
	// max(existing)+1.
	if err := store.Delete(id2); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	id3, _ := store.Create("Cy", "Manager", "Sales", 80000.0)
	if id3 != 2 {
		t.Errorf("Expected ID 2 after deleting the max, got %d", id3)
	}

	// An ID still present is never reused.
	id4, _ := store.Create("Di", "Designer", "Product", 60000.0)
	if id4 != 3 {
		t.Errorf("Expected ID 3, got %d", id4)
	}
}

func TestUpdatePreservesID(t *testing.T) {
	store := newTestStore(t)

	id, _ := store.Create("Ana", "Engineer", "R&D", 95000.0)

	if err := store.Update(id, "Ana Maria", "Senior Engineer", "Platform", 110000.0); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	emp, err := store.Get(id)
	if err != nil {
		t.Fatalf("Get after update failed: %v", err)
	}

	if emp.ID != id {
		t.Errorf("Update changed the ID: got %d, want %d", emp.ID, id)
	}
	if emp.Name != "Ana Maria" || emp.JobRole != "Senior Engineer" ||
		emp.Department != "Platform" || emp.Salary != 110000.0 {
		t.Errorf("Update did not overwrite all mutable fields: %+v", emp)
	}
}

func TestUpdateNotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.Update(42, "Nobody", "Ghost", "Nowhere", 1.0)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	store := newTestStore(t)

	store.Create("Ana", "Engineer", "R&D", 95000.0)
	store.Create("Bo", "Analyst", "Finance", 70000.0)
	store.Create("Cy", "Manager", "Sales", 80000.0)

	if err := store.Delete(2); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	employees, _ := store.List()
	if len(employees) != 2 {
		t.Fatalf("Expected 2 records after delete, got %d", len(employees))
	}

	// Remaining records keep their order
	if employees[0].ID != 1 || employees[1].ID != 3 {
		t.Errorf("Delete disturbed record order: %+v", employees)
	}
}

func TestDeleteTwiceFailsWithoutSideEffects(t *testing.T) {
	store := newTestStore(t)

	store.Create("Ana", "Engineer", "R&D", 95000.0)
	store.Create("Bo", "Analyst", "Finance", 70000.0)

	if err := store.Delete(1); err != nil {
		t.Fatalf("First delete failed: %v", err)
	}

	err := store.Delete(1)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}

	employees, _ := store.List()
	if len(employees) != 1 || employees[0].ID != 2 {
		t.Errorf("Second delete removed another record: %+v", employees)
	}
}

func TestGetNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(99)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	store := newTestStore(t)

	cases := []struct {
		name       string
		empName    string
		jobRole    string
		department string
		salary     float64
	}{
		{"empty name", "", "x", "y", 50000.0},
		{"empty job role", "Ana", "", "y", 50000.0},
		{"empty department", "Ana", "x", "", 50000.0},
		{"zero salary", "Ana", "x", "y", 0},
		{"negative salary", "Ana", "x", "y", -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.Create(tc.empName, tc.jobRole, tc.department, tc.salary)
			if !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("Expected ErrInvalidRecord, got %v", err)
			}
		})
	}

	// The collection must be unchanged after failed validation
	employees, _ := store.List()
	if len(employees) != 0 {
		t.Errorf("Failed validation mutated the collection: %+v", employees)
	}
}

func TestUpdateValidation(t *testing.T) {
	store := newTestStore(t)

	id, _ := store.Create("Ana", "Engineer", "R&D", 95000.0)

	err := store.Update(id, "Ana", "Engineer", "R&D", -500.0)
	if !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("Expected ErrInvalidRecord, got %v", err)
	}

	// Record must be untouched
	emp, _ := store.Get(id)
	if emp.Salary != 95000.0 {
		t.Errorf("Failed validation mutated the record: %+v", emp)
	}
}

func TestListCountsCreatesMinusDeletes(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := store.Create("Emp", "Role", "Dept", 1000.0); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	store.Delete(1)
	store.Delete(3)

	employees, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(employees) != 3 {
		t.Errorf("Expected 3 records (5 creates - 2 deletes), got %d", len(employees))
	}
}

func TestListIDs(t *testing.T) {
	store := newTestStore(t)

	store.Create("Ana", "Engineer", "R&D", 95000.0)
	store.Create("Bo", "Analyst", "Finance", 70000.0)

	ids, err := store.ListIDs()
	if err != nil {
		t.Fatalf("ListIDs failed: %v", err)
	}

	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("Expected IDs [1 2], got %v", ids)
	}
}

func TestScenarioCreateDeleteRead(t *testing.T) {
	store := newTestStore(t)

	id1, err := store.Create("Ana", "Engineer", "R&D", 95000.0)
	if err != nil || id1 != 1 {
		t.Fatalf("Expected first create to return ID 1, got %d (%v)", id1, err)
	}

	id2, err := store.Create("Bo", "Analyst", "Finance", 70000.0)
	if err != nil || id2 != 2 {
		t.Fatalf("Expected second create to return ID 2, got %d (%v)", id2, err)
	}

	if err := store.Delete(1); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	employees, _ := store.List()
	if len(employees) != 1 || employees[0].ID != 2 || employees[0].Name != "Bo" {
		t.Errorf("Expected exactly Bo's record with ID 2, got %+v", employees)
	}

	if _, err := store.Get(1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound reading deleted record, got %v", err)
	}
}

func TestCorruptFileRecovered(t *testing.T) {
	store := NewJSONFileStore()
	path := filepath.Join(t.TempDir(), "employees.json")
	if err := store.Initialize(path); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}

	// Clobber the backing file with unparsable content
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	employees, err := store.List()
	if err != nil {
		t.Fatalf("Expected corruption to be recovered, got error: %v", err)
	}
	if len(employees) != 0 {
		t.Errorf("Expected empty collection from corrupt file, got %+v", employees)
	}

	// A mutation after recovery overwrites the corrupt file from an empty base
	id, err := store.Create("Ana", "Engineer", "R&D", 95000.0)
	if err != nil {
		t.Fatalf("Create after recovery failed: %v", err)
	}
	if id != 1 {
		t.Errorf("Expected ID 1 after recovery, got %d", id)
	}
}

func TestCorruptNonArrayRecovered(t *testing.T) {
	store := NewJSONFileStore()
	path := filepath.Join(t.TempDir(), "employees.json")
	if err := store.Initialize(path); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}

	// Valid JSON, but the top-level value is not an array
	if err := os.WriteFile(path, []byte(`{"id": 1}`), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	employees, err := store.List()
	if err != nil {
		t.Fatalf("Expected non-array content to be recovered, got error: %v", err)
	}
	if len(employees) != 0 {
		t.Errorf("Expected empty collection, got %+v", employees)
	}
}

func TestCorruptFileSurfacedWhenRecoveryDisabled(t *testing.T) {
	store := NewJSONFileStoreWithOptions(JSONFileStoreOptions{RecoverCorrupt: false})
	path := filepath.Join(t.TempDir(), "employees.json")
	if err := store.Initialize(path); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}

	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	if _, err := store.List(); err == nil {
		t.Error("Expected parse error with recovery disabled, got nil")
	}
}

func TestMissingFileTreatedAsEmpty(t *testing.T) {
	store := newTestStore(t)

	store.Create("Ana", "Engineer", "R&D", 95000.0)

	// Remove the backing file out from under the store
	if err := os.Remove(store.path); err != nil {
		t.Fatalf("Failed to remove backing file: %v", err)
	}

	employees, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(employees) != 0 {
		t.Errorf("Expected empty collection for missing file, got %+v", employees)
	}
}
