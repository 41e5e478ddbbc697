package tools

import (
	"encoding/json"
	"testing"

	"github.com/localrivet/staffstore/internal/recordstore"
)

func TestEmployeeFieldNames(t *testing.T) {
	resp := GetEmployeeResponse{
		Status: "success",
		Employee: &recordstore.Employee{
			ID: 1, Name: "Ana", JobRole: "Engineer", Department: "R&D", Salary: 95000.0,
		},
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Failed to marshal GetEmployeeResponse: %v", err)
	}

	var jsonMap map[string]interface{}
	if err := json.Unmarshal(data, &jsonMap); err != nil {
		t.Fatalf("Failed to unmarshal JSON into map: %v", err)
	}

	emp, ok := jsonMap["employee"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected employee object, got %T", jsonMap["employee"])
	}

	// The wire format field names are part of the backing artifact contract
	for _, field := range []string{"id", "name", "job_role", "department", "salary"} {
		if _, exists := emp[field]; !exists {
			t.Errorf("Expected employee field %q in JSON output, got %v", field, emp)
		}
	}

	// Error field must be omitted on success
	if _, exists := jsonMap["error"]; exists {
		t.Error("Expected 'error' field to be omitted when empty")
	}
}

func TestAddEmployeeRequestRoundtrip(t *testing.T) {
	in := []byte(`{"name":"Bo","job_role":"Analyst","department":"Finance","salary":70000}`)

	var req AddEmployeeRequest
	if err := json.Unmarshal(in, &req); err != nil {
		t.Fatalf("Failed to unmarshal AddEmployeeRequest: %v", err)
	}

	if req.Name != "Bo" || req.JobRole != "Analyst" || req.Department != "Finance" || req.Salary != 70000 {
		t.Errorf("Unexpected request contents: %+v", req)
	}
}
