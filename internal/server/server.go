// Package server provides the MCP server implementation for the staffstore service.
package server

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/localrivet/gomcp/server"
	"github.com/localrivet/staffstore/internal/errortypes"
	"github.com/localrivet/staffstore/internal/recordstore"
	"github.com/localrivet/staffstore/internal/telemetry"
	"github.com/localrivet/staffstore/internal/tools"
)

// Common server error types
var (
	ErrServerNotInitialized = errors.New("server not initialized")
	ErrMissingDependencies  = errors.New("one or more required dependencies are nil")
)

// MCPEmployeeToolServer implements the EmployeeToolServer interface
// for handling MCP tool calls against the employee record store.
type MCPEmployeeToolServer struct {
	store     recordstore.RecordStore
	metrics   *telemetry.MetricsCollector
	mcpServer server.Server
}

// NewEmployeeToolServer creates a new MCPEmployeeToolServer instance.
func NewEmployeeToolServer(store recordstore.RecordStore) *MCPEmployeeToolServer {
	return &MCPEmployeeToolServer{
		store:   store,
		metrics: telemetry.NewMetricsCollector(),
	}
}

// Initialize initializes the server with dependencies and configurations.
func (s *MCPEmployeeToolServer) Initialize() error {
	slog.Info("Initializing MCP Employee Tool Server")

	if s.store == nil {
		return errortypes.ConfigError(ErrMissingDependencies, "server initialization failed")
	}

	// Create the MCP server
	srv := server.NewServer("staffstore")

	// Register add_employee tool
	srv = srv.Tool(tools.ToolAddEmployee, "Add a new employee. The ID is generated automatically",
		s.handleAddEmployee)

	// Register get_employee tool
	srv = srv.Tool(tools.ToolGetEmployee, "Retrieve employee details by ID",
		s.handleGetEmployee)

	// Register update_employee tool
	srv = srv.Tool(tools.ToolUpdateEmployee, "Update an existing employee's details while keeping the same ID",
		s.handleUpdateEmployee)

	// Register delete_employee tool
	srv = srv.Tool(tools.ToolDeleteEmployee, "Remove an employee from the records by ID",
		s.handleDeleteEmployee)

	// Register list_employees tool
	srv = srv.Tool(tools.ToolListEmployees, "List all employees and their details",
		s.handleListEmployees)

	// Register the employee IDs resource
	srv = srv.Resource(tools.ResourceEmployeeIDs, "Get a list of all existing employee IDs",
		s.handleEmployeeIDs)

	s.mcpServer = srv
	slog.Info("MCP Employee Tool Server initialized successfully", "tool_count", 5, "resource_count", 1)
	return nil
}

// Start starts the MCP server on the specified transport.
func (s *MCPEmployeeToolServer) Start() error {
	if s.mcpServer == nil {
		return errortypes.ConfigError(ErrServerNotInitialized, "cannot start server")
	}

	slog.Info("Starting MCP Employee Tool Server")

	// Start the server using stdio transport
	stdioServer := s.mcpServer.AsStdio()
	return stdioServer.Run()
}

// Stop gracefully shuts down the MCP server.
func (s *MCPEmployeeToolServer) Stop() error {
	slog.Info("Stopping MCP Employee Tool Server")
	// The server will exit when stdin is closed
	return nil
}

// Metrics returns the collector tracking store operation counts and latency.
func (s *MCPEmployeeToolServer) Metrics() *telemetry.MetricsCollector {
	return s.metrics
}

// notFoundMessage renders the canonical not-found text surfaced to callers.
func notFoundMessage(id int) string {
	return fmt.Sprintf("Error: Employee with ID %d not found.", id)
}

// refreshRecordCount updates the record count gauge after a mutation.
func (s *MCPEmployeeToolServer) refreshRecordCount() {
	ids, err := s.store.ListIDs()
	if err != nil {
		slog.Warn("Failed to refresh record count gauge", "error", err)
		return
	}
	s.metrics.SetGauge(telemetry.MetricStoreRecordCount, float64(len(ids)))
}

// handleAddEmployee handles the add_employee MCP tool call.
func (s *MCPEmployeeToolServer) handleAddEmployee(ctx *server.Context, req tools.AddEmployeeRequest) (tools.AddEmployeeResponse, error) {
	slog.Info("Processing add_employee request", "name", req.Name, "department", req.Department)

	response := tools.AddEmployeeResponse{
		Status: "success",
	}

	start := time.Now()
	id, err := s.store.Create(req.Name, req.JobRole, req.Department, req.Salary)
	s.metrics.RecordTimer(telemetry.MetricStoreOpLatencyCreate, time.Since(start))
	if err != nil {
		s.metrics.IncrementCounter(telemetry.MetricStoreOpsFailure, 1)
		if errors.Is(err, recordstore.ErrInvalidRecord) {
			err = errortypes.ValidationError(err, "invalid add_employee request").
				WithField("name", req.Name)
		} else {
			err = errortypes.DatabaseError(err, "failed to add employee")
		}
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	s.metrics.IncrementCounter(telemetry.MetricStoreOpsCreate, 1)
	s.refreshRecordCount()
	response.ID = id
	response.Message = fmt.Sprintf("Employee added successfully with ID: %d", id)
	slog.Info("Successfully added employee", "id", id)

	return response, nil
}

// handleGetEmployee handles the get_employee MCP tool call.
func (s *MCPEmployeeToolServer) handleGetEmployee(ctx *server.Context, req tools.GetEmployeeRequest) (tools.GetEmployeeResponse, error) {
	slog.Info("Processing get_employee request", "id", req.EmployeeID)

	response := tools.GetEmployeeResponse{
		Status: "success",
	}

	start := time.Now()
	emp, err := s.store.Get(req.EmployeeID)
	s.metrics.RecordTimer(telemetry.MetricStoreOpLatencyGet, time.Since(start))
	if err != nil {
		s.metrics.IncrementCounter(telemetry.MetricStoreOpsFailure, 1)
		response.Status = "error"
		if errors.Is(err, recordstore.ErrNotFound) {
			response.Error = notFoundMessage(req.EmployeeID)
			slog.Warn("Employee not found for get_employee", "id", req.EmployeeID)
			return response, nil
		}

		err = errortypes.DatabaseError(err, "failed to get employee").
			WithField("employee_id", req.EmployeeID)
		errortypes.LogError(nil, err)
		response.Error = err.Error()
		return response, nil
	}

	s.metrics.IncrementCounter(telemetry.MetricStoreOpsGet, 1)
	response.Employee = &emp
	slog.Info("Successfully retrieved employee", "id", emp.ID)

	return response, nil
}

// handleUpdateEmployee handles the update_employee MCP tool call.
func (s *MCPEmployeeToolServer) handleUpdateEmployee(ctx *server.Context, req tools.UpdateEmployeeRequest) (tools.UpdateEmployeeResponse, error) {
	slog.Info("Processing update_employee request", "id", req.EmployeeID)

	response := tools.UpdateEmployeeResponse{
		Status: "success",
	}

	start := time.Now()
	err := s.store.Update(req.EmployeeID, req.Name, req.JobRole, req.Department, req.Salary)
	s.metrics.RecordTimer(telemetry.MetricStoreOpLatencyUpdate, time.Since(start))
	if err != nil {
		s.metrics.IncrementCounter(telemetry.MetricStoreOpsFailure, 1)
		response.Status = "error"
		if errors.Is(err, recordstore.ErrNotFound) {
			response.Error = notFoundMessage(req.EmployeeID)
			slog.Warn("Employee not found for update_employee", "id", req.EmployeeID)
			return response, nil
		}

		if errors.Is(err, recordstore.ErrInvalidRecord) {
			err = errortypes.ValidationError(err, "invalid update_employee request").
				WithField("employee_id", req.EmployeeID)
		} else {
			err = errortypes.DatabaseError(err, "failed to update employee").
				WithField("employee_id", req.EmployeeID)
		}
		errortypes.LogError(nil, err)
		response.Error = err.Error()
		return response, nil
	}

	s.metrics.IncrementCounter(telemetry.MetricStoreOpsUpdate, 1)
	response.Message = fmt.Sprintf("Employee %d updated successfully.", req.EmployeeID)
	slog.Info("Successfully updated employee", "id", req.EmployeeID)

	return response, nil
}

// handleDeleteEmployee handles the delete_employee MCP tool call.
func (s *MCPEmployeeToolServer) handleDeleteEmployee(ctx *server.Context, req tools.DeleteEmployeeRequest) (tools.DeleteEmployeeResponse, error) {
	slog.Info("Processing delete_employee request", "id", req.EmployeeID)

	response := tools.DeleteEmployeeResponse{
		Status: "success",
	}

	start := time.Now()
	err := s.store.Delete(req.EmployeeID)
	s.metrics.RecordTimer(telemetry.MetricStoreOpLatencyDelete, time.Since(start))
	if err != nil {
		s.metrics.IncrementCounter(telemetry.MetricStoreOpsFailure, 1)
		response.Status = "error"
		if errors.Is(err, recordstore.ErrNotFound) {
			response.Error = notFoundMessage(req.EmployeeID)
			slog.Warn("Employee not found for delete_employee", "id", req.EmployeeID)
			return response, nil
		}

		err = errortypes.DatabaseError(err, "failed to delete employee").
			WithField("employee_id", req.EmployeeID)
		errortypes.LogError(nil, err)
		response.Error = err.Error()
		return response, nil
	}

	s.metrics.IncrementCounter(telemetry.MetricStoreOpsDelete, 1)
	s.refreshRecordCount()
	response.Message = fmt.Sprintf("Employee %d deleted successfully.", req.EmployeeID)
	slog.Info("Successfully deleted employee", "id", req.EmployeeID)

	return response, nil
}

// handleListEmployees handles the list_employees MCP tool call.
func (s *MCPEmployeeToolServer) handleListEmployees(ctx *server.Context, req tools.ListEmployeesRequest) (tools.ListEmployeesResponse, error) {
	slog.Info("Processing list_employees request")

	response := tools.ListEmployeesResponse{
		Status: "success",
	}

	start := time.Now()
	employees, err := s.store.List()
	s.metrics.RecordTimer(telemetry.MetricStoreOpLatencyList, time.Since(start))
	if err != nil {
		s.metrics.IncrementCounter(telemetry.MetricStoreOpsFailure, 1)
		err = errortypes.DatabaseError(err, "failed to list employees")
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	s.metrics.IncrementCounter(telemetry.MetricStoreOpsList, 1)
	s.metrics.SetGauge(telemetry.MetricStoreRecordCount, float64(len(employees)))
	response.Employees = employees
	slog.Info("Successfully listed employees", "count", len(employees))

	return response, nil
}

// handleEmployeeIDs handles reads of the employees://ids MCP resource.
func (s *MCPEmployeeToolServer) handleEmployeeIDs(ctx *server.Context, args *tools.EmployeeIDsArgs) (string, error) {
	slog.Info("Processing employee IDs resource request")

	ids, err := s.store.ListIDs()
	if err != nil {
		s.metrics.IncrementCounter(telemetry.MetricStoreOpsFailure, 1)
		err = errortypes.DatabaseError(err, "failed to list employee IDs")
		errortypes.LogError(nil, err)
		return "", err
	}

	s.metrics.IncrementCounter(telemetry.MetricStoreOpsList, 1)
	return FormatEmployeeIDs(ids), nil
}

// FormatEmployeeIDs renders the employee IDs resource text, e.g.
// "Available Employee IDs: [1, 2, 3]".
func FormatEmployeeIDs(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	return "Available Employee IDs: [" + strings.Join(parts, ", ") + "]"
}
