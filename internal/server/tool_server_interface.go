// Package server provides the MCP server implementation for the staffstore service.
package server

// EmployeeToolServer defines the interface for the MCP server that handles
// employee-record tool calls from MCP clients.
type EmployeeToolServer interface {
	// Initialize initializes the server with dependencies and configurations.
	Initialize() error

	// Start starts the MCP server on the specified transport.
	Start() error

	// Stop gracefully shuts down the MCP server.
	Stop() error
}
