package staffstore

import (
	"errors"
	"log/slog"

	"github.com/localrivet/staffstore/internal/config"
	"github.com/localrivet/staffstore/internal/errortypes"
	"github.com/localrivet/staffstore/internal/recordstore"
	"github.com/localrivet/staffstore/internal/server"
)

// Config represents the configuration for the staffstore service.
type Config = config.Config

// Employee is a single employee record.
type Employee = recordstore.Employee

// Server represents the staffstore service.
type Server struct {
	config     *config.Config
	store      recordstore.RecordStore
	toolServer server.EmployeeToolServer
	logger     *slog.Logger // Logger for this Server instance
}

// ServerOptions defines the options for creating a new Server.
type ServerOptions struct {
	Config     *Config      // Pre-filled config. If nil, ConfigPath is used.
	ConfigPath string       // Path to config file. Used if Config is nil. If both are empty, DefaultConfig() is used.
	Logger     *slog.Logger // External logger. If nil, slog.Default() is used.
}

// NewServer creates a new staffstore Server with the given options.
// If opts.Config is provided, it will be used directly.
// Otherwise, if opts.ConfigPath is provided, configuration will be loaded from that path.
// If neither is provided, DefaultConfig() will be used.
// If opts.Logger is nil, slog.Default() will be used.
func NewServer(opts ServerOptions) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var cfg *Config
	var err error

	if opts.Config != nil {
		cfg = opts.Config
		logger.Info("Using provided Config object for server initialization")
	} else if opts.ConfigPath != "" {
		logger.Info("Loading configuration for server initialization", "path", opts.ConfigPath)
		cfg, err = config.LoadConfigWithPath(opts.ConfigPath)
		if err != nil {
			logger.Error("Failed to load configuration from path", "path", opts.ConfigPath, "error", err)
			return nil, errortypes.ConfigError(err, "Failed to load configuration from path: "+opts.ConfigPath)
		}
	} else {
		logger.Warn("No Config object or ConfigPath provided, using default configuration for server initialization")
		cfg = DefaultConfig()
	}

	store, err := CreateComponents(cfg, logger)
	if err != nil {
		// CreateComponents already logs the specific error
		logger.Error("Failed to create components during server initialization", "error", err)
		return nil, err
	}

	logger.Info("Initializing employee tool server component")
	mcpServer := server.NewEmployeeToolServer(store)
	err = mcpServer.Initialize() // Note: mcpServer.Initialize still uses global slog internally
	if err != nil {
		logger.Error("Failed to initialize MCP employee tool server component", "error", err)
		return nil, errortypes.ConfigError(err, "Failed to initialize MCP employee tool server component")
	}

	logger.Info("staffstore server successfully initialized")
	return &Server{
		config:     cfg,
		store:      store,
		toolServer: mcpServer,
		logger:     logger,
	}, nil
}

// DefaultConfig returns the default configuration for the staffstore service.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Store.Driver = config.DefaultStoreDriver
	cfg.Store.Path = config.DefaultDataFilename
	cfg.Store.RecoverCorrupt = true
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "text"
	return cfg
}

// Start starts the staffstore service.
func (s *Server) Start() error {
	s.logger.Info("Starting staffstore service")
	return s.toolServer.Start()
}

// Stop stops the staffstore service.
func (s *Server) Stop() error {
	s.logger.Info("Stopping staffstore service")
	err := s.toolServer.Stop()
	if err != nil {
		s.logger.Error("Error stopping tool server", "error", err)
		return err
	}

	// Close the store
	s.logger.Info("Closing store")
	err = s.store.Close()
	if err != nil {
		s.logger.Error("Failed to close store", "error", err)
		return err
	}

	s.logger.Info("staffstore service stopped")
	return nil
}

// AddEmployee validates the given fields and appends a new record to the
// collection, returning the assigned ID.
func (s *Server) AddEmployee(name, jobRole, department string, salary float64) (int, error) {
	s.logger.Debug("Adding employee", "name", name, "department", department)
	id, err := s.store.Create(name, jobRole, department, salary)
	if err != nil {
		s.logger.Error("Failed to add employee", "name", name, "error", err)
		return 0, err
	}

	s.logger.Info("Successfully added employee", "id", id)
	return id, nil
}

// GetEmployee returns the record with the given ID.
func (s *Server) GetEmployee(id int) (Employee, error) {
	s.logger.Debug("Retrieving employee", "id", id)
	emp, err := s.store.Get(id)
	if err != nil {
		s.logger.Error("Failed to retrieve employee", "id", id, "error", err)
		if errors.Is(err, recordstore.ErrNotFound) {
			return Employee{}, errortypes.NotFoundError(err, "employee not found")
		}
		return Employee{}, err
	}

	return emp, nil
}

// UpdateEmployee replaces the mutable fields of the record with the given ID.
func (s *Server) UpdateEmployee(id int, name, jobRole, department string, salary float64) error {
	s.logger.Debug("Updating employee", "id", id)
	if err := s.store.Update(id, name, jobRole, department, salary); err != nil {
		s.logger.Error("Failed to update employee", "id", id, "error", err)
		return err
	}

	s.logger.Info("Successfully updated employee", "id", id)
	return nil
}

// DeleteEmployee removes the record with the given ID.
func (s *Server) DeleteEmployee(id int) error {
	s.logger.Debug("Deleting employee", "id", id)
	if err := s.store.Delete(id); err != nil {
		s.logger.Error("Failed to delete employee", "id", id, "error", err)
		return err
	}

	s.logger.Info("Successfully deleted employee", "id", id)
	return nil
}

// ListEmployees returns the full collection in stored order.
func (s *Server) ListEmployees() ([]Employee, error) {
	employees, err := s.store.List()
	if err != nil {
		s.logger.Error("Failed to list employees", "error", err)
		return nil, err
	}

	s.logger.Debug("Listed employees", "count", len(employees))
	return employees, nil
}

// ListEmployeeIDs returns the IDs of all records in stored order.
func (s *Server) ListEmployeeIDs() ([]int, error) {
	ids, err := s.store.ListIDs()
	if err != nil {
		s.logger.Error("Failed to list employee IDs", "error", err)
		return nil, err
	}

	return ids, nil
}

// GetStore returns the record store instance used by the server.
func (s *Server) GetStore() recordstore.RecordStore {
	return s.store
}

// CreateComponents creates and initializes the record store of the staffstore
// service without creating a server instance. This is useful for callers that
// need direct access to the store.
func CreateComponents(cfg *Config, logger *slog.Logger) (recordstore.RecordStore, error) {
	if logger == nil {
		// This is a public function, so it's safer to have a fallback.
		logger = slog.Default()
		logger.Debug("CreateComponents called with nil logger, defaulting to slog.Default()")
	}

	var store recordstore.RecordStore
	switch cfg.Store.Driver {
	case "sqlite":
		logger.Info("Initializing SQLite record store", "path", cfg.Store.Path)
		store = recordstore.NewSQLiteStore()
	case "jsonfile", "":
		logger.Info("Initializing JSON file record store", "path", cfg.Store.Path,
			"recover_corrupt", cfg.Store.RecoverCorrupt)
		store = recordstore.NewJSONFileStoreWithOptions(recordstore.JSONFileStoreOptions{
			RecoverCorrupt: cfg.Store.RecoverCorrupt,
		})
	default:
		logger.Warn("Unknown store driver, using JSON file store", "driver", cfg.Store.Driver)
		store = recordstore.NewJSONFileStoreWithOptions(recordstore.JSONFileStoreOptions{
			RecoverCorrupt: cfg.Store.RecoverCorrupt,
		})
	}

	if err := store.Initialize(cfg.Store.Path); err != nil {
		logger.Error("Failed to initialize record store", "path", cfg.Store.Path, "error", err)
		return nil, errortypes.DatabaseError(err, "Failed to initialize record store")
	}

	logger.Info("Record store successfully initialized")
	return store, nil
}
