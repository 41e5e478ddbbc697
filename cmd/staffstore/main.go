package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/localrivet/staffstore/internal/config"
	"github.com/localrivet/staffstore/internal/logger"
	"github.com/localrivet/staffstore/internal/recordstore"
	"github.com/localrivet/staffstore/internal/server"
)

func main() {
	// Initialize logging first thing
	appLogger := setupLogging()

	appLogger.Info("staffstore MCP Server - Starting...")

	// Load a local .env file if present so STAFFSTORE_* variables can be
	// supplied without exporting them.
	if err := godotenv.Load(); err == nil {
		appLogger.Info("Loaded environment from .env file")
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.LogError(err)
		appLogger.Fatal("Failed to load configuration")
	}

	// Configure logging based on config
	if cfg.Logging.Level != "" {
		appLogger.SetLevel(logger.ParseLevel(cfg.Logging.Level))
		appLogger.Info("Log level set to %s", cfg.Logging.Level)
	}

	if cfg.Logging.Format == "json" {
		appLogger.SetFormat(logger.JSON)
		appLogger.Info("Log format set to JSON")
	}

	// Resolve the backing data path. Environment probing lives here, not in
	// the store: the store receives an explicit path.
	if cfg.Store.Path == "" || cfg.Store.Path == config.DefaultDataFilename {
		cfg.Store.Path = resolveDataPath(appLogger)
	}

	// Initialize the record store
	var store recordstore.RecordStore
	switch cfg.Store.Driver {
	case "sqlite":
		store = recordstore.NewSQLiteStore()
	default:
		store = recordstore.NewJSONFileStoreWithOptions(recordstore.JSONFileStoreOptions{
			RecoverCorrupt: cfg.Store.RecoverCorrupt,
		})
	}
	storeLogger := appLogger.WithContext("store")

	err = store.Initialize(cfg.Store.Path)
	if err != nil {
		err = logger.DatabaseError(err, "Failed to initialize record store")
		logger.LogError(err)
		appLogger.Fatal("Failed to initialize record store")
	}
	defer store.Close()
	storeLogger.Info("Record store initialized at %s", cfg.Store.Path)

	// Initialize the MCP server
	srv := server.NewEmployeeToolServer(store)
	srvLogger := appLogger.WithContext("server")

	err = srv.Initialize()
	if err != nil {
		err = logger.ConfigError(err, "Failed to initialize MCP server")
		logger.LogError(err)
		appLogger.Fatal("Failed to initialize MCP server")
	}
	srvLogger.Info("MCP server initialized")

	// Handle graceful shutdown
	setupSignalHandler(store, appLogger)

	// Start the MCP server (this will block until server is terminated)
	srvLogger.Info("Starting MCP server...")
	if err := srv.Start(); err != nil {
		err = logger.APIError(err, "MCP server failed")
		logger.LogError(err)
		appLogger.Fatal("Failed to start MCP server")
	}
}

// setupLogging configures and returns the application logger
func setupLogging() *logger.Logger {
	// Create default configuration
	config := logger.DefaultConfig()

	// Try to get log level from environment variable
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		config.Level = logger.ParseLevel(levelStr)
	}

	// Create and return logger
	appLogger := logger.New(config)
	logger.SetDefaultLogger(appLogger)

	return appLogger
}

// resolveDataPath picks the backing file location: an explicit
// STAFFSTORE_DATA_PATH wins, then a directory under the user's home, then the
// shared temp directory when the home directory is unavailable.
func resolveDataPath(log *logger.Logger) string {
	if path := os.Getenv("STAFFSTORE_DATA_PATH"); path != "" {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		fallback := filepath.Join(os.TempDir(), "staffstore", config.DefaultDataFilename)
		log.Warn("Home directory unavailable, falling back to %s", fallback)
		return fallback
	}

	return filepath.Join(home, ".staffstore", config.DefaultDataFilename)
}

// setupSignalHandler sets up a signal handler for graceful shutdown.
func setupSignalHandler(store recordstore.RecordStore, log *logger.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Received shutdown signal, terminating gracefully...")

		// Close the store to ensure all data is saved
		if err := store.Close(); err != nil {
			err = logger.DatabaseError(err, "Error closing store during shutdown")
			logger.LogError(err)
		} else {
			log.Info("Store closed successfully")
		}

		log.Info("Shutdown complete")
		os.Exit(0)
	}()
}
