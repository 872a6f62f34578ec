package config

import (
	"context"
	"fmt"
	"os"

	"timelog/internal/repository"
	"timelog/internal/repository/buntdb"
	"timelog/internal/repository/sqlite"
)

// CreateRepository opens the storage backend selected by the configuration,
// creating the database directory when needed.
func CreateRepository(ctx context.Context, config *Config) (repository.Repository, error) {
	if err := os.MkdirAll(config.Database.Dir, os.FileMode(config.Database.DirPermissions)); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dbPath := config.GetDatabasePath()

	switch config.Database.Driver {
	case DriverBuntDB:
		repo, err := buntdb.Open(dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return repo, nil
	case DriverSQLite:
		repo, err := sqlite.NewWithOptions(ctx, dbPath, sqlite.Options{
			QueryTimeout: config.GetQueryTimeout(),
			WriteTimeout: config.GetWriteTimeout(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return repo, nil
	default:
		return nil, &ConfigError{Field: "database.driver", Message: fmt.Sprintf("unknown driver %q", config.Database.Driver)}
	}
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository(ctx context.Context) (repository.Repository, error) {
	repo, err := sqlite.New(ctx, ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}
	return repo, nil
}
