package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jo-hoe/fundusref/internal/reference"
)

const (
	TypeMemory = "memory"
	TypeSQLite = "sqlite"
	TypeRedis  = "redis"
)

// NewDatabase opens the configured backend, ensures its schema and seeds it
// with the compiled reference dataset.
func NewDatabase(ctx context.Context, databaseType, connectionString string) (database DatabaseService, err error) {
	switch databaseType {
	case TypeMemory, "":
		database = NewMemoryDatabase()
	case TypeSQLite:
		database, err = NewSQLiteDatabase(connectionString)
	case TypeRedis:
		database, err = NewRedisDatabase(connectionString)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", databaseType)
	}
	if err != nil {
		return nil, err
	}

	// Ensure database schema exists (idempotent), important for in-memory SQLite
	slog.Info("initializing reference store schema", "type", databaseType)
	if err = database.CreateDatabase(ctx); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to create database: %w", err)
	}

	if database.DoesDatabaseExist(ctx) {
		slog.Info("reference store already populated, reseeding", "type", databaseType)
	}
	diseases := reference.Diseases()
	if err = database.SeedDiseases(ctx, diseases); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to seed reference data: %w", err)
	}
	if !database.DoesDatabaseExist(ctx) {
		_ = database.Close()
		return nil, fmt.Errorf("reference store not ready after seeding")
	}
	slog.Info("reference store seeded", "type", databaseType, "diseases", len(diseases))

	return database, nil
}
