package database

import (
	"context"

	"github.com/jo-hoe/fundusref/internal/reference"
)

// DatabaseService mirrors the compiled reference dataset into a backend.
// After SeedDiseases has run, only read methods are used.
type DatabaseService interface {
	CreateDatabase(ctx context.Context) error
	DoesDatabaseExist(ctx context.Context) bool
	Close() error

	// SeedDiseases writes the given diseases, replacing any previous copy, in one transaction.
	SeedDiseases(ctx context.Context, diseases []*reference.Disease) error
	// GetDisease returns one disease with its records in display order.
	// An unknown id yields an error wrapping common.ErrUnknownSelection.
	GetDisease(ctx context.Context, id reference.DiseaseID) (*reference.Disease, error)
	// GetDiseases returns every disease in navigation order.
	GetDiseases(ctx context.Context) ([]*reference.Disease, error)
}
