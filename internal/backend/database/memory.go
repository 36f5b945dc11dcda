package database

import (
	"context"

	"github.com/jo-hoe/fundusref/internal/reference"
)

// MemoryDatabase serves lookups straight from the compiled dataset.
type MemoryDatabase struct{}

func NewMemoryDatabase() DatabaseService {
	return &MemoryDatabase{}
}

func (m *MemoryDatabase) CreateDatabase(context.Context) error { return nil }

func (m *MemoryDatabase) DoesDatabaseExist(context.Context) bool { return true }

func (m *MemoryDatabase) Close() error { return nil }

// SeedDiseases is a no-op: the compiled dataset is the store.
func (m *MemoryDatabase) SeedDiseases(context.Context, []*reference.Disease) error { return nil }

func (m *MemoryDatabase) GetDisease(_ context.Context, id reference.DiseaseID) (*reference.Disease, error) {
	return reference.Lookup(id)
}

func (m *MemoryDatabase) GetDiseases(context.Context) ([]*reference.Disease, error) {
	return reference.Diseases(), nil
}
