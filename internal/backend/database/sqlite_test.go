package database

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/jo-hoe/fundusref/internal/common"
	"github.com/jo-hoe/fundusref/internal/reference"
)

func newTestDB(t *testing.T) DatabaseService {
	t.Helper()

	ds, err := NewSQLiteDatabase(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteDatabase error: %v", err)
	}
	t.Cleanup(func() { _ = ds.Close() })

	ctx := context.Background()
	if err := ds.CreateDatabase(ctx); err != nil {
		t.Fatalf("CreateDatabase error: %v", err)
	}
	if err := ds.SeedDiseases(ctx, reference.Diseases()); err != nil {
		t.Fatalf("SeedDiseases error: %v", err)
	}
	return ds
}

// assertMatchesDataset checks that a store returns exactly the compiled reference content.
func assertMatchesDataset(t *testing.T, ds DatabaseService) {
	t.Helper()
	ctx := context.Background()

	for _, id := range reference.IDs() {
		want, err := reference.Lookup(id)
		if err != nil {
			t.Fatalf("Lookup(%s) error: %v", id, err)
		}
		got, err := ds.GetDisease(ctx, id)
		if err != nil {
			t.Fatalf("GetDisease(%s) error: %v", id, err)
		}
		if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("GetDisease(%s) mismatch (-want +got):\n%s", id, diff)
		}
	}

	all, err := ds.GetDiseases(ctx)
	if err != nil {
		t.Fatalf("GetDiseases error: %v", err)
	}
	var gotIDs []reference.DiseaseID
	for _, d := range all {
		gotIDs = append(gotIDs, d.ID)
	}
	if diff := cmp.Diff(reference.IDs(), gotIDs); diff != "" {
		t.Errorf("GetDiseases order mismatch (-want +got):\n%s", diff)
	}

	if _, err := ds.GetDisease(ctx, "keratoconus"); !errors.Is(err, common.ErrUnknownSelection) {
		t.Errorf("expected ErrUnknownSelection, got %v", err)
	}
}

func TestSQLite_DoesDatabaseExist(t *testing.T) {
	ctx := context.Background()
	ds, err := NewSQLiteDatabase(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteDatabase error: %v", err)
	}
	t.Cleanup(func() { _ = ds.Close() })

	if ds.DoesDatabaseExist(ctx) {
		t.Error("expected DoesDatabaseExist to be false before the schema exists")
	}
	if err := ds.CreateDatabase(ctx); err != nil {
		t.Fatalf("CreateDatabase error: %v", err)
	}
	if ds.DoesDatabaseExist(ctx) {
		t.Error("expected DoesDatabaseExist to be false for an empty schema")
	}
	if err := ds.SeedDiseases(ctx, reference.Diseases()); err != nil {
		t.Fatalf("SeedDiseases error: %v", err)
	}
	if !ds.DoesDatabaseExist(ctx) {
		t.Error("expected DoesDatabaseExist to be true after seeding")
	}
}

func TestSQLite_MatchesDataset(t *testing.T) {
	assertMatchesDataset(t, newTestDB(t))
}

func TestSQLite_SeedIsIdempotent(t *testing.T) {
	ds := newTestDB(t)
	ctx := context.Background()

	if err := ds.CreateDatabase(ctx); err != nil {
		t.Fatalf("second CreateDatabase error: %v", err)
	}
	if err := ds.SeedDiseases(ctx, reference.Diseases()); err != nil {
		t.Fatalf("second SeedDiseases error: %v", err)
	}
	assertMatchesDataset(t, ds)
}

func TestSQLite_ReseedReplacesContent(t *testing.T) {
	ds := newTestDB(t)
	ctx := context.Background()

	subset := reference.Diseases()[:1]
	if err := ds.SeedDiseases(ctx, subset); err != nil {
		t.Fatalf("SeedDiseases error: %v", err)
	}
	all, err := ds.GetDiseases(ctx)
	if err != nil {
		t.Fatalf("GetDiseases error: %v", err)
	}
	if len(all) != 1 || all[0].ID != subset[0].ID {
		t.Fatalf("expected only %s after reseed, got %d diseases", subset[0].ID, len(all))
	}
}
