package core

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jo-hoe/fundusref/internal/backend/commands"
	"github.com/jo-hoe/fundusref/internal/common"
)

func TestCategories_FixedOrder(t *testing.T) {
	want := []CategoryID{
		CategoryOpticDisc, CategoryVascular, CategoryMacular, CategoryPeripheralRetina, CategoryRPE,
		CategoryDiabeticRetinopathy, CategoryAMD, CategoryGlaucoma, CategoryOther,
	}
	var got []CategoryID
	for _, c := range Categories() {
		got = append(got, c.ID)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("category order mismatch (-want +got):\n%s", diff)
	}
}

func TestCategories_OverlaysUseKnownDetectors(t *testing.T) {
	set, err := commands.NewDefaultDetectorSet()
	if err != nil {
		t.Fatalf("NewDefaultDetectorSet error: %v", err)
	}
	for _, c := range Categories() {
		if len(c.Overlays) == 0 && !c.OpticDisc && c.Note == "" {
			t.Errorf("category %s produces nothing", c.ID)
		}
		for _, o := range c.Overlays {
			if _, err := set.Get(o.Detector); err != nil {
				t.Errorf("category %s: %v", c.ID, err)
			}
		}
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want CategoryID
	}{
		{"vascular", CategoryVascular},
		{"  AMD ", CategoryAMD},
		{"Glaucoma-Related Features", CategoryGlaucoma},
		{"other quantifiable parameters", CategoryOther},
	}
	for _, tt := range tests {
		got, err := ParseCategory(tt.in)
		if err != nil {
			t.Fatalf("ParseCategory(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseCategory(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	if _, err := ParseCategory("choroid"); !errors.Is(err, common.ErrUnknownSelection) {
		t.Errorf("expected ErrUnknownSelection, got %v", err)
	}
}

func TestResolveCategories_DedupesInDisplayOrder(t *testing.T) {
	resolved, err := resolveCategories([]string{"other", "vascular", "Vascular Parameters", "optic-disc"})
	if err != nil {
		t.Fatalf("resolveCategories error: %v", err)
	}
	var got []CategoryID
	for _, c := range resolved {
		got = append(got, c.ID)
	}
	want := []CategoryID{CategoryOpticDisc, CategoryVascular, CategoryOther}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolved categories mismatch (-want +got):\n%s", diff)
	}
}

func TestCategories_ReturnsCopies(t *testing.T) {
	first := Categories()
	first[2].Overlays[0].Caption = "changed"
	if Categories()[2].Overlays[0].Caption == "changed" {
		t.Error("mutating a returned category changed the fixed table")
	}
}
