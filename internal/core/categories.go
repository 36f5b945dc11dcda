package core

import (
	"fmt"
	"strings"

	"github.com/jo-hoe/fundusref/internal/backend/commands"
	"github.com/jo-hoe/fundusref/internal/common"
)

// CategoryID is the stable slug of an analysis category.
type CategoryID string

const (
	CategoryOpticDisc           CategoryID = "optic-disc"
	CategoryVascular            CategoryID = "vascular"
	CategoryMacular             CategoryID = "macular"
	CategoryPeripheralRetina    CategoryID = "peripheral-retina"
	CategoryRPE                 CategoryID = "rpe"
	CategoryDiabeticRetinopathy CategoryID = "diabetic-retinopathy"
	CategoryAMD                 CategoryID = "amd"
	CategoryGlaucoma            CategoryID = "glaucoma"
	CategoryOther               CategoryID = "other"
)

// OverlaySpec binds a nominal detector to the caption shown under its mask.
type OverlaySpec struct {
	Detector string `json:"detector"`
	Caption  string `json:"caption"`
}

// Category describes what one selectable analysis category produces.
type Category struct {
	ID        CategoryID    `json:"id"`
	Label     string        `json:"label"`
	Title     string        `json:"title"`
	Overlays  []OverlaySpec `json:"overlays,omitempty"`
	OpticDisc bool          `json:"opticDisc,omitempty"`
	Note      string        `json:"note,omitempty"`
}

// categories is kept in display order; sections always follow it.
var categories = []Category{
	{
		ID:        CategoryOpticDisc,
		Label:     "Optic Disc Parameters",
		Title:     "Optic Disc Parameters",
		OpticDisc: true,
	},
	{
		ID:       CategoryVascular,
		Label:    "Vascular Parameters",
		Title:    "Vascular Parameters",
		Overlays: []OverlaySpec{{commands.DetectorBloodVessels, "Extracted Blood Vessels"}},
	},
	{
		ID:    CategoryMacular,
		Label: "Macular Parameters",
		Title: "Macular Parameters",
		Overlays: []OverlaySpec{
			{commands.DetectorDrusen, "Detected Drusen"},
			{commands.DetectorGeographicAtrophy, "Geographic Atrophy"},
		},
	},
	{
		ID:       CategoryPeripheralRetina,
		Label:    "Peripheral Retina Parameters",
		Title:    "Peripheral Retina Parameters",
		Overlays: []OverlaySpec{{commands.DetectorRetinalTears, "Detected Retinal Tears"}},
	},
	{
		ID:    CategoryRPE,
		Label: "RPE Parameters",
		Title: "RPE Parameters",
		Note:  "No automated analysis is available for RPE parameters.",
	},
	{
		ID:    CategoryDiabeticRetinopathy,
		Label: "Diabetic Retinopathy Features",
		Title: "Diabetic Retinopathy Features",
		Overlays: []OverlaySpec{
			{commands.DetectorMicroaneurysms, "Detected Microaneurysms"},
			{commands.DetectorNeovascularization, "Neovascularization"},
		},
	},
	{
		ID:       CategoryAMD,
		Label:    "AMD Features",
		Title:    "Age-Related Macular Degeneration (AMD) Features",
		Overlays: []OverlaySpec{{commands.DetectorDrusen, "Drusen Detection"}},
	},
	{
		ID:    CategoryGlaucoma,
		Label: "Glaucoma-Related Features",
		Title: "Glaucoma-Related Features",
		Note:  "Placeholder for glaucoma-related features.",
	},
	{
		ID:    CategoryOther,
		Label: "Other Quantifiable Parameters",
		Title: "Other Quantifiable Parameters",
		// hemorrhages reuse the microaneurysm routine
		Overlays: []OverlaySpec{{commands.DetectorMicroaneurysms, "Retinal Hemorrhages"}},
	},
}

// Categories returns every analysis category in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	for i, c := range categories {
		c.Overlays = append([]OverlaySpec(nil), c.Overlays...)
		out[i] = c
	}
	return out
}

// ParseCategory resolves a slug or display label (case-insensitive).
func ParseCategory(s string) (CategoryID, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, c := range categories {
		if needle == string(c.ID) || needle == strings.ToLower(c.Label) {
			return c.ID, nil
		}
	}
	return "", fmt.Errorf("%w: category %q", common.ErrUnknownSelection, s)
}

// resolveCategories validates every selection and returns the selected
// categories once each, in display order. Any unknown value fails the whole selection.
func resolveCategories(selected []string) ([]Category, error) {
	chosen := make(map[CategoryID]bool, len(selected))
	for _, s := range selected {
		id, err := ParseCategory(s)
		if err != nil {
			return nil, err
		}
		chosen[id] = true
	}

	resolved := make([]Category, 0, len(chosen))
	for _, c := range categories {
		if chosen[c.ID] {
			resolved = append(resolved, c)
		}
	}
	return resolved, nil
}
