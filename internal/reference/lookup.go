package reference

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jo-hoe/fundusref/internal/common"
)

var byID map[DiseaseID]*Disease

// Lookup returns the reference content for the given disease.
// The returned value is a copy and may be modified by the caller.
func Lookup(id DiseaseID) (*Disease, error) {
	d, ok := byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: disease %q", common.ErrUnknownSelection, id)
	}
	return d.clone(), nil
}

// Parameters returns the ordered threshold records for the given disease.
func Parameters(id DiseaseID) ([]ParameterRecord, error) {
	d, ok := byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: disease %q", common.ErrUnknownSelection, id)
	}
	return slices.Clone(d.Parameters), nil
}

// Diseases returns every disease in navigation order.
func Diseases() []*Disease {
	out := make([]*Disease, 0, len(diseases))
	for i := range diseases {
		out = append(out, diseases[i].clone())
	}
	return out
}

// IDs returns the identifiers of the fixed disease set in navigation order.
func IDs() []DiseaseID {
	ids := make([]DiseaseID, 0, len(diseases))
	for _, d := range diseases {
		ids = append(ids, d.ID)
	}
	return ids
}

// ParseDiseaseID resolves a slug, display name or page title (case-insensitive).
func ParseDiseaseID(s string) (DiseaseID, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, d := range diseases {
		if needle == string(d.ID) ||
			needle == strings.ToLower(d.Name) ||
			needle == strings.ToLower(d.Title) {
			return d.ID, nil
		}
	}
	return "", fmt.Errorf("%w: disease %q", common.ErrUnknownSelection, s)
}

// TestGuide returns when OCT, FA and OCTA are recommended, per disease.
func TestGuide() []TestIndicationGroup {
	out := make([]TestIndicationGroup, len(testGuide))
	for i, g := range testGuide {
		g.Indications = slices.Clone(g.Indications)
		out[i] = g
	}
	return out
}

// Sources lists the publications the reference content is drawn from.
func Sources() []string {
	return slices.Clone(sources)
}

func (d *Disease) clone() *Disease {
	c := *d
	c.Features = slices.Clone(d.Features)
	c.Parameters = slices.Clone(d.Parameters)
	c.AdditionalTests = slices.Clone(d.AdditionalTests)
	c.Checks = slices.Clone(d.Checks)
	return &c
}
