// Package grading is an opt-in aid for graders. It evaluates measurements they
// supply against the few numeric criteria stated in the reference tables.
// It is not part of the reference content: decision notes stay display text,
// and nothing here inspects images or changes the reference records.
package grading

import (
	"errors"
	"fmt"
	"math"

	"github.com/jo-hoe/fundusref/internal/common"
	"github.com/jo-hoe/fundusref/internal/reference"
)

var (
	// ErrNotMeasurable is returned for features that require visual assessment.
	ErrNotMeasurable = errors.New("feature has no numeric criterion")
	// ErrInvalidMeasurement is returned for values outside a criterion's domain.
	ErrInvalidMeasurement = errors.New("invalid measurement")
)

// Status is the outcome of comparing a measurement with its criterion.
type Status string

const (
	StatusNormal     Status = "normal"
	StatusBorderline Status = "borderline"
	StatusAbnormal   Status = "abnormal"
)

// Finding is the result of one evaluation.
type Finding struct {
	Disease reference.DiseaseID `json:"disease"`
	Feature string              `json:"feature"`
	Value   float64             `json:"value"`
	Unit    string              `json:"unit,omitempty"`
	Status  Status              `json:"status"`
	Detail  string              `json:"detail,omitempty"`
}

type criterion struct {
	unit string
	// domain rejects values the unit cannot take; nil accepts any non-negative value
	domain   func(v float64) error
	classify func(v float64) (Status, string)
}

func countDomain(v float64) error {
	if v != math.Trunc(v) {
		return fmt.Errorf("%w: count must be a whole number, got %v", ErrInvalidMeasurement, v)
	}
	return nil
}

func ratioDomain(v float64) error {
	if v > 1 {
		return fmt.Errorf("%w: cup-to-disc ratio must be between 0 and 1, got %v", ErrInvalidMeasurement, v)
	}
	return nil
}

func positiveDomain(v float64) error {
	if v == 0 {
		return fmt.Errorf("%w: ratio must be positive, got %v", ErrInvalidMeasurement, v)
	}
	return nil
}

func checkMeasurement(v float64, domain func(float64) error) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%w: must be a finite non-negative number, got %v", ErrInvalidMeasurement, v)
	}
	if domain != nil {
		return domain(v)
	}
	return nil
}

type criterionKey struct {
	disease reference.DiseaseID
	feature string
}

var criteria = map[criterionKey]criterion{
	{reference.DiabeticRetinopathy, "Microaneurysms"}: {
		unit:   "count per field",
		domain: countDomain,
		classify: func(v float64) (Status, string) {
			switch {
			case v >= 5:
				return StatusAbnormal, "≥ 5 in one field"
			case v == 0:
				return StatusNormal, "no microaneurysms"
			default:
				return StatusBorderline, "present but below 5 in the field"
			}
		},
	},
	{reference.DiabeticRetinopathy, "Hemorrhages"}: {
		unit:   "count per field",
		domain: countDomain,
		classify: func(v float64) (Status, string) {
			switch {
			case v > 5:
				return StatusAbnormal, "> 5 dot/blot hemorrhages in one field"
			case v == 0:
				return StatusNormal, "none"
			default:
				return StatusBorderline, "present but not above 5 in the field"
			}
		},
	},
	{reference.DiabeticRetinopathy, "Hard Exudates"}: {
		unit: "µm from fovea",
		classify: func(v float64) (Status, string) {
			if v <= 500 {
				return StatusAbnormal, "within 500 µm of fovea"
			}
			return StatusNormal, "outside 500 µm of fovea"
		},
	},
	{reference.Glaucoma, "Cup-to-Disc Ratio"}: {
		unit:   "vertical ratio",
		domain: ratioDomain,
		classify: func(v float64) (Status, string) {
			switch {
			case v > 0.6:
				return StatusAbnormal, "> 0.6"
			case v < 0.3:
				return StatusNormal, "< 0.3"
			default:
				return StatusBorderline, "between 0.3 and 0.6"
			}
		},
	},
	{reference.HypertensiveRetinopathy, "Arteriolar Narrowing"}: {
		unit:   "AVR",
		domain: positiveDomain,
		classify: func(v float64) (Status, string) {
			switch {
			case v < 0.6:
				return StatusAbnormal, "AVR < 0.6"
			case v <= 0.8:
				return StatusNormal, "AVR 0.6–0.8"
			default:
				return StatusBorderline, "AVR above the 0.6–0.8 reference range"
			}
		},
	},
	{reference.RetinopathyOfPrematurity, "Plus Disease"}: {
		unit: "tortuosity score",
		classify: func(v float64) (Status, string) {
			if v > 2 {
				return StatusAbnormal, "tortuosity score > 2"
			}
			return StatusNormal, "tortuosity score ≤ 2"
		},
	},
	{reference.AgeRelatedMacularDegeneration, "Drusen"}: {
		unit: "µm diameter",
		classify: func(v float64) (Status, string) {
			size := ClassifyDrusen(v)
			if size == DrusenSmall {
				return StatusNormal, string(size)
			}
			return StatusAbnormal, string(size)
		},
	},
}

// Evaluate compares value with the criterion of the given disease feature.
func Evaluate(disease reference.DiseaseID, feature string, value float64) (Finding, error) {
	records, err := reference.Parameters(disease)
	if err != nil {
		return Finding{}, err
	}
	known := false
	for _, r := range records {
		if r.FeatureName == feature {
			known = true
			break
		}
	}
	if !known {
		return Finding{}, fmt.Errorf("%w: feature %q of %s", common.ErrUnknownSelection, feature, disease)
	}
	c, ok := criteria[criterionKey{disease, feature}]
	if !ok {
		if err := checkMeasurement(value, nil); err != nil {
			return Finding{}, err
		}
		return Finding{}, fmt.Errorf("%w: %s requires visual assessment", ErrNotMeasurable, feature)
	}
	if err := checkMeasurement(value, c.domain); err != nil {
		return Finding{}, err
	}
	status, detail := c.classify(value)
	return Finding{
		Disease: disease,
		Feature: feature,
		Value:   value,
		Unit:    c.unit,
		Status:  status,
		Detail:  detail,
	}, nil
}

// Measurable reports whether Evaluate accepts the given disease feature.
func Measurable(disease reference.DiseaseID, feature string) bool {
	_, ok := criteria[criterionKey{disease, feature}]
	return ok
}
