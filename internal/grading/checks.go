package grading

import (
	"math"
)

// SuspiciousCDRAsymmetry is the inter-eye CDR difference above which a case is suspicious.
const SuspiciousCDRAsymmetry = 0.2

// CDRComparison summarizes the glaucoma checks that need both eyes.
type CDRComparison struct {
	Left       float64 `json:"left"`
	Right      float64 `json:"right"`
	Asymmetry  float64 `json:"asymmetry"`
	Suspicious bool    `json:"suspicious"`
	// BothElevated holds when both eyes exceed the abnormal CDR threshold,
	// the precondition for a definitive diagnosis.
	BothElevated bool `json:"bothElevated"`
}

// CompareCDR applies the inter-eye checks to vertical CDRs of both eyes.
func CompareCDR(left, right float64) (CDRComparison, error) {
	for _, v := range []float64{left, right} {
		if err := checkMeasurement(v, ratioDomain); err != nil {
			return CDRComparison{}, err
		}
	}
	asymmetry := math.Abs(left - right)
	return CDRComparison{
		Left:         left,
		Right:        right,
		Asymmetry:    asymmetry,
		Suspicious:   asymmetry > SuspiciousCDRAsymmetry,
		BothElevated: left > 0.6 && right > 0.6,
	}, nil
}

// DrusenSize is the size class of a druse.
type DrusenSize string

const (
	DrusenSmall        DrusenSize = "small"
	DrusenIntermediate DrusenSize = "intermediate"
	DrusenLarge        DrusenSize = "large"
)

// ClassifyDrusen maps a diameter in µm to its size class.
func ClassifyDrusen(diameter float64) DrusenSize {
	switch {
	case diameter < 63:
		return DrusenSmall
	case diameter < 125:
		return DrusenIntermediate
	default:
		return DrusenLarge
	}
}

// AMDStage is the coarse AMD stage from the logics and checks.
type AMDStage string

const (
	AMDNone         AMDStage = "none"
	AMDEarly        AMDStage = "early"
	AMDIntermediate AMDStage = "intermediate"
	AMDAdvanced     AMDStage = "advanced"
)

// AMDFindings are the grader's observations used for staging.
type AMDFindings struct {
	LargestDrusenMicrons        float64 `json:"largestDrusenMicrons"`
	PigmentaryChanges           bool    `json:"pigmentaryChanges"`
	GeographicAtrophy           bool    `json:"geographicAtrophy"`
	ChoroidalNeovascularization bool    `json:"choroidalNeovascularization"`
}

// StageAMD stages AMD: advanced on geographic atrophy or CNV, intermediate on
// large drusen or pigmentary changes, early on medium drusen.
func StageAMD(f AMDFindings) AMDStage {
	switch {
	case f.GeographicAtrophy || f.ChoroidalNeovascularization:
		return AMDAdvanced
	case f.PigmentaryChanges || ClassifyDrusen(f.LargestDrusenMicrons) == DrusenLarge:
		return AMDIntermediate
	case ClassifyDrusen(f.LargestDrusenMicrons) == DrusenIntermediate:
		return AMDEarly
	default:
		return AMDNone
	}
}
