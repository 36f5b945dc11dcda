package reference

// DiseaseID identifies one of the fixed set of ophthalmic conditions.
type DiseaseID string

const (
	DiabeticRetinopathy            DiseaseID = "diabetic-retinopathy"
	Glaucoma                       DiseaseID = "glaucoma"
	AgeRelatedMacularDegeneration  DiseaseID = "amd"
	HypertensiveRetinopathy        DiseaseID = "hypertensive-retinopathy"
	RetinopathyOfPrematurity       DiseaseID = "retinopathy-of-prematurity"
	CentralSerousChorioretinopathy DiseaseID = "cscr"
)

// ParameterRecord is one row of a disease's threshold table.
// All values are opaque text meant for a human grader.
type ParameterRecord struct {
	Disease           DiseaseID `json:"disease"`
	FeatureName       string    `json:"featureName"`
	Label             string    `json:"label,omitempty"` // table label when it differs from FeatureName
	NormalThreshold   string    `json:"normalThreshold"`
	AbnormalThreshold string    `json:"abnormalThreshold"`
	DecisionNote      string    `json:"decisionNote"`
}

// DisplayLabel returns the label shown in the threshold table.
func (r ParameterRecord) DisplayLabel() string {
	if r.Label != "" {
		return r.Label
	}
	return r.FeatureName
}

// Disease is the complete reference page content for one condition.
type Disease struct {
	ID              DiseaseID         `json:"id"`
	Name            string            `json:"name"`
	Title           string            `json:"title"`
	Features        []string          `json:"features"`
	Parameters      []ParameterRecord `json:"parameters"`
	AdditionalTests []string          `json:"additionalTests"`
	Checks          []string          `json:"checks"`
}

// Modality is an imaging test recommended as follow-up.
type Modality string

const (
	OCT  Modality = "OCT"
	FA   Modality = "FA"
	OCTA Modality = "OCTA"
)

// TestIndication states when a modality is recommended for a disease.
type TestIndication struct {
	Modality   Modality `json:"modality"`
	Indication string   `json:"indication"`
}

// TestIndicationGroup collects the indications for one disease.
type TestIndicationGroup struct {
	Disease     DiseaseID        `json:"disease"`
	Name        string           `json:"name"`
	Indications []TestIndication `json:"indications"`
}
