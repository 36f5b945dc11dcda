package reference

// diseases is the compiled-in reference table in navigation order.
// It is never modified after package initialization.
var diseases = []Disease{
	{
		ID:    DiabeticRetinopathy,
		Name:  "Diabetic Retinopathy",
		Title: "Diabetic Retinopathy",
		Features: []string{
			"Microaneurysms",
			"Hemorrhages",
			"Hard Exudates",
			"Cotton Wool Spots",
			"Neovascularization",
			"Venous Beading",
		},
		Parameters: []ParameterRecord{
			{FeatureName: "Microaneurysms", NormalThreshold: "No microaneurysms in any field", AbnormalThreshold: "≥ 5 in one field", DecisionNote: "Count microaneurysms in each field; if > 5 in any field, classify as abnormal."},
			{FeatureName: "Hemorrhages", NormalThreshold: "None", AbnormalThreshold: "> 5 dot/blot hemorrhages in one field", DecisionNote: "Classify and count hemorrhages; if > 5 in any field, classify as abnormal."},
			{FeatureName: "Hard Exudates", NormalThreshold: "None", AbnormalThreshold: "Within 500 µm of fovea", DecisionNote: "Measure distance from fovea; if within 500 µm, classify as abnormal."},
			{FeatureName: "Cotton Wool Spots", NormalThreshold: "None", AbnormalThreshold: "Presence of any", DecisionNote: "Count and document location."},
			{FeatureName: "Neovascularization", NormalThreshold: "Absent", AbnormalThreshold: "Present", DecisionNote: "Identify abnormal vessel growth near disc or elsewhere."},
			{FeatureName: "Venous Beading", NormalThreshold: "Smooth vessels", AbnormalThreshold: "Irregular venous structure", DecisionNote: "Assess tortuosity visually."},
		},
		AdditionalTests: []string{
			"Perform Optical Coherence Tomography (OCT) to measure macular thickness.",
			"Conduct Fluorescein Angiography (FA) to detect neovascularization and leakage.",
		},
		Checks: []string{
			"Both eyes should show signs of diabetic retinopathy for a definitive diagnosis.",
			"Use the International Clinical Diabetic Retinopathy Disease Severity Scale.",
		},
	},
	{
		ID:    Glaucoma,
		Name:  "Glaucoma",
		Title: "Glaucoma",
		Features: []string{
			"Cup-to-Disc Ratio",
			"Neuroretinal Rim Width",
			"Retinal Nerve Fiber Layer Defects",
			"Optic Disc Hemorrhages",
			"Parapapillary Atrophy",
		},
		Parameters: []ParameterRecord{
			{FeatureName: "Cup-to-Disc Ratio", Label: "Cup-to-Disc Ratio (Vertical)", NormalThreshold: "< 0.3", AbnormalThreshold: "> 0.6", DecisionNote: "Calculate vertical CDR = Vertical Cup Diameter / Vertical Disc Diameter."},
			{FeatureName: "Neuroretinal Rim Width", NormalThreshold: "Follows ISNT Rule", AbnormalThreshold: "Violation of ISNT Rule", DecisionNote: "Measure width in inferior, superior, nasal, temporal quadrants."},
			{FeatureName: "Retinal Nerve Fiber Layer Defects", NormalThreshold: "Uniform thickness", AbnormalThreshold: "Wedge-shaped defects", DecisionNote: "Identify wedge-shaped defects visually."},
			{FeatureName: "Optic Disc Hemorrhages", NormalThreshold: "Absent", AbnormalThreshold: "Present", DecisionNote: "Identify and document location."},
			{FeatureName: "Parapapillary Atrophy", NormalThreshold: "Minimal", AbnormalThreshold: "Extensive", DecisionNote: "Measure area of atrophy around disc."},
		},
		AdditionalTests: []string{
			"Perform Visual Field Testing (Perimetry) to assess visual field loss.",
			"Use Optical Coherence Tomography (OCT) to measure RNFL thickness and ganglion cell analysis.",
		},
		Checks: []string{
			"Both eyes should have elevated CDR for a definitive diagnosis.",
			"Asymmetry in CDR between eyes > 0.2 is suspicious.",
			"Progressive thinning of the neuroretinal rim over time confirms glaucoma.",
		},
	},
	{
		ID:    AgeRelatedMacularDegeneration,
		Name:  "Age-Related Macular Degeneration",
		Title: "Age-Related Macular Degeneration (AMD)",
		Features: []string{
			"Drusen",
			"Geographic Atrophy",
		},
		Parameters: []ParameterRecord{
			{FeatureName: "Drusen", Label: "Drusen Size", NormalThreshold: "Small (< 63 µm)", AbnormalThreshold: "Intermediate (63–124 µm), Large (> 125 µm)", DecisionNote: "Measure drusen diameter."},
			{FeatureName: "Geographic Atrophy", NormalThreshold: "Absent", AbnormalThreshold: "Present", DecisionNote: "Measure area of RPE loss."},
		},
		AdditionalTests: []string{
			"Perform Optical Coherence Tomography (OCT) to quantify subretinal fluid and characterize drusen.",
			"Conduct Fluorescein Angiography (FA) to detect choroidal neovascularization.",
		},
		Checks: []string{
			"Early AMD: Presence of medium drusen.",
			"Intermediate AMD: Presence of large drusen or pigmentary changes.",
			"Advanced AMD: Presence of geographic atrophy or choroidal neovascularization.",
		},
	},
	{
		ID:    HypertensiveRetinopathy,
		Name:  "Hypertensive Retinopathy",
		Title: "Hypertensive Retinopathy",
		Features: []string{
			"Arteriolar Narrowing",
			"Arteriovenous Nicking",
			"Flame-Shaped Hemorrhages",
			"Cotton Wool Spots",
			"Macular Star",
		},
		Parameters: []ParameterRecord{
			{FeatureName: "Arteriolar Narrowing", NormalThreshold: "AVR: 0.6–0.8", AbnormalThreshold: "AVR: < 0.6", DecisionNote: "Calculate AVR = Arteriolar Diameter / Venular Diameter."},
			{FeatureName: "Arteriovenous Nicking", NormalThreshold: "Absent", AbnormalThreshold: "Present", DecisionNote: "Identify compression of veins by arteries."},
			{FeatureName: "Flame-Shaped Hemorrhages", NormalThreshold: "None", AbnormalThreshold: "Presence", DecisionNote: "Identify and count hemorrhages."},
			{FeatureName: "Cotton Wool Spots", NormalThreshold: "None", AbnormalThreshold: "Presence", DecisionNote: "Identify and count cotton wool spots."},
			{FeatureName: "Macular Star", NormalThreshold: "Absent", AbnormalThreshold: "Present", DecisionNote: "Identify star-like pattern of exudates."},
		},
		AdditionalTests: []string{
			"Monitor systemic blood pressure.",
			"Evaluate for systemic complications of hypertension.",
		},
		Checks: []string{
			"Grade hypertensive retinopathy based on the Keith-Wagener-Barker classification.",
		},
	},
	{
		ID:    RetinopathyOfPrematurity,
		Name:  "Retinopathy of Prematurity",
		Title: "Retinopathy of Prematurity (ROP)",
		Features: []string{
			"Vascular Ridge",
			"Plus Disease",
		},
		Parameters: []ParameterRecord{
			{FeatureName: "Vascular Ridge", NormalThreshold: "Normal vascularization", AbnormalThreshold: "Presence of ridge", DecisionNote: "Identify avascular zones and ridge formation."},
			{FeatureName: "Plus Disease", NormalThreshold: "No tortuosity", AbnormalThreshold: "Tortuosity score > 2", DecisionNote: "Use standardized images to grade tortuosity and dilation."},
		},
		AdditionalTests: []string{
			"Perform RetCam imaging for detailed visualization.",
			"Conduct serial examinations to monitor progression.",
		},
		Checks: []string{
			"Both eyes are typically affected.",
			"Treatment threshold: Zone I or posterior Zone II with plus disease.",
		},
	},
	{
		ID:    CentralSerousChorioretinopathy,
		Name:  "Central Serous Chorioretinopathy",
		Title: "Central Serous Chorioretinopathy (CSCR)",
		Features: []string{
			"Pigment Epithelial Detachment",
		},
		Parameters: []ParameterRecord{
			{FeatureName: "Pigment Epithelial Detachment", NormalThreshold: "Absent", AbnormalThreshold: "Present", DecisionNote: "Measure elevation of RPE."},
		},
		AdditionalTests: []string{
			"Perform Optical Coherence Tomography (OCT) to quantify subretinal fluid.",
			"Conduct Fluorescein Angiography (FA) to identify leakage points.",
		},
		Checks: []string{
			"Unilateral presentation is common.",
			"Chronic cases may lead to permanent vision loss.",
		},
	},
}

// testGuide backs the "When Additional Tests Are Recommended" page.
var testGuide = []TestIndicationGroup{
	{
		Disease: DiabeticRetinopathy,
		Indications: []TestIndication{
			{Modality: OCT, Indication: "Suspected macular edema or subretinal fluid"},
			{Modality: FA, Indication: "Suspected neovascularization or vascular leakage"},
			{Modality: OCTA, Indication: "Suspected diabetic macular ischemia"},
		},
	},
	{
		Disease: Glaucoma,
		Indications: []TestIndication{
			{Modality: OCT, Indication: "Detected abnormalities in cup-to-disc ratio or neuroretinal rim width"},
			{Modality: FA, Indication: "Rarely needed; used only in complex cases"},
			{Modality: OCTA, Indication: "Assessment of vascular changes in the optic nerve head"},
		},
	},
	{
		Disease: AgeRelatedMacularDegeneration,
		Indications: []TestIndication{
			{Modality: OCT, Indication: "Large drusen, geographic atrophy, or suspected subretinal fluid"},
			{Modality: FA, Indication: "Suspected choroidal neovascularization"},
			{Modality: OCTA, Indication: "Non-invasive visualization of CNV and macular perfusion"},
		},
	},
	{
		Disease: HypertensiveRetinopathy,
		Indications: []TestIndication{
			{Modality: OCT, Indication: "Suspected macular star or significant retinal thickening"},
			{Modality: FA, Indication: "Rarely needed; used only in cases of suspected ischemia"},
			{Modality: OCTA, Indication: "No specific role"},
		},
	},
	{
		Disease: RetinopathyOfPrematurity,
		Indications: []TestIndication{
			{Modality: OCT, Indication: "Rarely used; primarily for research purposes"},
			{Modality: FA, Indication: "Rarely used; considered only in advanced cases"},
			{Modality: OCTA, Indication: "Emerging as a potential tool for vascular assessment"},
		},
	},
	{
		Disease: CentralSerousChorioretinopathy,
		Indications: []TestIndication{
			{Modality: OCT, Indication: "Always recommended when CSCR is suspected"},
			{Modality: FA, Indication: "To identify leakage points and confirm active disease"},
			{Modality: OCTA, Indication: "To assess choroidal vascular abnormalities and differentiate between active and chronic CSCR"},
		},
	},
}

var sources = []string{
	"American Academy of Ophthalmology (AAO)",
	"World Health Organization (WHO)",
	"Indian Council of Medical Research (ICMR)",
	"National Programme for Control of Blindness (NPCB)",
	"Indian Journal of Ophthalmology (IJO)",
}

func init() {
	byID = make(map[DiseaseID]*Disease, len(diseases))
	for i := range diseases {
		d := &diseases[i]
		for j := range d.Parameters {
			d.Parameters[j].Disease = d.ID
		}
		byID[d.ID] = d
	}
	for i := range testGuide {
		testGuide[i].Name = byID[testGuide[i].Disease].Name
	}
}
