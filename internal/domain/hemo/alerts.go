package hemo

import "strings"

// alertRule is one independent risk predicate; every rule whose predicate
// holds contributes its text, in declaration order.
type alertRule struct {
	when func(in Input, d Derived) bool
	text string
}

func valid(v Value, pred func(float64) bool) bool {
	f, ok := v.Float64()
	return ok && pred(f)
}

// independentAlerts fire and-combined; they are not mutually exclusive.
var independentAlerts = []alertRule{
	{
		when: func(in Input, d Derived) bool { return d.TPG >= 15.0 },
		text: "TPG ≥ 15 mmHg: elevated transpulmonary gradient (Tx risk marker).",
	},
	{
		when: func(in Input, d Derived) bool { return in.RAMean >= 15.0 },
		text: "RAP ≥ 15 mmHg: high right-sided filling pressure.",
	},
	{
		when: func(in Input, d Derived) bool { return valid(d.CI, below(2.0)) },
		text: "CI < 2.0 L/min/m²: low cardiac index.",
	},
	{
		when: func(in Input, d Derived) bool { return valid(d.CPO, below(0.6)) },
		text: "CPO < 0.6 W: severe low-output state.",
	},
	{
		when: func(in Input, d Derived) bool { return valid(d.PAPi, below(0.9)) },
		text: "PAPi < 0.9: suggests significant RV dysfunction risk.",
	},
	{
		when: func(in Input, d Derived) bool { return valid(d.RAPOverPCWP, atLeast(1.0)) },
		text: "RAP/PCWP ≥ 1.0: disproportionate RV failure pattern.",
	},
}

// Alerts evaluates the advanced-HF/transplant risk flags. The PVR pair is
// exclusive (severe suppresses elevated); all other predicates are
// independent and any subset may co-fire.
func Alerts(in Input, d Derived) []string {
	var out []string

	if valid(d.PVRWood, atLeast(5.0)) {
		out = append(out, "PVR ≥ 5 WU: SEVERE pulmonary vascular disease / high transplant risk.")
	} else if valid(d.PVRWood, func(v float64) bool { return v > 3.0 }) {
		out = append(out, "PVR > 3 WU: elevated PVR (Tx/LVAD evaluation often considers reversibility).")
	}

	for _, r := range independentAlerts {
		if r.when(in, d) {
			out = append(out, r.text)
		}
	}
	return out
}

const treatmentHeader = "Treatment options (ESC/ERS-aligned, haemodynamic phenotype-based; high-level):"

const treatmentSupportive = "- General/supportive (as appropriate): diuretics for congestion/right HF; oxygen if hypoxaemic; supervised rehab/exercise when stable; vaccinations; manage comorbidities; consider PH expert-centre referral."

var treatmentBlocks = map[Phenotype][]string{
	PhenotypePreCap: {
		"- Pre-capillary PH: complete diagnostic work-up to define PH group (PAH vs lung/hypoxia vs CTEPH vs others) before targeted therapy.",
		"- If PAH (Group 1) confirmed: risk-based therapy—often initial dual oral combination (ERA + PDE5 inhibitor) for low/intermediate risk; escalate by follow-up risk assessment.",
		"- If high-risk PAH or severe haemodynamics: consider initial triple therapy including parenteral prostacyclin (i.v./s.c.) in expert centre; consider transplant evaluation if inadequate response.",
		"- If CTEPH suspected/confirmed: lifelong anticoagulation; refer to CTEPH team for operability—pulmonary endarterectomy (PEA) if operable; balloon pulmonary angioplasty (BPA) if inoperable/residual; riociguat for symptomatic inoperable or persistent/recurrent PH after PEA.",
		"- If PH due to lung disease/hypoxia: optimize lung disease and hypoxaemia; PAH drugs generally not recommended in non-severe cases; individualized decisions in severe cases at expert centre.",
	},
	PhenotypeIpcPH: {
		"- Post-capillary PH (IpcPH; PH-LHD): optimize left-heart disease/valvular management first (GDMT, volume control, rhythm/ischemia/valve strategy as indicated).",
		"- PAH-approved drugs are generally not recommended in PH due to left heart disease; reassess haemodynamics after optimization when it changes management.",
	},
}

const treatmentCpcPHIntro = "- Post-capillary PH with pre-capillary component (CpcPH): optimize left-heart disease first; consider PH/HF expert-centre referral, especially with RV dysfunction or advanced HF."

const treatmentCpcPHSeverePVR = "- PVR ≥ 5 WU suggests severe pulmonary vascular disease: prioritize expert-centre management; consider advanced HF pathways (including transplant/LVAD evaluation where clinically appropriate)."

const treatmentCpcPHOutro = "- PAH-approved drugs are not routinely recommended in PH-LHD; any targeted therapy should be individualized within an expert centre and appropriate diagnostic context."

const treatmentUncertain = "- Haemodynamic pattern uncertain: complete work-up (repeat measures, volume status, echo/CTEPH screen, lung/left-heart evaluation) and manage in specialist setting if needed."

// TreatmentText selects the guideline-aligned treatment-options block for the
// phenotype. The content is a static lookup of fixed text templates; only the
// CpcPH block varies, adding a line when PVR ≥ 5 WU. Definitive therapy
// depends on the PH group (1–5) plus full diagnostic work-up.
func TreatmentText(phenotype Phenotype, pvrWood Value) string {
	lines := []string{treatmentHeader}

	switch phenotype {
	case PhenotypeNoPH:
		lines = append(lines, "- No haemodynamic PH (mPAP ≤ 20): treat underlying condition; follow clinically.")
	case PhenotypePreCap, PhenotypeIpcPH:
		lines = append(lines, treatmentSupportive)
		lines = append(lines, treatmentBlocks[phenotype]...)
	case PhenotypeCpcPH:
		lines = append(lines, treatmentSupportive, treatmentCpcPHIntro)
		if valid(pvrWood, atLeast(5.0)) {
			lines = append(lines, treatmentCpcPHSeverePVR)
		}
		lines = append(lines, treatmentCpcPHOutro)
	default: // ph_pvr_le2, unknown
		lines = append(lines, treatmentSupportive, treatmentUncertain)
	}
	return strings.Join(lines, "\n")
}
