// Package hemo implements the right-heart-catheterization evaluation engine:
// derivation of hemodynamic indices from raw pressures, saturations and
// anthropometrics, classification of each index against clinical reference
// ranges, ESC/ERS pulmonary-hypertension phenotyping, risk alerts and
// guideline-aligned treatment text. The engine is pure: one Input in, one
// Report out, no I/O, no shared state.
package hemo

import "time"

// Input holds the raw measurements for one catheterization study. Required
// fields are plain floats and are assumed present and finite by the time they
// reach the engine (the intake layer rejects anything else). Optional fields
// are pointers; nil means "not applicable", which is distinct from zero.
type Input struct {
	PatientName string `json:"patient_name,omitempty"`
	PatientID   string `json:"patient_id,omitempty"`
	Operator    string `json:"operator,omitempty"`
	Institution string `json:"institution,omitempty"`

	HeightCm    float64 `json:"height_cm"`
	WeightKg    float64 `json:"weight_kg"`
	Hemoglobin  float64 `json:"hemoglobin"` // g/L, auto-corrected from g/dL below 40
	SaO2        float64 `json:"sao2"`       // %
	RAMean      float64 `json:"ra_mean"`    // mmHg
	PASystolic  float64 `json:"pa_systolic"`
	PADiastolic float64 `json:"pa_diastolic"`
	PCWP        float64 `json:"pcwp"`
	HeartRate   float64 `json:"heart_rate"`

	SVCSat *float64 `json:"svc_sat,omitempty"`
	IVCSat *float64 `json:"ivc_sat,omitempty"`
	RASat  *float64 `json:"ra_sat,omitempty"`
	RVSat  *float64 `json:"rv_sat,omitempty"`
	PASat  *float64 `json:"pa_sat,omitempty"`
	SBP    *float64 `json:"sbp,omitempty"`
	DBP    *float64 `json:"dbp,omitempty"`
	VO2    *float64 `json:"vo2,omitempty"` // mL/min; nil -> estimated 3.5 mL/kg/min × weight
}

// Derived holds every computed index. Fields that depend on an optional input
// carry the not-computable sentinel when that input is absent.
type Derived struct {
	BSA        Value      `json:"bsa"`
	Hb         Hemoglobin `json:"hb"`
	SvO2       float64    `json:"svo2"`
	SvO2Source string     `json:"svo2_source"`
	VO2        float64    `json:"vo2"`
	VO2Source  string     `json:"vo2_source"`

	CO  float64 `json:"co"` // Fick cardiac output, L/min
	CI  Value   `json:"ci"`
	SV  Value   `json:"sv"`
	SVI Value   `json:"svi"`

	MPAP       float64 `json:"mpap"` // always auto-derived from PA sys/dia
	TPG        float64 `json:"tpg"`
	DPG        float64 `json:"dpg"`
	PVRWood    Value   `json:"pvr_wu"`
	PVRDyne    Value   `json:"pvr_dyne"`
	PVRIndexed Value   `json:"pvri"`

	PAPi         Value `json:"papi"`
	RAPOverPCWP  Value `json:"rap_pcwp"`
	PACompliance Value `json:"pa_compliance"`
	RVSWI        Value `json:"rvswi"`

	// Systemic block: computable only when both SBP and DBP were supplied.
	MAP        Value `json:"map"`
	SVRWood    Value `json:"svr_wu"`
	SVRDyne    Value `json:"svr_dyne"`
	SVRIndexed Value `json:"svri"`
	CPO        Value `json:"cpo"`
	CPI        Value `json:"cpi"`

	QpQs     Value  `json:"qpqs"`
	QpQsNote string `json:"qpqs_note"`
}

// Label is a categorical classification band.
type Label string

const (
	LabelNA         Label = "N/A"
	LabelNormal     Label = "NORMAL"
	LabelLow        Label = "LOW"
	LabelHigh       Label = "HIGH"
	LabelElevated   Label = "ELEVATED"
	LabelOK         Label = "OK"
	LabelBorderline Label = "BORDERLINE"
	LabelVeryHigh   Label = "VERY HIGH"
	LabelLowSevere  Label = "LOW (severe)"

	LabelPVRSevere   Label = "SEVERE (≥5 WU)"
	LabelPVRElevated Label = "ELEVATED (>2 WU)"
	LabelPVRNormal   Label = "NORMAL (≤2 WU)"
)

// Flags carries one classification label per classified index.
type Flags struct {
	CO           Label `json:"co"`
	CI           Label `json:"ci"`
	SV           Label `json:"sv"`
	SVI          Label `json:"svi"`
	RAP          Label `json:"rap"`
	PCWP         Label `json:"pcwp"`
	PVR          Label `json:"pvr"`
	PVRSeverity  Label `json:"pvr_severity"`
	TPG          Label `json:"tpg"`
	DPG          Label `json:"dpg"`
	PAPi         Label `json:"papi"`
	RAPOverPCWP  Label `json:"rap_pcwp"`
	PACompliance Label `json:"pa_compliance"`
	CPO          Label `json:"cpo"`
	CPI          Label `json:"cpi"`
	RVSWI        Label `json:"rvswi"`
}

// Phenotype is the ESC/ERS hemodynamic PH phenotype.
type Phenotype string

const (
	PhenotypeNoPH     Phenotype = "no_ph"      // mPAP ≤ 20
	PhenotypePreCap   Phenotype = "precap"     // mPAP > 20, PCWP ≤ 15, PVR > 2
	PhenotypePHLowPVR Phenotype = "ph_pvr_le2" // mPAP > 20, PCWP ≤ 15, PVR ≤ 2
	PhenotypeIpcPH    Phenotype = "ipcph"      // mPAP > 20, PCWP > 15, PVR ≤ 2
	PhenotypeCpcPH    Phenotype = "cpcph"      // mPAP > 20, PCWP > 15, PVR > 2
	PhenotypeUnknown  Phenotype = "unknown"    // any input not computable
)

// Report is the immutable aggregate produced by one evaluation. Timestamp is
// the only time-dependent field; everything else is a pure function of Input.
type Report struct {
	Timestamp time.Time `json:"timestamp"`

	Input   Input   `json:"input"`
	Derived Derived `json:"derived"`
	Flags   Flags   `json:"flags"`

	Phenotype Phenotype `json:"phenotype"`
	PHClass   string    `json:"ph_class"`
	ShuntText string    `json:"shunt_text"`
	Alerts    []string  `json:"alerts,omitempty"`
	Treatment string    `json:"treatment"`
}
