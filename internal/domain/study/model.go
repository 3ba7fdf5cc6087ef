// Package study wraps the hemo evaluation engine with the service-facing
// surfaces: intake coercion with documented defaults, persistence of
// evaluated studies, and the HTTP handlers for both the JSON API and the
// HTML calculator.
package study

import (
	"time"

	"github.com/google/uuid"

	"github.com/hemmy/hemmy/internal/domain/hemo"
)

// Study is one persisted catheterization evaluation: the raw input as it
// entered the engine and the full report it produced.
type Study struct {
	ID          uuid.UUID   `db:"id" json:"id"`
	PatientName string      `db:"patient_name" json:"patient_name,omitempty"`
	PatientID   string      `db:"patient_ref" json:"patient_id,omitempty"`
	Operator    string      `db:"operator" json:"operator,omitempty"`
	Institution string      `db:"institution" json:"institution,omitempty"`
	Phenotype   string      `db:"phenotype" json:"phenotype"`
	Input       hemo.Input  `db:"input" json:"input"`
	Report      hemo.Report `db:"report" json:"report"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
}

// EvaluateRequest is the intake record. Required measurements are pointers
// here too: nil means "operator supplied nothing", which takes the documented
// default. Optional measurements stay absent when nil, never a silent
// numeric default.
type EvaluateRequest struct {
	PatientName string `json:"patient_name"`
	PatientID   string `json:"patient_id"`
	Operator    string `json:"operator"`
	Institution string `json:"institution"`

	HeightCm    *float64 `json:"height_cm"`
	WeightKg    *float64 `json:"weight_kg"`
	Hemoglobin  *float64 `json:"hemoglobin"`
	SaO2        *float64 `json:"sao2"`
	RAMean      *float64 `json:"ra_mean"`
	PASystolic  *float64 `json:"pa_systolic"`
	PADiastolic *float64 `json:"pa_diastolic"`
	PCWP        *float64 `json:"pcwp"`
	HeartRate   *float64 `json:"heart_rate"`

	SVCSat *float64 `json:"svc_sat"`
	IVCSat *float64 `json:"ivc_sat"`
	RASat  *float64 `json:"ra_sat"`
	RVSat  *float64 `json:"rv_sat"`
	PASat  *float64 `json:"pa_sat"`
	SBP    *float64 `json:"sbp"`
	DBP    *float64 `json:"dbp"`
	VO2    *float64 `json:"vo2"`
}

// Documented intake defaults, applied only when the operator supplies
// nothing for a required field.
const (
	DefaultHeightCm    = 175.0
	DefaultWeightKg    = 80.0
	DefaultHemoglobin  = 140.0 // g/L
	DefaultSaO2        = 95.0
	DefaultRAMean      = 10.0
	DefaultPASystolic  = 40.0
	DefaultPADiastolic = 20.0
	DefaultPCWP        = 15.0
	DefaultHeartRate   = 70.0
)

func orDefault(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// ToInput resolves the request into the engine's input record: defaults for
// omitted required fields, pass-through absence for optional ones.
func (r EvaluateRequest) ToInput() hemo.Input {
	return hemo.Input{
		PatientName: r.PatientName,
		PatientID:   r.PatientID,
		Operator:    r.Operator,
		Institution: r.Institution,

		HeightCm:    orDefault(r.HeightCm, DefaultHeightCm),
		WeightKg:    orDefault(r.WeightKg, DefaultWeightKg),
		Hemoglobin:  orDefault(r.Hemoglobin, DefaultHemoglobin),
		SaO2:        orDefault(r.SaO2, DefaultSaO2),
		RAMean:      orDefault(r.RAMean, DefaultRAMean),
		PASystolic:  orDefault(r.PASystolic, DefaultPASystolic),
		PADiastolic: orDefault(r.PADiastolic, DefaultPADiastolic),
		PCWP:        orDefault(r.PCWP, DefaultPCWP),
		HeartRate:   orDefault(r.HeartRate, DefaultHeartRate),

		SVCSat: r.SVCSat,
		IVCSat: r.IVCSat,
		RASat:  r.RASat,
		RVSat:  r.RVSat,
		PASat:  r.PASat,
		SBP:    r.SBP,
		DBP:    r.DBP,
		VO2:    r.VO2,
	}
}
