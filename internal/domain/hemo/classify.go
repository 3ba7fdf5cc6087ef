package hemo

import "fmt"

// Range and threshold bounds are fixed clinical reference values; do not
// adjust without clinical sign-off.

// ClassifyRange maps a value against a [low, high] reference range.
func ClassifyRange(v Value, low, high float64) Label {
	f, ok := v.Float64()
	switch {
	case !ok:
		return LabelNA
	case f < low:
		return LabelLow
	case f > high:
		return LabelHigh
	}
	return LabelNormal
}

// ClassifyAbove returns abnormal when the value exceeds the cutoff.
func ClassifyAbove(v Value, cutoff float64, abnormal Label) Label {
	f, ok := v.Float64()
	if !ok {
		return LabelNA
	}
	if f > cutoff {
		return abnormal
	}
	return LabelNormal
}

// band is one rung of an ordered classification ladder: the first matching
// predicate wins, so rungs must be listed worst-first or best-first
// consistently and the ladder stays monotonic.
type band struct {
	match func(float64) bool
	label Label
}

func below(cutoff float64) func(float64) bool {
	return func(v float64) bool { return v < cutoff }
}

func atLeast(cutoff float64) func(float64) bool {
	return func(v float64) bool { return v >= cutoff }
}

func atMost(cutoff float64) func(float64) bool {
	return func(v float64) bool { return v <= cutoff }
}

// classifyLadder walks the rungs top-down; rest applies when none match. A
// sentinel is always N/A regardless of ladder position.
func classifyLadder(v Value, rungs []band, rest Label) Label {
	f, ok := v.Float64()
	if !ok {
		return LabelNA
	}
	for _, r := range rungs {
		if r.match(f) {
			return r.label
		}
	}
	return rest
}

var (
	pvrSeverityLadder = []band{
		{atLeast(5.0), LabelPVRSevere},
		{func(v float64) bool { return v > 2.0 }, LabelPVRElevated},
	}
	papiLadder = []band{
		{below(0.9), LabelLow},
		{below(1.5), LabelBorderline},
	}
	rapPCWPLadder = []band{
		{atLeast(1.0), LabelVeryHigh},
		{atLeast(0.47), LabelHigh},
	}
	pacLadder = []band{
		{below(2.15), LabelLow},
		{below(3.0), LabelBorderline},
	}
	cpoLadder = []band{
		{below(0.6), LabelLowSevere},
		{below(0.8), LabelLow},
		{atMost(1.1), LabelNormal},
	}
	cpiLadder = []band{
		{below(0.4), LabelLowSevere},
		{below(0.6), LabelLow},
		{atMost(0.8), LabelNormal},
	}
)

// Classify maps every classified quantity (derived indices plus the measured
// filling pressures) to its categorical band.
func Classify(in Input, d Derived) Flags {
	return Flags{
		CO:   ClassifyRange(Num(d.CO), 4.0, 8.0),
		CI:   ClassifyRange(d.CI, 2.2, 4.0),
		SV:   ClassifyRange(d.SV, 55.0, 100.0),
		SVI:  ClassifyRange(d.SVI, 33.0, 47.0),
		RAP:  ClassifyRange(Num(in.RAMean), 0.0, 8.0),
		PCWP: ClassifyRange(Num(in.PCWP), 4.0, 12.0),

		PVR:         ClassifyAbove(d.PVRWood, 2.0, LabelElevated),
		PVRSeverity: classifyLadder(d.PVRWood, pvrSeverityLadder, LabelPVRNormal),
		TPG:         ClassifyAbove(Num(d.TPG), 12.0, LabelElevated),
		DPG:         ClassifyAbove(Num(d.DPG), 7.0, LabelElevated),

		PAPi:         classifyLadder(d.PAPi, papiLadder, LabelOK),
		RAPOverPCWP:  classifyLadder(d.RAPOverPCWP, rapPCWPLadder, LabelOK),
		PACompliance: classifyLadder(d.PACompliance, pacLadder, LabelOK),
		CPO:          classifyLadder(d.CPO, cpoLadder, LabelHigh),
		CPI:          classifyLadder(d.CPI, cpiLadder, LabelHigh),
		RVSWI:        ClassifyRange(d.RVSWI, 5.0, 10.0),
	}
}

// ClassifyPhenotype runs the ESC/ERS hemodynamic decision tree over mPAP,
// PCWP and PVR. The ordering and the 20/15/2 cut-points are the clinical
// contract. Any sentinel input yields PhenotypeUnknown.
func ClassifyPhenotype(mpap, pcwp, pvrWood Value) Phenotype {
	mp, ok1 := mpap.Float64()
	wedge, ok2 := pcwp.Float64()
	pvr, ok3 := pvrWood.Float64()
	if !ok1 || !ok2 || !ok3 {
		return PhenotypeUnknown
	}
	if mp <= 20 {
		return PhenotypeNoPH
	}
	if wedge <= 15 {
		if pvr > 2 {
			return PhenotypePreCap
		}
		return PhenotypePHLowPVR
	}
	if pvr > 2 {
		return PhenotypeCpcPH
	}
	return PhenotypeIpcPH
}

// InterpretPH renders the phenotype as a guideline-worded sentence with the
// deciding numbers inlined.
func InterpretPH(mpap, pcwp, pvrWood Value) string {
	mp, _ := mpap.Float64()
	wedge, _ := pcwp.Float64()
	pvr, _ := pvrWood.Float64()

	switch ClassifyPhenotype(mpap, pcwp, pvrWood) {
	case PhenotypeUnknown:
		return "Unable to classify PH (missing/invalid inputs)."
	case PhenotypeNoPH:
		return fmt.Sprintf("No PH by ESC/ERS hemodynamics: mPAP %.1f mmHg (≤ 20).", mp)
	case PhenotypePreCap:
		return fmt.Sprintf("PH present (mPAP > 20). Pre-capillary PH: PCWP %.1f (≤15), PVR %.2f (>2).", wedge, pvr)
	case PhenotypePHLowPVR:
		return "PH present (mPAP > 20) with PCWP ≤ 15 but PVR ≤ 2 (borderline/flow-related; interpret clinically)."
	case PhenotypeCpcPH:
		return fmt.Sprintf("PH present (mPAP > 20). Combined post- and pre-capillary PH (CpcPH): PCWP %.1f (>15), PVR %.2f (>2).", wedge, pvr)
	}
	return fmt.Sprintf("PH present (mPAP > 20). Isolated post-capillary PH (IpcPH): PCWP %.1f (>15), PVR %.2f (≤2).", wedge, pvr)
}

// InterpretShunt describes direction and severity of an intracardiac shunt
// from the Qp/Qs ratio. The band [0.95, 1.05] reads as no significant shunt.
func InterpretShunt(qpqs Value) string {
	q, ok := qpqs.Float64()
	if !ok {
		return "Shunt: unable to determine (Qp/Qs not available)."
	}

	if q > 1.05 {
		sev := "Significant/large (Qp/Qs > 2.0)."
		if q < 1.5 {
			sev = "Non-significant/small (Qp/Qs < 1.5)."
		} else if q <= 2.0 {
			sev = "Moderate (Qp/Qs 1.5–2.0)."
		}
		return "Shunt: Left-to-right shunt suggested (Qp/Qs > 1). Severity: " + sev
	}

	if q < 0.95 {
		sev := "Significant (Qp/Qs < 0.80)."
		if q >= 0.80 {
			sev = "Moderate (Qp/Qs 0.80–0.95)."
		}
		return "Shunt: Right-to-left shunt suggested (Qp/Qs < 1). Severity: " + sev
	}

	return "Shunt: no significant shunt suggested (Qp/Qs ~ 1)."
}
