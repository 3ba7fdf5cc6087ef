package hemo

import "fmt"

// estimatedVO2PerKg is the assumed oxygen consumption (mL/kg/min) when no
// measured VO2 is supplied.
const estimatedVO2PerKg = 3.5

// Derive computes every hemodynamic index from the raw measurements. The
// computation is closed-form and total: indices depending on an absent
// optional input carry the not-computable sentinel, never a fault.
func Derive(in Input) Derived {
	var d Derived

	d.Hb = NormalizeHemoglobin(in.Hemoglobin)
	d.BSA = BSAMosteller(in.HeightCm, in.WeightKg)
	d.SvO2, d.SvO2Source = MixedVenousSat(in.PASat, in.RASat, in.RVSat, in.SVCSat, in.IVCSat)

	if in.VO2 != nil {
		d.VO2 = *in.VO2
		d.VO2Source = "measured"
	} else {
		d.VO2 = estimatedVO2PerKg * in.WeightKg
		d.VO2Source = "estimated (3.5 mL/kg/min × weight)"
	}

	// Fick: CO = VO2 / (10 × (Ca - Cv)), with the A-V difference floored at
	// 1e-9 so a degenerate saturation pair cannot divide by zero.
	ca := O2Content(d.Hb.GdL, in.SaO2/100.0)
	cv := O2Content(d.Hb.GdL, d.SvO2/100.0)
	avDiff := ca - cv
	if avDiff < 1e-9 {
		avDiff = 1e-9
	}
	d.CO = d.VO2 / avDiff / 10.0

	d.CI = div(d.CO, d.BSA)
	d.SV = SafeDiv(d.CO*1000.0, in.HeartRate)
	d.SVI = divv(d.SV, d.BSA)

	d.MPAP = MeanFromSysDia(in.PASystolic, in.PADiastolic)
	d.TPG = d.MPAP - in.PCWP
	d.DPG = in.PADiastolic - in.PCWP
	d.PVRWood = SafeDiv(d.MPAP-in.PCWP, d.CO)
	d.PVRDyne = d.PVRWood.Scale(DynePerWU)
	d.PVRIndexed = mul(d.PVRWood, d.BSA)

	d.PAPi = SafeDiv(in.PASystolic-in.PADiastolic, in.RAMean)
	d.RAPOverPCWP = SafeDiv(in.RAMean, in.PCWP)
	d.PACompliance = divn(d.SV, in.PASystolic-in.PADiastolic)
	d.RVSWI = d.SVI.Scale((d.MPAP - in.RAMean) * RVSWIFactor)

	if in.SBP != nil && in.DBP != nil {
		mapVal := MeanFromSysDia(*in.SBP, *in.DBP)
		d.MAP = Num(mapVal)
		d.SVRWood = SafeDiv(mapVal-in.RAMean, d.CO)
		d.SVRDyne = d.SVRWood.Scale(DynePerWU)
		d.SVRIndexed = mul(d.SVRWood, d.BSA)
		d.CPO = Num(mapVal * d.CO / 451.0)
		d.CPI = d.CI.Scale(mapVal / 451.0)
	}

	d.QpQs, d.QpQsNote = qpqs(d.Hb.GdL, in.SaO2, d.SvO2, in.PASat)
	return d
}

// qpqs computes the pulmonary-to-systemic flow ratio by the Hb-based
// O2-content method: Qp/Qs = (Ca − Cv) / (Cpv − Cpa), assuming a pulmonary
// vein saturation of max(98%, SaO2) capped at 100%. Not computable without a
// PA saturation or when the assumed vein content is within 1e-9 of the PA
// content.
func qpqs(hbGdL, saO2, svO2 float64, paSat *float64) (Value, string) {
	if paSat == nil {
		return NA(), "N/A (PA sat missing)"
	}

	spv := saO2
	if spv < 98.0 {
		spv = 98.0
	}
	if spv > 100.0 {
		spv = 100.0
	}

	ca := O2Content(hbGdL, saO2/100.0)
	cv := O2Content(hbGdL, svO2/100.0)
	cpa := O2Content(hbGdL, *paSat/100.0)
	cpv := O2Content(hbGdL, spv/100.0)

	denom := cpv - cpa
	if denom < 1e-9 && denom > -1e-9 {
		return NA(), fmt.Sprintf("N/A (Cpv≈Cpa; SpvO2 assumed %.1f%%)", spv)
	}
	return Num((ca - cv) / denom), fmt.Sprintf("SpvO2 assumed %.1f%% (Hb-based O2 content method)", spv)
}

// div divides a float by a Value denominator.
func div(n float64, d Value) Value {
	f, ok := d.Float64()
	if !ok {
		return NA()
	}
	return SafeDiv(n, f)
}

// divn divides a Value numerator by a float denominator.
func divn(n Value, d float64) Value {
	f, ok := n.Float64()
	if !ok {
		return NA()
	}
	return SafeDiv(f, d)
}

// divv divides a Value by a Value.
func divv(n, d Value) Value {
	nf, ok := n.Float64()
	if !ok {
		return NA()
	}
	return div(nf, d)
}

// mul multiplies two Values.
func mul(a, b Value) Value {
	af, ok := a.Float64()
	if !ok {
		return NA()
	}
	return b.Scale(af)
}
