package hemo

import (
	"encoding/json"
	"math"
)

const (
	// Hufner is the oxygen-carrying capacity of hemoglobin (mL O2 per g Hb).
	Hufner = 1.34
	// DynePerWU converts Wood units to dyn·s/cm⁵.
	DynePerWU = 80.0
	// RVSWIFactor converts mmHg·mL/m² to g·m/m²/beat.
	RVSWIFactor = 0.0136
)

// Value is a derived quantity that is either a finite number or explicitly
// not computable (missing optional input, division by near-zero). The zero
// Value is not computable, which is distinct from a domain value of zero.
type Value struct {
	val float64
	ok  bool
}

// Num wraps a finite float as a computable Value. NaN and infinities are
// treated as not computable so sentinel arithmetic never leaks a NaN.
func Num(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	return Value{val: v, ok: true}
}

// NA returns the not-computable sentinel.
func NA() Value { return Value{} }

// Valid reports whether the value was computable.
func (v Value) Valid() bool { return v.ok }

// Float64 returns the numeric value and whether it is computable.
func (v Value) Float64() (float64, bool) { return v.val, v.ok }

// Or returns the numeric value, or def when not computable.
func (v Value) Or(def float64) float64 {
	if !v.ok {
		return def
	}
	return v.val
}

// Scale multiplies a computable value by f; a sentinel stays a sentinel.
func (v Value) Scale(f float64) Value {
	if !v.ok {
		return Value{}
	}
	return Num(v.val * f)
}

// MarshalJSON encodes a sentinel as null so presentation layers can render
// "N/A" instead of a numeric placeholder.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte("null"), nil
	}
	return json.Marshal(v.val)
}

// UnmarshalJSON decodes null back into the sentinel.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Value{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Num(f)
	return nil
}

// SafeDiv divides n by d, returning the sentinel when |d| < 1e-12. All
// ratio-type derivations route through this to avoid divide-by-zero faults.
func SafeDiv(n, d float64) Value {
	if math.Abs(d) < 1e-12 {
		return Value{}
	}
	return Num(n / d)
}

// BSAMosteller computes body surface area (m²) by the Mosteller formula.
// Non-positive height or weight yields the sentinel.
func BSAMosteller(heightCm, weightKg float64) Value {
	if heightCm <= 0 || weightKg <= 0 {
		return Value{}
	}
	return Num(math.Sqrt(heightCm * weightKg / 3600.0))
}

// MeanFromSysDia estimates a mean pressure from systolic and diastolic
// pressures: dia + (sys-dia)/3. Used for both mPAP and systemic MAP.
func MeanFromSysDia(sys, dia float64) float64 {
	return dia + (sys-dia)/3.0
}

// O2Content computes oxygen content (mL O2/dL blood) from hemoglobin in g/dL
// and a saturation fraction, via the Hüfner constant.
func O2Content(hbGdL, satFrac float64) float64 {
	return Hufner * hbGdL * satFrac
}

// Hemoglobin carries a hemoglobin concentration in both unit systems plus
// whether the raw input was auto-corrected from g/dL to g/L.
type Hemoglobin struct {
	GL        float64 `json:"g_l"`
	GdL       float64 `json:"g_dl"`
	Corrected bool    `json:"corrected"`
}

// NormalizeHemoglobin interprets a raw hemoglobin entry. Expected unit is
// g/L; a positive value below 40 is assumed to be g/dL and is multiplied by
// 10. The threshold-40 heuristic is ambiguous for extreme anemia (a true g/L
// value below 40 entered here would be scaled), a documented limitation of
// the intake convention, preserved as-is.
func NormalizeHemoglobin(raw float64) Hemoglobin {
	h := Hemoglobin{GL: raw}
	if raw > 0 && raw < 40 {
		h.GL = raw * 10.0
		h.Corrected = true
	}
	h.GdL = h.GL / 10.0
	return h
}
