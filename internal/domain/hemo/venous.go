package hemo

// DefaultMixedVenousSat is assumed when no venous sample is available.
const DefaultMixedVenousSat = 75.0

// MixedVenousSat selects the saturation representing mixed venous blood, in
// descending order of clinical reliability: a PA sample is the most
// representative, then RA, then a caval blend weighted 2/3 IVC + 1/3 SVC
// (both cavae required), then RV, and finally an assumed 75%. The returned
// source label is echoed on the report. The priority order is a clinical
// contract and must not be reordered.
func MixedVenousSat(pa, ra, rv, svc, ivc *float64) (float64, string) {
	switch {
	case pa != nil:
		return *pa, "PA"
	case ra != nil:
		return *ra, "RA"
	case svc != nil && ivc != nil:
		return (2.0**ivc + *svc) / 3.0, "weighted(2/3 IVC + 1/3 SVC)"
	case rv != nil:
		return *rv, "RV"
	}
	return DefaultMixedVenousSat, "default(75%)"
}
