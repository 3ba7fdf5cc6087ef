package hemo

import "time"

// Evaluate runs the full pipeline over one input record: derivation,
// classification, phenotyping, interpretation, alerts and treatment text.
// It is deterministic apart from the report timestamp and never fails on a
// clinical input combination; not-computable indices surface as N/A labels.
func Evaluate(in Input) Report {
	return evaluateAt(in, time.Now())
}

func evaluateAt(in Input, ts time.Time) Report {
	d := Derive(in)

	mpap := Num(d.MPAP)
	pcwp := Num(in.PCWP)
	phenotype := ClassifyPhenotype(mpap, pcwp, d.PVRWood)

	return Report{
		Timestamp: ts,
		Input:     in,
		Derived:   d,
		Flags:     Classify(in, d),
		Phenotype: phenotype,
		PHClass:   InterpretPH(mpap, pcwp, d.PVRWood),
		ShuntText: InterpretShunt(d.QpQs),
		Alerts:    Alerts(in, d),
		Treatment: TreatmentText(phenotype, d.PVRWood),
	}
}
