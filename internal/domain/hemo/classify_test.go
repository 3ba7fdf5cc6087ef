package hemo

import (
	"strings"
	"testing"
)

func TestClassifyRange(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want Label
	}{
		{"below", Num(2.0), LabelLow},
		{"inside", Num(3.0), LabelNormal},
		{"at low bound", Num(2.2), LabelNormal},
		{"at high bound", Num(4.0), LabelNormal},
		{"above", Num(4.1), LabelHigh},
		{"sentinel", NA(), LabelNA},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyRange(tt.v, 2.2, 4.0); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyAbove(t *testing.T) {
	if got := ClassifyAbove(Num(2.0), 2.0, LabelElevated); got != LabelNormal {
		t.Errorf("at cutoff = %q", got)
	}
	if got := ClassifyAbove(Num(2.01), 2.0, LabelElevated); got != LabelElevated {
		t.Errorf("above cutoff = %q", got)
	}
	if got := ClassifyAbove(NA(), 2.0, LabelElevated); got != LabelNA {
		t.Errorf("sentinel = %q", got)
	}
}

func TestPVRSeverityLadder(t *testing.T) {
	tests := []struct {
		pvr  Value
		want Label
	}{
		{Num(6.0), LabelPVRSevere},
		{Num(5.0), LabelPVRSevere},
		{Num(4.9), LabelPVRElevated},
		{Num(2.1), LabelPVRElevated},
		{Num(2.0), LabelPVRNormal},
		{Num(0.5), LabelPVRNormal},
		{NA(), LabelNA},
	}
	for _, tt := range tests {
		if got := classifyLadder(tt.pvr, pvrSeverityLadder, LabelPVRNormal); got != tt.want {
			t.Errorf("pvr %v: got %q, want %q", tt.pvr, got, tt.want)
		}
	}
}

func TestBespokeLadders(t *testing.T) {
	tests := []struct {
		name  string
		rungs []band
		rest  Label
		v     float64
		want  Label
	}{
		{"PAPi low", papiLadder, LabelOK, 0.8, LabelLow},
		{"PAPi borderline", papiLadder, LabelOK, 1.2, LabelBorderline},
		{"PAPi ok", papiLadder, LabelOK, 1.5, LabelOK},
		{"RAP/PCWP very high", rapPCWPLadder, LabelOK, 1.0, LabelVeryHigh},
		{"RAP/PCWP high", rapPCWPLadder, LabelOK, 0.47, LabelHigh},
		{"RAP/PCWP ok", rapPCWPLadder, LabelOK, 0.46, LabelOK},
		{"PAC low", pacLadder, LabelOK, 2.0, LabelLow},
		{"PAC borderline", pacLadder, LabelOK, 2.5, LabelBorderline},
		{"PAC ok", pacLadder, LabelOK, 3.0, LabelOK},
		{"CPO severe", cpoLadder, LabelHigh, 0.5, LabelLowSevere},
		{"CPO low", cpoLadder, LabelHigh, 0.7, LabelLow},
		{"CPO normal", cpoLadder, LabelHigh, 1.1, LabelNormal},
		{"CPO high", cpoLadder, LabelHigh, 1.2, LabelHigh},
		{"CPI severe", cpiLadder, LabelHigh, 0.3, LabelLowSevere},
		{"CPI low", cpiLadder, LabelHigh, 0.5, LabelLow},
		{"CPI normal", cpiLadder, LabelHigh, 0.8, LabelNormal},
		{"CPI high", cpiLadder, LabelHigh, 0.9, LabelHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyLadder(Num(tt.v), tt.rungs, tt.rest); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// Ladders must be monotonic: walking a value upward never revisits an earlier
// band once it has left it.
func TestLadderMonotonicity(t *testing.T) {
	ladders := []struct {
		name  string
		rungs []band
		rest  Label
	}{
		{"pvr severity", pvrSeverityLadder, LabelPVRNormal},
		{"papi", papiLadder, LabelOK},
		{"rap/pcwp", rapPCWPLadder, LabelOK},
		{"pac", pacLadder, LabelOK},
		{"cpo", cpoLadder, LabelHigh},
		{"cpi", cpiLadder, LabelHigh},
	}
	for _, l := range ladders {
		t.Run(l.name, func(t *testing.T) {
			seen := map[Label]bool{}
			var last Label
			for v := 0.0; v <= 10.0; v += 0.01 {
				got := classifyLadder(Num(v), l.rungs, l.rest)
				if got != last {
					if seen[got] {
						t.Fatalf("band %q revisited at %v", got, v)
					}
					seen[got] = true
					last = got
				}
			}
		})
	}
}

func TestClassifyPhenotype(t *testing.T) {
	tests := []struct {
		name            string
		mpap, pcwp, pvr Value
		want            Phenotype
	}{
		{"no PH at 18", Num(18), Num(25), Num(9), PhenotypeNoPH},
		{"no PH boundary 20", Num(20), Num(10), Num(3), PhenotypeNoPH},
		{"precapillary", Num(45), Num(10), Num(3), PhenotypePreCap},
		{"low PVR with normal wedge", Num(45), Num(10), Num(1), PhenotypePHLowPVR},
		{"ipcph", Num(45), Num(20), Num(1), PhenotypeIpcPH},
		{"cpcph", Num(45), Num(20), Num(3), PhenotypeCpcPH},
		{"wedge boundary 15 counts as precap side", Num(45), Num(15), Num(3), PhenotypePreCap},
		{"pvr boundary 2 is not elevated", Num(45), Num(10), Num(2), PhenotypePHLowPVR},
		{"sentinel mpap", NA(), Num(10), Num(3), PhenotypeUnknown},
		{"sentinel pcwp", Num(45), NA(), Num(3), PhenotypeUnknown},
		{"sentinel pvr", Num(45), Num(10), NA(), PhenotypeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyPhenotype(tt.mpap, tt.pcwp, tt.pvr); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInterpretPH(t *testing.T) {
	if got := InterpretPH(NA(), Num(10), Num(3)); got != "Unable to classify PH (missing/invalid inputs)." {
		t.Errorf("unknown: %q", got)
	}
	if got := InterpretPH(Num(18), Num(10), Num(1)); !strings.Contains(got, "No PH") {
		t.Errorf("no PH: %q", got)
	}
	if got := InterpretPH(Num(45), Num(10), Num(3)); !strings.Contains(got, "Pre-capillary PH") {
		t.Errorf("precap: %q", got)
	}
	if got := InterpretPH(Num(45), Num(20), Num(3)); !strings.Contains(got, "CpcPH") {
		t.Errorf("cpcph: %q", got)
	}
	if got := InterpretPH(Num(45), Num(20), Num(1)); !strings.Contains(got, "IpcPH") {
		t.Errorf("ipcph: %q", got)
	}
}

func TestInterpretShunt(t *testing.T) {
	tests := []struct {
		name string
		q    Value
		want string
	}{
		{"moderate left-to-right", Num(1.8), "Moderate (Qp/Qs 1.5–2.0)"},
		{"small left-to-right", Num(1.2), "Non-significant/small (Qp/Qs < 1.5)"},
		{"large left-to-right", Num(2.5), "Significant/large (Qp/Qs > 2.0)"},
		{"significant right-to-left", Num(0.70), "Significant (Qp/Qs < 0.80)"},
		{"moderate right-to-left", Num(0.85), "Moderate (Qp/Qs 0.80–0.95)"},
		{"no shunt at unity", Num(1.0), "no significant shunt"},
		{"no shunt at band edge", Num(1.05), "no significant shunt"},
		{"sentinel", NA(), "unable to determine"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InterpretShunt(tt.q); !strings.Contains(got, tt.want) {
				t.Errorf("got %q, want substring %q", got, tt.want)
			}
		})
	}
}

func TestClassifyDefaultScenario(t *testing.T) {
	in := defaultInput()
	f := Classify(in, Derive(in))

	if f.RAP != LabelHigh {
		t.Errorf("RAP 10 should flag HIGH, got %q", f.RAP)
	}
	if f.PCWP != LabelHigh {
		t.Errorf("PCWP 15 should flag HIGH, got %q", f.PCWP)
	}
	if f.CPO != LabelNA || f.CPI != LabelNA {
		t.Errorf("CPO/CPI without systemic pressures should be N/A, got %q/%q", f.CPO, f.CPI)
	}
	if f.CO != LabelNormal {
		t.Errorf("CO flag = %q", f.CO)
	}
}
