// Package reporting renders evaluated catheterization reports for the
// presentation boundaries: plain text for the console and TXT export, HTML
// for the web form. It consumes a hemo.Report read-only; not-computable
// values always render as "N/A", never as a numeric placeholder.
package reporting

import (
	"fmt"
	"strings"

	"github.com/hemmy/hemmy/internal/domain/hemo"
)

const (
	AppName    = "HEMMY"
	AppVersion = "2.0.0"
)

// fmtVal formats a derived value with the given verb, or "N/A".
func fmtVal(v hemo.Value, verb string) string {
	f, ok := v.Float64()
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf(verb, f)
}

// RenderText produces the full console-style report.
func RenderText(r *hemo.Report) string {
	in := r.Input
	d := r.Derived
	f := r.Flags

	var b strings.Builder
	line := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("%s – RHC Hemodynamics Report", AppName)
	line("Version: %s", AppVersion)
	line("Run timestamp: %s", r.Timestamp.Format("2006-01-02 15:04"))
	line("")
	if in.PatientName != "" {
		line("Patient: %s", in.PatientName)
	}
	if in.PatientID != "" {
		line("Patient ID: %s", in.PatientID)
	}
	if in.Institution != "" {
		line("Institution: %s", in.Institution)
	}
	if in.Operator != "" {
		line("Physician/Operator: %s", in.Operator)
	}
	line("")

	if d.Hb.Corrected {
		line("Hb input looked like g/dL; auto-converted to g/L.")
		line("")
	}

	line("Height: %.1f cm | Weight: %.1f kg | BSA: %s m²", in.HeightCm, in.WeightKg, fmtVal(d.BSA, "%.2f"))
	line("Hb: %.0f g/L (=%.1f g/dL)", d.Hb.GL, d.Hb.GdL)
	line("SaO2: %.1f%% | SvO2 used: %.1f%% (source: %s)", in.SaO2, d.SvO2, d.SvO2Source)
	if in.PASat != nil {
		line("PA sat (SpaO2): %.1f%%", *in.PASat)
	}
	line("VO2: %.0f mL/min (%s)", d.VO2, d.VO2Source)
	line("")

	line("Calculated flow / pump performance:")
	line("  CO (Fick): %.2f L/min [%s]", d.CO, f.CO)
	line("  CI: %s L/min/m² [%s]", fmtVal(d.CI, "%.2f"), f.CI)
	line("  SV: %s mL/beat [%s]", fmtVal(d.SV, "%.0f"), f.SV)
	line("  SVI: %s mL/beat/m² [%s]", fmtVal(d.SVI, "%.1f"), f.SVI)
	if d.CPO.Valid() {
		line("  CPO: %s W [%s]", fmtVal(d.CPO, "%.2f"), f.CPO)
	}
	if d.CPI.Valid() {
		line("  CPI: %s W/m² [%s]", fmtVal(d.CPI, "%.2f"), f.CPI)
	}
	line("")

	line("Pressures & pulmonary vascular indices:")
	line("  RAP(mean): %.1f mmHg [%s]", in.RAMean, f.RAP)
	line("  PA: %.1f/%.1f mmHg | mPAP (auto): %.1f mmHg", in.PASystolic, in.PADiastolic, d.MPAP)
	line("  PCWP(mean): %.1f mmHg [%s]", in.PCWP, f.PCWP)
	line("  TPG: %.1f mmHg [%s]", d.TPG, f.TPG)
	line("  DPG: %.1f mmHg [%s]", d.DPG, f.DPG)
	line("  PVR: %s WU [%s] | Severity: %s", fmtVal(d.PVRWood, "%.2f"), f.PVR, f.PVRSeverity)
	line("       (%s dyn·s/cm⁵) | PVRI: %s WU·m²", fmtVal(d.PVRDyne, "%.0f"), fmtVal(d.PVRIndexed, "%.2f"))
	line("  PAPi: %s [%s]", fmtVal(d.PAPi, "%.2f"), f.PAPi)
	line("  RAP/PCWP: %s [%s]", fmtVal(d.RAPOverPCWP, "%.2f"), f.RAPOverPCWP)
	line("  PA compliance (SV/PP): %s mL/mmHg [%s]", fmtVal(d.PACompliance, "%.2f"), f.PACompliance)
	line("  RVSWI: %s g·m/m²/beat [%s]", fmtVal(d.RVSWI, "%.1f"), f.RVSWI)
	line("")

	line("Shunt assessment (Qp/Qs):")
	if d.QpQs.Valid() {
		line("  Qp/Qs: %s (%s)", fmtVal(d.QpQs, "%.2f"), d.QpQsNote)
	} else {
		line("  Qp/Qs: N/A (%s)", d.QpQsNote)
	}
	line("  %s", r.ShuntText)
	line("")

	if d.MAP.Valid() && in.SBP != nil && in.DBP != nil {
		line("Systemic:")
		line("  SBP/DBP: %.0f/%.0f mmHg | MAP: %s mmHg", *in.SBP, *in.DBP, fmtVal(d.MAP, "%.1f"))
		line("  SVR: %s WU (%s dyn·s/cm⁵) | SVRI: %s WU·m²",
			fmtVal(d.SVRWood, "%.2f"), fmtVal(d.SVRDyne, "%.0f"), fmtVal(d.SVRIndexed, "%.2f"))
		line("")
	}

	line("Final ESC/ERS PH classification (hemodynamics):")
	line("  %s", r.PHClass)
	line("")

	if len(r.Alerts) > 0 {
		line("Advanced HF/Transplant alerts:")
		for _, a := range r.Alerts {
			line("  - %s", a)
		}
		line("")
	}

	line("Treatment summary:")
	line("%s", r.Treatment)
	line("")
	line("NOTE: Treatment section is high-level and depends on PH group (1–5) + full diagnostic work-up.")

	return b.String()
}
