package main

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/hemmy/hemmy/internal/domain/study"
)

func TestRequestFromFlags_Defaults(t *testing.T) {
	cmd := evaluateCmd()

	req, err := requestFromFlags(cmd)
	if err != nil {
		t.Fatalf("requestFromFlags: %v", err)
	}

	if req.HeightCm == nil || *req.HeightCm != study.DefaultHeightCm {
		t.Errorf("height = %v, want default %g", req.HeightCm, study.DefaultHeightCm)
	}
	if req.PCWP == nil || *req.PCWP != study.DefaultPCWP {
		t.Errorf("pcwp = %v, want default %g", req.PCWP, study.DefaultPCWP)
	}
	// Optional measurements must stay absent when the flag is unset.
	if req.PASat != nil {
		t.Errorf("pa-sat should be nil, got %v", *req.PASat)
	}
	if req.SBP != nil {
		t.Errorf("sbp should be nil, got %v", *req.SBP)
	}
}

func TestRequestFromFlags_SetValues(t *testing.T) {
	cmd := evaluateCmd()
	for flag, value := range map[string]string{
		"pa-systolic":  "80",
		"pa-diastolic": "40",
		"pcwp":         "10",
		"pa-sat":       "65",
		"name":         "Eugene Braunwald",
	} {
		if err := cmd.Flags().Set(flag, value); err != nil {
			t.Fatalf("set %s: %v", flag, err)
		}
	}

	req, err := requestFromFlags(cmd)
	if err != nil {
		t.Fatalf("requestFromFlags: %v", err)
	}

	if req.PASystolic == nil || *req.PASystolic != 80 {
		t.Errorf("pa-systolic = %v", req.PASystolic)
	}
	if req.PASat == nil || *req.PASat != 65 {
		t.Errorf("pa-sat = %v", req.PASat)
	}
	if req.PatientName != "Eugene Braunwald" {
		t.Errorf("name = %q", req.PatientName)
	}
}

func TestPromptFloat_BlankKeepsDefault(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("\n"))
	var out bytes.Buffer

	p := promptFloat(in, &out, "Height (cm)", 175, true)
	if p == nil || *p != 175 {
		t.Errorf("blank required input = %v, want 175", p)
	}
	if !strings.Contains(out.String(), "[175]") {
		t.Errorf("prompt missing default: %q", out.String())
	}
}

func TestPromptFloat_BlankSkipsOptional(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("\n"))
	var out bytes.Buffer

	if p := promptFloat(in, &out, "PA O2 saturation (%)", 0, false); p != nil {
		t.Errorf("blank optional input = %v, want nil", *p)
	}
}

func TestPromptFloat_RetriesOnGarbage(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("abc\n42.5\n"))
	var out bytes.Buffer

	p := promptFloat(in, &out, "Wedge pressure (mmHg)", 15, true)
	if p == nil || *p != 42.5 {
		t.Errorf("value after retry = %v, want 42.5", p)
	}
	if !strings.Contains(out.String(), "not a number") {
		t.Errorf("expected retry message, got %q", out.String())
	}
}

func TestPromptRequest_FullWalkthrough(t *testing.T) {
	// Patient metadata, nine required measurements, then the optional
	// block. SBP is given so the DBP prompt switches to a default.
	input := strings.Join([]string{
		"Eugene Braunwald", // name
		"MBO-123",          // id
		"Dr. Swan",         // operator
		"",                 // institution
		"",                 // height
		"",                 // weight
		"",                 // hb
		"",                 // sao2
		"",                 // ra mean
		"80",               // pa systolic
		"40",               // pa diastolic
		"10",               // pcwp
		"",                 // hr
		"",                 // svc sat
		"",                 // ivc sat
		"",                 // ra sat
		"",                 // rv sat
		"",                 // pa sat
		"120",              // sbp
		"",                 // dbp -> default 70
		"",                 // vo2
	}, "\n") + "\n"

	cmd := evaluateCmd()
	cmd.SetIn(strings.NewReader(input))
	var out bytes.Buffer
	cmd.SetOut(&out)

	req := promptRequest(cmd)

	if req.PatientName != "Eugene Braunwald" {
		t.Errorf("name = %q", req.PatientName)
	}
	if req.HeightCm == nil || *req.HeightCm != study.DefaultHeightCm {
		t.Errorf("height = %v, want default", req.HeightCm)
	}
	if req.PASystolic == nil || *req.PASystolic != 80 {
		t.Errorf("pa systolic = %v", req.PASystolic)
	}
	if req.PASat != nil {
		t.Errorf("pa sat should be skipped, got %v", *req.PASat)
	}
	if req.SBP == nil || *req.SBP != 120 {
		t.Errorf("sbp = %v", req.SBP)
	}
	if req.DBP == nil || *req.DBP != 70 {
		t.Errorf("dbp = %v, want assumed 70", req.DBP)
	}
	if !strings.Contains(out.String(), "[70]") {
		t.Error("DBP prompt should offer 70 once SBP is known")
	}
}
