package study

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/hemmy/hemmy/internal/domain/hemo"
)

type Service struct {
	studies Repository
}

func NewService(studies Repository) *Service {
	return &Service{studies: studies}
}

// checkFinite rejects non-finite measurements before they reach the engine.
// This is the intake-contract boundary: the engine assumes required fields
// are finite and treats everything downstream as a clinical value.
func checkFinite(name string, p *float64) error {
	if p == nil {
		return nil
	}
	if math.IsNaN(*p) || math.IsInf(*p, 0) {
		return fmt.Errorf("%s: not a number", name)
	}
	return nil
}

// Validate checks the intake contract on a request. Required fields may be
// omitted (the documented default applies) but whatever is supplied must be
// finite.
func (r EvaluateRequest) Validate() error {
	fields := map[string]*float64{
		"height_cm": r.HeightCm, "weight_kg": r.WeightKg, "hemoglobin": r.Hemoglobin,
		"sao2": r.SaO2, "ra_mean": r.RAMean, "pa_systolic": r.PASystolic,
		"pa_diastolic": r.PADiastolic, "pcwp": r.PCWP, "heart_rate": r.HeartRate,
		"svc_sat": r.SVCSat, "ivc_sat": r.IVCSat, "ra_sat": r.RASat,
		"rv_sat": r.RVSat, "pa_sat": r.PASat, "sbp": r.SBP, "dbp": r.DBP, "vo2": r.VO2,
	}
	for name, p := range fields {
		if err := checkFinite(name, p); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate runs the engine over a request without persisting anything.
func (s *Service) Evaluate(req EvaluateRequest) (hemo.Report, error) {
	if err := req.Validate(); err != nil {
		return hemo.Report{}, err
	}
	return hemo.Evaluate(req.ToInput()), nil
}

// CreateStudy evaluates a request and persists the result.
func (s *Service) CreateStudy(ctx context.Context, req EvaluateRequest) (*Study, error) {
	report, err := s.Evaluate(req)
	if err != nil {
		return nil, err
	}

	st := &Study{
		PatientName: req.PatientName,
		PatientID:   req.PatientID,
		Operator:    req.Operator,
		Institution: req.Institution,
		Phenotype:   string(report.Phenotype),
		Input:       report.Input,
		Report:      report,
	}
	if err := s.studies.Create(ctx, st); err != nil {
		return nil, fmt.Errorf("persist study: %w", err)
	}
	return st, nil
}

// GetStudy retrieves one persisted study.
func (s *Service) GetStudy(ctx context.Context, id uuid.UUID) (*Study, error) {
	return s.studies.GetByID(ctx, id)
}

// ListStudies returns persisted studies, newest first.
func (s *Service) ListStudies(ctx context.Context, patientRef string, limit, offset int) ([]*Study, int, error) {
	if patientRef != "" {
		return s.studies.ListByPatient(ctx, patientRef, limit, offset)
	}
	return s.studies.List(ctx, limit, offset)
}

// DeleteStudy removes a persisted study.
func (s *Service) DeleteStudy(ctx context.Context, id uuid.UUID) error {
	return s.studies.Delete(ctx, id)
}
