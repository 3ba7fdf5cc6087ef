package study

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hemmy/hemmy/internal/domain/hemo"
	"github.com/hemmy/hemmy/internal/platform/reporting"
)

func newTestServer(t *testing.T) (*echo.Echo, *mockRepo) {
	t.Helper()
	e := echo.New()
	renderer, err := reporting.NewTemplateRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e.Renderer = renderer

	repo := newMockRepo()
	h := NewHandler(NewService(repo), "University Hospital of Split")
	h.RegisterRoutes(e, e.Group("/api"))
	return e, repo
}

func TestHandlerIndex(t *testing.T) {
	e, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "University Hospital of Split") {
		t.Error("default institution missing from form")
	}
}

func TestHandlerCalculate(t *testing.T) {
	e, _ := newTestServer(t)

	form := url.Values{}
	form.Set("patient_name", "Eugene Braunwald")
	form.Set("pa_systolic", "80")
	form.Set("pa_diastolic", "40")
	form.Set("pcwp", "10")

	req := httptest.NewRequest(http.MethodPost, "/calculate", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Pre-capillary PH") {
		t.Errorf("results page missing PH classification:\n%s", body)
	}
	if !strings.Contains(body, "Eugene Braunwald") {
		t.Error("results page missing patient name")
	}
}

func TestHandlerCalculateRejectsNonNumeric(t *testing.T) {
	e, _ := newTestServer(t)

	form := url.Values{}
	form.Set("pcwp", "fifteen")

	req := httptest.NewRequest(http.MethodPost, "/calculate", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not a number") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestHandlerEvaluateJSON(t *testing.T) {
	e, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/evaluate",
		strings.NewReader(`{"pa_systolic": 80, "pa_diastolic": 40, "pcwp": 10}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var report hemo.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Phenotype != hemo.PhenotypePreCap {
		t.Errorf("phenotype = %q", report.Phenotype)
	}
	if report.Derived.MAP.Valid() {
		t.Error("MAP should be null without systemic pressures")
	}
}

func TestHandlerStudyLifecycle(t *testing.T) {
	e, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/studies",
		strings.NewReader(`{"patient_id": "MBO-123", "sbp": 120, "dbp": 70}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}
	var created Study
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/studies/"+created.ID.String(), nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/studies/"+created.ID.String()+"/report", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("report status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "RHC Hemodynamics Report") {
		t.Error("text report missing header")
	}
	if !strings.Contains(rec.Body.String(), "Systemic:") {
		t.Error("text report should include systemic section when SBP/DBP stored")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/studies?patient_id=MBO-123", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"total":1`) {
		t.Errorf("list = %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/studies/"+created.ID.String(), nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/studies/"+created.ID.String(), nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete = %d", rec.Code)
	}
}

func TestHandlerGetStudyInvalidID(t *testing.T) {
	e, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/studies/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}
