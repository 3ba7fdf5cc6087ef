package study

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hemmy/hemmy/internal/platform/reporting"
	"github.com/hemmy/hemmy/pkg/pagination"
)

type Handler struct {
	svc         *Service
	institution string
}

func NewHandler(svc *Service, institution string) *Handler {
	return &Handler{svc: svc, institution: institution}
}

// RegisterRoutes wires the HTML calculator at the root and the JSON API
// under /api.
func (h *Handler) RegisterRoutes(e *echo.Echo, api *echo.Group) {
	e.GET("/", h.Index)
	e.POST("/calculate", h.Calculate)

	api.POST("/evaluate", h.Evaluate)
	api.POST("/studies", h.CreateStudy)
	api.GET("/studies", h.ListStudies)
	api.GET("/studies/:id", h.GetStudy)
	api.GET("/studies/:id/report", h.GetStudyReport)
	api.DELETE("/studies/:id", h.DeleteStudy)
}

// Index renders the calculator form.
func (h *Handler) Index(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", map[string]interface{}{
		"AppName":     reporting.AppName,
		"AppVersion":  reporting.AppVersion,
		"Institution": h.institution,
	})
}

// Calculate evaluates a form submission and renders the results page.
func (h *Handler) Calculate(c echo.Context) error {
	req, err := h.requestFromForm(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	report, err := h.svc.Evaluate(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.Render(http.StatusOK, "results.html", map[string]interface{}{
		"AppName":    reporting.AppName,
		"AppVersion": reporting.AppVersion,
		"Report":     &report,
	})
}

// Evaluate runs a stateless evaluation over a JSON request.
func (h *Handler) Evaluate(c echo.Context) error {
	var req EvaluateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	report, err := h.svc.Evaluate(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, report)
}

// CreateStudy evaluates and persists a study.
func (h *Handler) CreateStudy(c echo.Context) error {
	var req EvaluateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	st, err := h.svc.CreateStudy(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, st)
}

// ListStudies returns persisted studies, optionally filtered by patient.
func (h *Handler) ListStudies(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListStudies(c.Request().Context(), c.QueryParam("patient_id"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// GetStudy returns one persisted study.
func (h *Handler) GetStudy(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	st, err := h.svc.GetStudy(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "study not found")
	}
	return c.JSON(http.StatusOK, st)
}

// GetStudyReport renders a persisted study as the console-style text report.
func (h *Handler) GetStudyReport(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	st, err := h.svc.GetStudy(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "study not found")
	}
	return c.String(http.StatusOK, reporting.RenderText(&st.Report))
}

// DeleteStudy removes a persisted study.
func (h *Handler) DeleteStudy(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteStudy(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// requestFromForm coerces the HTML form into an EvaluateRequest. Blank
// fields become nil (default for required, absent for optional); anything
// non-numeric is rejected here, before the engine.
func (h *Handler) requestFromForm(c echo.Context) (EvaluateRequest, error) {
	req := EvaluateRequest{
		PatientName: strings.TrimSpace(c.FormValue("patient_name")),
		PatientID:   strings.TrimSpace(c.FormValue("patient_id")),
		Operator:    strings.TrimSpace(c.FormValue("operator")),
		Institution: strings.TrimSpace(c.FormValue("institution")),
	}
	if req.Institution == "" {
		req.Institution = h.institution
	}

	fields := []struct {
		name string
		dst  **float64
	}{
		{"height_cm", &req.HeightCm},
		{"weight_kg", &req.WeightKg},
		{"hb", &req.Hemoglobin},
		{"sao2", &req.SaO2},
		{"ra_mean", &req.RAMean},
		{"pa_systolic", &req.PASystolic},
		{"pa_diastolic", &req.PADiastolic},
		{"pcwp", &req.PCWP},
		{"heart_rate", &req.HeartRate},
		{"svc_sat", &req.SVCSat},
		{"ivc_sat", &req.IVCSat},
		{"ra_sat", &req.RASat},
		{"rv_sat", &req.RVSat},
		{"pa_sat", &req.PASat},
		{"sbp", &req.SBP},
		{"dbp", &req.DBP},
		{"vo2", &req.VO2},
	}
	for _, f := range fields {
		v, err := formFloat(c, f.name)
		if err != nil {
			return EvaluateRequest{}, err
		}
		*f.dst = v
	}
	return req, nil
}

func formFloat(c echo.Context, name string) (*float64, error) {
	raw := strings.TrimSpace(c.FormValue(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: not a number", name)
	}
	return &v, nil
}
