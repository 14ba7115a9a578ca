package payrollhandler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/currency"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/payroll"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

const (
	employeeParam = "employeeID"
	deductionsKey = "deductions"
)

type Handler struct {
	Payroll  *payroll.Service
	Currency *currency.Registry
	Perms    middleware.PermissionStore
	now      func() time.Time
}

func NewHandler(svc *payroll.Service, registry *currency.Registry, perms middleware.PermissionStore) *Handler {
	return &Handler{Payroll: svc, Currency: registry, Perms: perms, now: time.Now}
}

type composeResponse struct {
	payroll.Breakdown
	Currency string            `json:"currency"`
	Display  map[string]string `json:"display"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms)).Post("/payroll/compose", h.handleCompose)
	r.With(middleware.RequirePermission(auth.PermPayrollExport, h.Perms)).Get("/payroll/register", h.handleRegister)

	own := r.With(
		middleware.RequirePermission(auth.PermPayrollRead, h.Perms),
		middleware.RequireSelfOrPermission(employeeParam, auth.PermEmployeesRead, h.Perms),
	)
	own.Get("/employees/{employeeID}/payroll", h.handleEmployeePayroll)
	own.Get("/employees/{employeeID}/payslip", h.handlePayslip)
}

// handleCompose accepts the raw compensation fields at the top level of the
// body. An optional "deductions" object overrides named deductions.
func (h *Handler) handleCompose(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	raw := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	var overrides map[string]any
	if value, ok := raw[deductionsKey]; ok {
		overrides, ok = value.(map[string]any)
		if !ok {
			shared.FailField(w, requestID, deductionsKey, "must be an object of named amounts")
			return
		}
		delete(raw, deductionsKey)
	}

	breakdown := h.Payroll.Compose(raw, overrides)
	c := h.Currency.Selected()
	api.Success(w, composeResponse{
		Breakdown: breakdown,
		Currency:  c.Code,
		Display: map[string]string{
			"grossSalary":     currency.Format(breakdown.GrossSalary, c),
			"totalDeductions": currency.Format(breakdown.TotalDeductions, c),
			"netSalary":       currency.Format(breakdown.NetSalary, c),
		},
	}, requestID)
}

func (h *Handler) handleEmployeePayroll(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	view, _, err := h.Payroll.ForEmployee(r.Context(), chi.URLParam(r, employeeParam))
	if err != nil {
		failPayroll(w, err, requestID)
		return
	}
	api.Success(w, view, requestID)
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	year, month, err := shared.ParseYearMonth(r.URL.Query().Get("year"), r.URL.Query().Get("month"), h.now())
	if err != nil {
		shared.FailField(w, requestID, "month", err.Error())
		return
	}

	employeeID := chi.URLParam(r, employeeParam)
	view, _, err := h.Payroll.ForEmployee(r.Context(), employeeID)
	if err != nil {
		failPayroll(w, err, requestID)
		return
	}

	var buf bytes.Buffer
	period := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	if err := payroll.WritePayslipPDF(&buf, view, h.Currency.Selected(), period); err != nil {
		slog.Warn("payslip render failed", "employeeId", employeeID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to render payslip", requestID)
		return
	}
	api.Attachment(w, api.ContentTypePDF, fmt.Sprintf("payslip-%s-%04d-%02d.pdf", employeeID, year, int(month)), buf.Bytes())
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	rows, err := h.Payroll.Register(r.Context())
	if err != nil {
		failPayroll(w, err, requestID)
		return
	}
	if r.URL.Query().Get("format") == "json" {
		api.Success(w, rows, requestID)
		return
	}

	var buf bytes.Buffer
	if err := payroll.WriteRegisterXLSX(&buf, rows, h.Currency.Selected(), h.now()); err != nil {
		slog.Warn("payroll register render failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "register_failed", "failed to render payroll register", requestID)
		return
	}
	api.Attachment(w, api.ContentTypeXLSX, "payroll-register.xlsx", buf.Bytes())
}

func failPayroll(w http.ResponseWriter, err error, requestID string) {
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", requestID)
		return
	}
	slog.Warn("payroll request failed", "err", err)
	api.Fail(w, http.StatusInternalServerError, "payroll_failed", "payroll request failed", requestID)
}
