package gratuityhandler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/currency"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/gratuity"
	"hrms/internal/platform/jobs"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

const employeeParam = "employeeID"

type Handler struct {
	Gratuity *gratuity.Service
	Currency *currency.Registry
	Jobs     *jobs.Service
	Audit    *audit.Service
	Perms    middleware.PermissionStore
}

func NewHandler(svc *gratuity.Service, registry *currency.Registry, jobsSvc *jobs.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Gratuity: svc, Currency: registry, Jobs: jobsSvc, Perms: perms}
}

type calculatePayload struct {
	JoinDate    string           `json:"joinDate"`
	BasicSalary *decimal.Decimal `json:"basicSalary"`
	AsOf        string           `json:"asOf"`
}

type storePayload struct {
	CalculationType string `json:"calculationType"`
	Notes           string `json:"notes"`
}

type settlementPayload struct {
	SettlementDate string `json:"settlementDate"`
	Notes          string `json:"notes"`
}

type paymentPayload struct {
	PaymentStatus    string `json:"paymentStatus"`
	PaymentDate      string `json:"paymentDate"`
	PaymentMethod    string `json:"paymentMethod"`
	PaymentReference string `json:"paymentReference"`
}

type gratuityResponse struct {
	EmployeeID string          `json:"employeeId,omitempty"`
	Name       string          `json:"name,omitempty"`
	Result     gratuity.Result `json:"result"`
	Formatted  string          `json:"formatted"`
	Currency   string          `json:"currency"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermGratuityRead, h.Perms)).Post("/gratuity/calculate", h.handleCalculate)
	r.With(middleware.RequirePermission(auth.PermGratuityWrite, h.Perms)).Post("/gratuity/batch", h.handleBatch)
	r.With(middleware.RequirePermission(auth.PermGratuityWrite, h.Perms)).Get("/gratuity/batch/runs", h.handleBatchRuns)
	r.With(middleware.RequirePermission(auth.PermGratuitySettle, h.Perms)).Patch("/gratuity/settlements/{settlementID}", h.handleUpdatePayment)

	r.Route("/employees/{employeeID}/gratuity", func(r chi.Router) {
		own := r.With(
			middleware.RequirePermission(auth.PermGratuityRead, h.Perms),
			middleware.RequireSelfOrPermission(employeeParam, auth.PermEmployeesRead, h.Perms),
		)
		own.Get("/", h.handleEvaluate)
		own.Get("/current", h.handleCurrent)
		own.Get("/history", h.handleHistory)
		own.Get("/statement", h.handleStatement)
		own.Get("/settlements", h.handleListSettlements)
		r.With(middleware.RequirePermission(auth.PermGratuityWrite, h.Perms)).Post("/", h.handleStore)
		r.With(middleware.RequirePermission(auth.PermGratuitySettle, h.Perms)).Post("/settlements", h.handleCreateSettlement)
	})
}

func (h *Handler) respond(res gratuity.Result, emp employee.Employee) gratuityResponse {
	c := h.Currency.Selected()
	return gratuityResponse{
		EmployeeID: emp.ID,
		Name:       emp.Name,
		Result:     res,
		Formatted:  currency.Format(res.Amount, c),
		Currency:   c.Code,
	}
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload calculatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	validator := shared.NewValidator()
	joinDate, _ := validator.Date("joinDate", payload.JoinDate)
	basic := decimal.Zero
	if payload.BasicSalary == nil {
		validator.Add("basicSalary", "is required")
	} else {
		basic = *payload.BasicSalary
		validator.NonNegative("basicSalary", basic)
	}
	asOf := h.Gratuity.Calc.Now()
	if strings.TrimSpace(payload.AsOf) != "" {
		asOf, _ = validator.Date("asOf", payload.AsOf)
	}
	if validator.Reject(w, requestID) {
		return
	}

	res, err := gratuity.Calculate(joinDate, basic, asOf, h.Gratuity.Calc.Options())
	if err != nil {
		failGratuity(w, err, requestID)
		return
	}
	api.Success(w, h.respond(res, employee.Employee{}), requestID)
}

func (h *Handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var asOf time.Time
	if raw := r.URL.Query().Get("asOf"); raw != "" {
		parsed, err := shared.ParseDate(raw)
		if err != nil {
			shared.FailField(w, requestID, "asOf", "must be a valid date in YYYY-MM-DD format")
			return
		}
		asOf = parsed
	}

	res, emp, err := h.Gratuity.CalculateForEmployee(r.Context(), chi.URLParam(r, employeeParam), asOf)
	if err != nil {
		failGratuity(w, err, requestID)
		return
	}
	api.Success(w, h.respond(res, emp), requestID)
}

func (h *Handler) handleStore(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	var payload storePayload
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
			return
		}
	}

	validator := shared.NewValidator()
	calcType := validator.Enum("calculationType", payload.CalculationType, gratuity.CalculationTypes, "")
	if validator.Reject(w, requestID) {
		return
	}

	entry, res, err := h.Gratuity.CalculateAndStore(r.Context(), chi.URLParam(r, employeeParam), calcType, user.UserID, payload.Notes)
	if err != nil {
		failGratuity(w, err, requestID)
		return
	}
	h.record(r, audit.ActionGratuityStore, audit.EntityEmployeeGratuity, entry.EmployeeID, nil, entry)
	api.Created(w, map[string]any{"entry": entry, "result": res}, requestID)
}

func (h *Handler) handleCurrent(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	record, err := h.Gratuity.Current(r.Context(), chi.URLParam(r, employeeParam))
	if err != nil {
		failGratuity(w, err, requestID)
		return
	}
	api.Success(w, record, requestID)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	page := shared.ParsePagination(r, gratuity.DefaultHistoryLimit, gratuity.MaxHistoryLimit)
	history, err := h.Gratuity.History(r.Context(), chi.URLParam(r, employeeParam), page.Limit)
	if err != nil {
		failGratuity(w, err, requestID)
		return
	}
	if history == nil {
		history = []gratuity.HistoryEntry{}
	}
	api.Success(w, history, requestID)
}

func (h *Handler) handleStatement(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, employeeParam)
	st, err := h.Gratuity.Statement(r.Context(), employeeID, h.Currency.Selected())
	if err != nil {
		failGratuity(w, err, requestID)
		return
	}

	var buf bytes.Buffer
	if err := gratuity.WriteStatementPDF(&buf, st); err != nil {
		slog.Warn("gratuity statement render failed", "employeeId", employeeID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "statement_failed", "failed to render statement", requestID)
		return
	}
	api.Attachment(w, api.ContentTypePDF, fmt.Sprintf("gratuity-%s.pdf", employeeID), buf.Bytes())
}

func (h *Handler) handleListSettlements(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	settlements, err := h.Gratuity.Settlements(r.Context(), chi.URLParam(r, employeeParam))
	if err != nil {
		failGratuity(w, err, requestID)
		return
	}
	if settlements == nil {
		settlements = []gratuity.Settlement{}
	}
	api.Success(w, settlements, requestID)
}

func (h *Handler) handleCreateSettlement(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	var payload settlementPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	var settlementDate time.Time
	if strings.TrimSpace(payload.SettlementDate) != "" {
		validator := shared.NewValidator()
		settlementDate, _ = validator.Date("settlementDate", payload.SettlementDate)
		if validator.Reject(w, requestID) {
			return
		}
	}

	settlement, err := h.Gratuity.RecordSettlement(r.Context(), chi.URLParam(r, employeeParam), settlementDate, user.UserID, payload.Notes)
	if err != nil {
		failGratuity(w, err, requestID)
		return
	}
	h.record(r, audit.ActionSettlementCreate, audit.EntityGratuitySettlement, settlement.ID, nil, settlement)
	api.Created(w, settlement, requestID)
}

func (h *Handler) handleUpdatePayment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload paymentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	validator := shared.NewValidator()
	validator.Required("paymentStatus", payload.PaymentStatus, "is required")
	status := validator.Enum("paymentStatus", payload.PaymentStatus, gratuity.PaymentStatuses, "")
	details := gratuity.PaymentDetails{
		PaymentMethod:    strings.TrimSpace(payload.PaymentMethod),
		PaymentReference: strings.TrimSpace(payload.PaymentReference),
	}
	if strings.TrimSpace(payload.PaymentDate) != "" {
		if paid, ok := validator.Date("paymentDate", payload.PaymentDate); ok {
			details.PaymentDate = &paid
		}
	}
	if validator.Reject(w, requestID) {
		return
	}

	settlement, err := h.Gratuity.UpdateSettlementPayment(r.Context(), chi.URLParam(r, "settlementID"), status, details)
	if err != nil {
		failGratuity(w, err, requestID)
		return
	}
	h.record(r, audit.ActionSettlementPayment, audit.EntityGratuitySettlement, settlement.ID, nil, settlement)
	api.Success(w, settlement, requestID)
}

func (h *Handler) handleBatch(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var result gratuity.BatchResult
	var err error
	if h.Jobs != nil {
		result, err = h.Jobs.RunGratuityAccrual(r.Context(), user.UserID)
	} else {
		result, err = h.Gratuity.CalculateAll(r.Context(), user.UserID)
	}
	if err != nil {
		slog.Warn("gratuity batch failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "gratuity_batch_failed", "failed to run gratuity batch", requestID)
		return
	}
	h.record(r, audit.ActionGratuityBatch, audit.EntityEmployeeGratuity, "*", nil, result)
	api.Success(w, result, requestID)
}

func (h *Handler) handleBatchRuns(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if h.Jobs == nil {
		api.Success(w, []jobs.Run{}, requestID)
		return
	}
	page := shared.ParsePagination(r, 20, 100)
	runs, err := h.Jobs.Runs.ListRuns(r.Context(), jobs.JobGratuityAccrual, page.Limit)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "job_runs_failed", "failed to list job runs", requestID)
		return
	}
	if runs == nil {
		runs = []jobs.Run{}
	}
	api.Success(w, runs, requestID)
}

func (h *Handler) record(r *http.Request, action, entityType, entityID string, before, after any) {
	user, _ := middleware.GetUser(r.Context())
	if err := h.Audit.Record(r.Context(), user.UserID, action, entityType, entityID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), before, after); err != nil {
		slog.Warn("audit "+action+" failed", "err", err)
	}
}

func failGratuity(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, employee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", requestID)
	case errors.Is(err, gratuity.ErrRecordNotFound):
		api.Fail(w, http.StatusNotFound, "gratuity_not_found", "no stored gratuity for employee", requestID)
	case errors.Is(err, gratuity.ErrSettlementNotFound):
		api.Fail(w, http.StatusNotFound, "settlement_not_found", "settlement not found", requestID)
	case errors.Is(err, gratuity.ErrInvalidDateRange), errors.Is(err, gratuity.ErrNegativeSalary):
		api.Fail(w, http.StatusUnprocessableEntity, "invalid_gratuity_input", err.Error(), requestID)
	case errors.Is(err, gratuity.ErrInvalidCalculationType), errors.Is(err, gratuity.ErrInvalidPaymentStatus):
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
	default:
		slog.Warn("gratuity request failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "gratuity_failed", "gratuity request failed", requestID)
	}
}
