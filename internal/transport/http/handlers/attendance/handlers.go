package attendancehandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/attendance"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/employee"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

const employeeParam = "employeeID"

type Handler struct {
	Attendance *attendance.Service
	Perms      middleware.PermissionStore
	now        func() time.Time
}

func NewHandler(svc *attendance.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Attendance: svc, Perms: perms, now: time.Now}
}

type summaryDay struct {
	Date   string            `json:"date"`
	Status attendance.Status `json:"status"`
}

type summaryPayload struct {
	Days []summaryDay `json:"days"`
}

type punchesPayload struct {
	Punches []attendance.Punch `json:"punches"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermAttendanceRead, h.Perms)).Post("/attendance/summary", h.handleSummary)
	r.With(middleware.RequirePermission(auth.PermAttendanceRead, h.Perms)).Post("/attendance/punches", h.handlePunches)
	r.With(
		middleware.RequirePermission(auth.PermAttendanceRead, h.Perms),
		middleware.RequireSelfOrPermission(employeeParam, auth.PermEmployeesRead, h.Perms),
	).Get("/employees/{employeeID}/attendance", h.handleMonth)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload summaryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	validator := shared.NewValidator()
	days := make([]attendance.Day, 0, len(payload.Days))
	for i, item := range payload.Days {
		if !item.Status.Valid() {
			validator.Add(fmt.Sprintf("days[%d].status", i), "unknown attendance status")
			continue
		}
		day := attendance.Day{Status: item.Status}
		if item.Date != "" {
			parsed, err := shared.ParseDate(item.Date)
			if err != nil || parsed.IsZero() {
				validator.Add(fmt.Sprintf("days[%d].date", i), "must be a valid date in YYYY-MM-DD format")
				continue
			}
			day.Date = parsed
			day.Weekday = parsed.Weekday().String()
		}
		days = append(days, day)
	}
	if validator.Reject(w, requestID) {
		return
	}
	api.Success(w, attendance.Summarize(days), requestID)
}

func (h *Handler) handlePunches(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload punchesPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	result, err := h.Attendance.Punches(payload.Punches)
	if err != nil {
		if errors.Is(err, attendance.ErrInvalidPunchTime) {
			api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
			return
		}
		slog.Warn("punch calculation failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "attendance_failed", "attendance request failed", requestID)
		return
	}
	api.Success(w, result, requestID)
}

func (h *Handler) handleMonth(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	year, month, err := shared.ParseYearMonth(r.URL.Query().Get("year"), r.URL.Query().Get("month"), h.now())
	if err != nil {
		shared.FailField(w, requestID, "month", err.Error())
		return
	}

	result, err := h.Attendance.MonthForEmployee(r.Context(), chi.URLParam(r, employeeParam), year, month)
	switch {
	case errors.Is(err, employee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", requestID)
		return
	case errors.Is(err, attendance.ErrInvalidMonth):
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
		return
	case err != nil:
		slog.Warn("attendance month failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "attendance_failed", "attendance request failed", requestID)
		return
	}
	api.Success(w, result, requestID)
}
