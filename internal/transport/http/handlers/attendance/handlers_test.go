package attendancehandler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/internal/domain/attendance"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/employee"
	"hrms/internal/transport/http/middleware"
)

var evening = time.Date(2025, time.March, 3, 20, 0, 0, 0, time.UTC)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	svc := attendance.NewService(employee.NewMemoryStore(employee.Fixtures()...)).WithClock(func() time.Time { return evening })
	enforcer, err := auth.NewEnforcer()
	require.NoError(t, err)
	h := NewHandler(svc, enforcer)
	h.now = func() time.Time { return evening }
	router := chi.NewRouter()
	h.RegisterRoutes(router)
	return router
}

func do(t *testing.T, h http.Handler, user auth.UserContext, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUser(req.Context(), user))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

var emp1 = auth.UserContext{UserID: "u-1", EmployeeID: "EMP001", RoleName: auth.RoleEmployee}

func TestSummaryEndpoint(t *testing.T) {
	router := newRouter(t)

	body := `{"days":[
		{"date":"2025-03-03","status":"Present"},
		{"date":"2025-03-04","status":"Late"},
		{"date":"2025-03-05","status":"Half Day"},
		{"date":"2025-03-06","status":"Absent"},
		{"date":"2025-03-08","status":"Weekend"}
	]}`
	rec, env := do(t, router, emp1, http.MethodPost, "/attendance/summary", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary struct {
		Present        int    `json:"present"`
		Absent         int    `json:"absent"`
		HalfDay        int    `json:"halfDay"`
		WorkingDays    int    `json:"workingDays"`
		AttendanceRate string `json:"attendanceRate"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 2, summary.Present)
	assert.Equal(t, 1, summary.Absent)
	assert.Equal(t, 1, summary.HalfDay)
	assert.Equal(t, 4, summary.WorkingDays)
	assert.Equal(t, "62.5", summary.AttendanceRate)
}

func TestSummaryEndpointRejectsUnknownStatus(t *testing.T) {
	router := newRouter(t)
	rec, env := do(t, router, emp1, http.MethodPost, "/attendance/summary", `{"days":[{"status":"Holiday"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", env.Error.Code)
}

func TestSummaryEndpointRejectsBadDate(t *testing.T) {
	router := newRouter(t)
	rec, env := do(t, router, emp1, http.MethodPost, "/attendance/summary", `{"days":[{"date":"2025-03-03","status":"Present"},{"date":"03/04/2025","status":"Present"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", env.Error.Code)
	assert.Contains(t, rec.Body.String(), `"field":"days[1].date"`)
}

func TestPunchesEndpoint(t *testing.T) {
	router := newRouter(t)

	rec, env := do(t, router, emp1, http.MethodPost, "/attendance/punches",
		`{"punches":[{"time":"09:05","type":"in"},{"time":"13:00","type":"out"},{"time":"14:00","type":"in"},{"time":"18:15","type":"out"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var result attendance.PunchResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 490, result.TotalAttendingMinutes)
	assert.Equal(t, 60, result.TotalBreakMinutes)
	assert.Equal(t, attendance.StatusPresent, result.Status)

	rec, _ = do(t, router, emp1, http.MethodPost, "/attendance/punches", `{"punches":[{"time":"nine","type":"in"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMonthEndpoint(t *testing.T) {
	router := newRouter(t)

	rec, env := do(t, router, emp1, http.MethodGet, "/employees/EMP001/attendance?year=2025&month=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var month struct {
		EmployeeID string            `json:"employeeId"`
		Month      int               `json:"month"`
		Days       []json.RawMessage `json:"attendance"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &month))
	assert.Equal(t, "EMP001", month.EmployeeID)
	assert.Equal(t, 2, month.Month)
	assert.Len(t, month.Days, 28)

	again, env2 := do(t, router, emp1, http.MethodGet, "/employees/EMP001/attendance?year=2025&month=2", "")
	require.Equal(t, http.StatusOK, again.Code)
	assert.JSONEq(t, string(env.Data), string(env2.Data))

	rec, _ = do(t, router, emp1, http.MethodGet, "/employees/EMP002/attendance", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	hr := auth.UserContext{UserID: "hr-1", RoleName: auth.RoleHR}
	rec, _ = do(t, router, hr, http.MethodGet, "/employees/EMP404/attendance", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, router, hr, http.MethodGet, "/employees/EMP001/attendance?month=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
