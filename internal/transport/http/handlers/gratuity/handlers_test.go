package gratuityhandler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/currency"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/gratuity"
	"hrms/internal/platform/jobs"
	"hrms/internal/transport/http/middleware"
)

var (
	hrUser  = auth.UserContext{UserID: "hr-1", RoleName: auth.RoleHR}
	emp1    = auth.UserContext{UserID: "u-1", EmployeeID: "EMP001", RoleName: auth.RoleEmployee}
	emp2    = auth.UserContext{UserID: "u-2", EmployeeID: "EMP002", RoleName: auth.RoleEmployee}
	fixedAt = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newHandler(t *testing.T) *Handler {
	t.Helper()
	employees := employee.NewMemoryStore(employee.Fixtures()...)
	calc := gratuity.NewCalculator(gratuity.Options{}).WithClock(func() time.Time { return fixedAt })
	svc := gratuity.NewService(gratuity.NewMemoryStore(), employees, calc)
	registry := currency.NewRegistry(currency.DefaultCatalog(), currency.NewMemoryStore(), "")
	enforcer, err := auth.NewEnforcer()
	require.NoError(t, err)

	h := NewHandler(svc, registry, jobs.New(jobs.NewMemoryStore(), svc, 0), enforcer)
	h.Audit = audit.New(audit.NewMemoryStore())
	return h
}

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	router := chi.NewRouter()
	newHandler(t).RegisterRoutes(router)
	return router
}

func do(t *testing.T, h http.Handler, user *auth.UserContext, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if user != nil {
		req = req.WithContext(middleware.WithUser(req.Context(), *user))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestCalculateEndpoint(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, &emp1, http.MethodPost, "/gratuity/calculate", `{"joinDate":"2020-01-01","basicSalary":"3000","asOf":"2022-01-01"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var data struct {
		Result struct {
			Amount string `json:"amount"`
		} `json:"result"`
		Formatted string `json:"formatted"`
		Currency  string `json:"currency"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &data))
	assert.Equal(t, "4203", data.Result.Amount)
	assert.Equal(t, "$4,203.00", data.Formatted)
	assert.Equal(t, "USD", data.Currency)
}

func TestCalculateEndpointAcceptsNumericSalary(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, &emp1, http.MethodPost, "/gratuity/calculate", `{"joinDate":"2019-03-01","basicSalary":9000,"asOf":"2025-03-01"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var data struct {
		Result struct {
			Amount string `json:"amount"`
		} `json:"result"`
		Formatted string `json:"formatted"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &data))
	// 2192 days is 6.0014 years, so the second tier slightly exceeds 9000.
	assert.Equal(t, "40512", data.Result.Amount)
	assert.Equal(t, "$40,512.00", data.Formatted)
}

func TestCalculateEndpointRejectsBadInput(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, &hrUser, http.MethodPost, "/gratuity/calculate", `{"joinDate":"2022-01-01","basicSalary":"3000","asOf":"2021-01-01"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "invalid_gratuity_input", decode(t, rec).Error.Code)

	rec = do(t, router, &hrUser, http.MethodPost, "/gratuity/calculate", `{"joinDate":"2022-01-01"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", decode(t, rec).Error.Code)

	rec = do(t, router, &hrUser, http.MethodPost, "/gratuity/calculate", `{"joinDate":"2022-01-01","basicSalary":"-1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", decode(t, rec).Error.Code)

	rec = do(t, router, &hrUser, http.MethodPost, "/gratuity/calculate", `{"joinDate":"2022-01-01","basicSalary":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_payload", decode(t, rec).Error.Code)

	rec = do(t, router, nil, http.MethodPost, "/gratuity/calculate", `{}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEmployeeGratuityAccess(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, &emp1, http.MethodGet, "/employees/EMP001/gratuity", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, &emp2, http.MethodGet, "/employees/EMP001/gratuity", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, router, &hrUser, http.MethodGet, "/employees/EMP404/gratuity", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "employee_not_found", decode(t, rec).Error.Code)

	rec = do(t, router, &hrUser, http.MethodGet, "/employees/EMP001/gratuity?asOf=not-a-date", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStoreAndHistory(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, &hrUser, http.MethodGet, "/employees/EMP001/gratuity/current", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, &emp1, http.MethodPost, "/employees/EMP001/gratuity", `{}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, router, &hrUser, http.MethodPost, "/employees/EMP001/gratuity", `{"calculationType":"annual","notes":"year end"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, router, &hrUser, http.MethodPost, "/employees/EMP001/gratuity", `{"calculationType":"weekly"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, &emp1, http.MethodGet, "/employees/EMP001/gratuity/current", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, &emp1, http.MethodGet, "/employees/EMP001/gratuity/history?limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var history []gratuity.HistoryEntry
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &history))
	require.Len(t, history, 1)
	assert.Equal(t, gratuity.CalculationAnnual, history[0].CalculationType)
	assert.Equal(t, "hr-1", history[0].CreatedBy)
}

func TestSettlementLifecycle(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, &hrUser, http.MethodPost, "/employees/EMP004/gratuity/settlements", `{"settlementDate":"2025-03-01","notes":"resigned"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created gratuity.Settlement
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &created))
	assert.Equal(t, gratuity.PaymentPending, created.PaymentStatus)
	assert.True(t, created.TotalAmount.IsPositive())

	rec = do(t, router, &hrUser, http.MethodPatch, "/gratuity/settlements/"+created.ID, `{"paymentStatus":"bogus"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, &hrUser, http.MethodPatch, "/gratuity/settlements/"+created.ID, `{"paymentStatus":"paid","paymentMethod":"bank"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var paid gratuity.Settlement
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &paid))
	assert.Equal(t, gratuity.PaymentPaid, paid.PaymentStatus)
	require.NotNil(t, paid.PaymentDate)

	rec = do(t, router, &hrUser, http.MethodPatch, "/gratuity/settlements/missing", `{"paymentStatus":"paid"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, &hrUser, http.MethodGet, "/employees/EMP004/gratuity/settlements", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []gratuity.Settlement
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &list))
	assert.Len(t, list, 1)
}

func TestBatchAndRuns(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, &hrUser, http.MethodPost, "/gratuity/batch", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result gratuity.BatchResult
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &result))
	assert.Equal(t, 9, result.Total)
	assert.Equal(t, 9, result.Success)

	rec = do(t, router, &hrUser, http.MethodGet, "/gratuity/batch/runs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var runs []jobs.Run
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, jobs.StatusCompleted, runs[0].Status)
}

func TestStatementPDF(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, &emp1, http.MethodGet, "/employees/EMP001/gratuity/statement", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestMutationsRecordAuditEvents(t *testing.T) {
	h := newHandler(t)
	router := chi.NewRouter()
	h.RegisterRoutes(router)

	rec := do(t, router, &hrUser, http.MethodPost, "/employees/EMP001/gratuity", `{"calculationType":"monthly"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = do(t, router, &hrUser, http.MethodPost, "/employees/EMP004/gratuity/settlements", `{}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = do(t, router, &emp1, http.MethodPost, "/employees/EMP001/gratuity", `{"calculationType":"monthly"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)

	ctx := context.Background()
	events, err := h.Audit.List(ctx, audit.Filter{ActorID: hrUser.UserID}, false, 10, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)

	stored, err := h.Audit.Count(ctx, audit.Filter{Action: audit.ActionGratuityStore})
	require.NoError(t, err)
	assert.Equal(t, 1, stored)
	settled, err := h.Audit.Count(ctx, audit.Filter{EntityType: audit.EntityGratuitySettlement})
	require.NoError(t, err)
	assert.Equal(t, 1, settled)
}
