package payrollhandler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/currency"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/gratuity"
	"hrms/internal/domain/payroll"
	"hrms/internal/transport/http/middleware"
)

var fixedAt = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	employees := employee.NewMemoryStore(employee.Fixtures()...)
	calc := gratuity.NewCalculator(gratuity.Options{}).WithClock(func() time.Time { return fixedAt })
	gratuitySvc := gratuity.NewService(gratuity.NewMemoryStore(), employees, calc)
	svc := payroll.NewService(employees, gratuitySvc, payroll.DefaultDeductions(decimal.NewFromInt(payroll.DefaultHealthInsurance)))
	registry := currency.NewRegistry(currency.DefaultCatalog(), currency.NewMemoryStore(), "")
	enforcer, err := auth.NewEnforcer()
	require.NoError(t, err)

	h := NewHandler(svc, registry, enforcer)
	h.now = func() time.Time { return fixedAt }
	router := chi.NewRouter()
	h.RegisterRoutes(router)
	return router
}

func do(t *testing.T, h http.Handler, user auth.UserContext, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUser(req.Context(), user))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	if out != nil {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return env
}

var (
	hrUser = auth.UserContext{UserID: "hr-1", RoleName: auth.RoleHR}
	emp1   = auth.UserContext{UserID: "u-1", EmployeeID: "EMP001", RoleName: auth.RoleEmployee}
)

func TestComposeEndpoint(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, emp1, http.MethodPost, "/payroll/compose",
		`{"basicSalary":10000,"housingAllowance":"3000","transportAllowance":1000,"otherAllowances":"abc","bonus":500}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var data struct {
		GrossSalary     decimal.Decimal   `json:"grossSalary"`
		TotalDeductions decimal.Decimal   `json:"totalDeductions"`
		NetSalary       decimal.Decimal   `json:"netSalary"`
		OtherAllowances decimal.Decimal   `json:"otherAllowances"`
		NegativeNet     bool              `json:"negativeNet"`
		Display         map[string]string `json:"display"`
	}
	decode(t, rec, &data)
	assert.True(t, data.GrossSalary.Equal(decimal.NewFromInt(14500)))
	assert.True(t, data.TotalDeductions.Equal(decimal.NewFromInt(500)))
	assert.True(t, data.NetSalary.Equal(decimal.NewFromInt(14000)))
	assert.True(t, data.OtherAllowances.IsZero())
	assert.False(t, data.NegativeNet)
	assert.Equal(t, "$14,000.00", data.Display["netSalary"])
}

func TestComposeEndpointOverrides(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, hrUser, http.MethodPost, "/payroll/compose",
		`{"basicSalary":1000,"deductions":{"healthInsurance":0,"loan":"1500"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var data struct {
		NetSalary   decimal.Decimal `json:"netSalary"`
		NegativeNet bool            `json:"negativeNet"`
		Warnings    []string        `json:"warnings"`
	}
	decode(t, rec, &data)
	assert.True(t, data.NetSalary.Equal(decimal.NewFromInt(-500)))
	assert.True(t, data.NegativeNet)
	assert.Contains(t, data.Warnings, payroll.WarningNegativeNet)

	rec = do(t, router, hrUser, http.MethodPost, "/payroll/compose", `{"basicSalary":1000,"deductions":[1,2]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, hrUser, http.MethodPost, "/payroll/compose", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEmployeePayrollEndpoint(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, emp1, http.MethodGet, "/employees/EMP001/payroll", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var view payroll.EmployeePayroll
	decode(t, rec, &view)
	assert.Equal(t, "EMP001", view.EmployeeID)
	assert.True(t, view.Breakdown.GrossSalary.Equal(decimal.NewFromInt(18000)))
	assert.True(t, view.GratuityAccrued.IsPositive())

	rec = do(t, router, emp1, http.MethodGet, "/employees/EMP002/payroll", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, router, hrUser, http.MethodGet, "/employees/EMP404/payroll", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPayslipEndpoint(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, emp1, http.MethodGet, "/employees/EMP001/payslip?year=2025&month=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "payslip-EMP001-2025-02.pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	rec = do(t, router, emp1, http.MethodGet, "/employees/EMP001/payslip?month=14", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterEndpoint(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, emp1, http.MethodGet, "/payroll/register", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, router, hrUser, http.MethodGet, "/payroll/register?format=json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []payroll.RegisterRow
	decode(t, rec, &rows)
	assert.Len(t, rows, 9)

	rec = do(t, router, hrUser, http.MethodGet, "/payroll/register", "")
	require.Equal(t, http.StatusOK, rec.Code)
	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	first, err := f.GetCellValue("Register", "A2")
	require.NoError(t, err)
	assert.Equal(t, "EMP001", first)
}
