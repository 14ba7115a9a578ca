package currencyhandler

import (
	"context"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/currency"
	"hrms/internal/transport/http/middleware"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newRouter(t *testing.T) (http.Handler, *currency.Registry) {
	t.Helper()
	registry := currency.NewRegistry(currency.DefaultCatalog(), currency.NewMemoryStore(), "")
	enforcer, err := auth.NewEnforcer()
	require.NoError(t, err)
	router := chi.NewRouter()
	NewHandler(registry, enforcer).RegisterRoutes(router)
	return router, registry
}

func do(t *testing.T, h http.Handler, role, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUser(req.Context(), auth.UserContext{UserID: "u-" + role, RoleName: role}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestListCurrencies(t *testing.T) {
	router, _ := newRouter(t)
	rec, env := do(t, router, auth.RoleEmployee, http.MethodGet, "/currencies", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []currency.Currency
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 16)
	assert.Equal(t, "USD", list[0].Code)
}

func TestSetSelectedCurrency(t *testing.T) {
	router, registry := newRouter(t)

	rec, env := do(t, router, auth.RoleHR, http.MethodPut, "/settings/currency", `{"code":"EUR"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var selected currency.Currency
	require.NoError(t, json.Unmarshal(env.Data, &selected))
	assert.Equal(t, "EUR", selected.Code)
	assert.Equal(t, "EUR", registry.Selected().Code)

	rec, env = do(t, router, auth.RoleEmployee, http.MethodGet, "/settings/currency", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &selected))
	assert.Equal(t, "EUR", selected.Code)
}

func TestSetSelectedCurrencyRejections(t *testing.T) {
	router, registry := newRouter(t)

	rec, env := do(t, router, auth.RoleHR, http.MethodPut, "/settings/currency", `{"code":"XYZ"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "unknown_currency", env.Error.Code)

	rec, env = do(t, router, auth.RoleHR, http.MethodPut, "/settings/currency", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", env.Error.Code)

	rec, _ = do(t, router, auth.RoleEmployee, http.MethodPut, "/settings/currency", `{"code":"EUR"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	assert.Equal(t, "USD", registry.Selected().Code)
}

func TestFormatEndpoint(t *testing.T) {
	router, _ := newRouter(t)

	cases := []struct {
		body string
		want string
	}{
		{`{"amount":"1234567.89"}`, "$1,234,567.89"},
		{`{"amount":1234567.89,"code":"BRL"}`, "R$1.234.567,89"},
		{`{"amount":"1000","showCode":true}`, "$1,000.00 USD"},
		{`{"amount":"1250000","compact":true}`, "$1.3M"},
		{`{"amount":"500000","code":"INR","compact":true}`, "₹5L"},
	}
	for _, tc := range cases {
		rec, env := do(t, router, auth.RoleEmployee, http.MethodPost, "/currencies/format", tc.body)
		require.Equal(t, http.StatusOK, rec.Code, tc.body)
		var data struct {
			Formatted string `json:"formatted"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, tc.want, data.Formatted, tc.body)
	}

	rec, env := do(t, router, auth.RoleEmployee, http.MethodPost, "/currencies/format", `{"amount":"1","code":"XYZ"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "unknown_currency", env.Error.Code)

	rec, _ = do(t, router, auth.RoleEmployee, http.MethodPost, "/currencies/format", `{"code":"USD"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetSelectedCurrencyRecordsAudit(t *testing.T) {
	registry := currency.NewRegistry(currency.DefaultCatalog(), currency.NewMemoryStore(), "")
	enforcer, err := auth.NewEnforcer()
	require.NoError(t, err)
	h := NewHandler(registry, enforcer)
	h.Audit = audit.New(audit.NewMemoryStore())
	router := chi.NewRouter()
	h.RegisterRoutes(router)

	rec, _ := do(t, router, auth.RoleHR, http.MethodPut, "/settings/currency", `{"code":"GBP"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, router, auth.RoleHR, http.MethodPut, "/settings/currency", `{"code":"XYZ"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	events, err := h.Audit.List(context.Background(), audit.Filter{Action: audit.ActionCurrencySelect}, true, 10, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "u-hr", events[0].ActorID)
	assert.JSONEq(t, `{"code":"USD"}`, string(events[0].Before))
	assert.JSONEq(t, `{"code":"GBP"}`, string(events[0].After))
}
