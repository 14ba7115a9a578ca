package currencyhandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/currency"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Registry *currency.Registry
	Audit    *audit.Service
	Perms    middleware.PermissionStore
}

func NewHandler(registry *currency.Registry, perms middleware.PermissionStore) *Handler {
	return &Handler{Registry: registry, Perms: perms}
}

type selectionPayload struct {
	Code string `json:"code"`
}

type formatPayload struct {
	Amount   *decimal.Decimal `json:"amount"`
	Code     string           `json:"code"`
	Compact  bool             `json:"compact"`
	ShowCode bool             `json:"showCode"`
}

type formatResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Formatted string          `json:"formatted"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermCurrencyRead, h.Perms)).Get("/currencies", h.handleListCurrencies)
	r.With(middleware.RequirePermission(auth.PermCurrencyRead, h.Perms)).Post("/currencies/format", h.handleFormat)
	r.With(middleware.RequirePermission(auth.PermCurrencyRead, h.Perms)).Get("/settings/currency", h.handleGetSelected)
	r.With(middleware.RequirePermission(auth.PermCurrencyWrite, h.Perms)).Put("/settings/currency", h.handleSetSelected)
}

func (h *Handler) handleListCurrencies(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Registry.Catalog().All(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetSelected(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Registry.Selected(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSetSelected(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload selectionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	validator := shared.NewValidator()
	validator.Required("code", payload.Code, "is required")
	if validator.Reject(w, requestID) {
		return
	}

	before := h.Registry.Selected().Code
	ok, err := h.Registry.SetSelected(r.Context(), strings.TrimSpace(payload.Code))
	if err != nil {
		slog.Warn("currency selection persist failed", "code", payload.Code, "err", err)
		api.Fail(w, http.StatusInternalServerError, "currency_update_failed", "failed to save currency", requestID)
		return
	}
	if !ok {
		api.Fail(w, http.StatusUnprocessableEntity, "unknown_currency", "currency code is not supported", requestID)
		return
	}
	selected := h.Registry.Selected()
	user, _ := middleware.GetUser(r.Context())
	if err := h.Audit.Record(r.Context(), user.UserID, audit.ActionCurrencySelect, audit.EntityAppSetting, currency.DefaultSettingsKey, requestID, shared.ClientIP(r), map[string]string{"code": before}, map[string]string{"code": selected.Code}); err != nil {
		slog.Warn("audit settings.currency.update failed", "err", err)
	}
	api.Success(w, selected, requestID)
}

func (h *Handler) handleFormat(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload formatPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if payload.Amount == nil {
		shared.FailField(w, requestID, "amount", "is required")
		return
	}

	c := h.Registry.Selected()
	if code := strings.TrimSpace(payload.Code); code != "" {
		found, ok := h.Registry.Catalog().ByCode(code)
		if !ok {
			api.Fail(w, http.StatusUnprocessableEntity, "unknown_currency", "currency code is not supported", requestID)
			return
		}
		c = found
	}

	var formatted string
	switch {
	case payload.Compact:
		formatted = currency.FormatCompact(*payload.Amount, c)
	default:
		formatted = currency.FormatWith(*payload.Amount, c, currency.FormatOptions{ShowCode: payload.ShowCode})
	}
	api.Success(w, formatResponse{Amount: *payload.Amount, Currency: c.Code, Formatted: formatted}, requestID)
}
