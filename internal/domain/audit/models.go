package audit

import (
	"encoding/json"
	"time"
)

const (
	ActionGratuityStore      = "gratuity.calculation.store"
	ActionGratuityBatch      = "gratuity.batch.run"
	ActionSettlementCreate   = "gratuity.settlement.create"
	ActionSettlementPayment  = "gratuity.settlement.payment"
	ActionCurrencySelect     = "settings.currency.update"
	EntityEmployeeGratuity   = "employee_gratuity"
	EntityGratuitySettlement = "gratuity_settlement"
	EntityAppSetting         = "app_setting"
)

type Event struct {
	ID         string          `json:"id"`
	ActorID    string          `json:"actorId"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	RequestID  string          `json:"requestId"`
	IP         string          `json:"ip"`
	CreatedAt  time.Time       `json:"createdAt"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
}

type Filter struct {
	Action     string
	EntityType string
	ActorID    string
}

func (f Filter) matches(evt Event) bool {
	return (f.Action == "" || f.Action == evt.Action) &&
		(f.EntityType == "" || f.EntityType == evt.EntityType) &&
		(f.ActorID == "" || f.ActorID == evt.ActorID)
}
