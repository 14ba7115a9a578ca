package gratuity

import "context"

type StoreAPI interface {
	SaveCalculation(ctx context.Context, record Record, entry HistoryEntry) error
	GetCurrent(ctx context.Context, employeeID string) (Record, error)
	ListHistory(ctx context.Context, employeeID string, limit int) ([]HistoryEntry, error)
	CreateSettlement(ctx context.Context, settlement Settlement, entry HistoryEntry) error
	GetSettlement(ctx context.Context, settlementID string) (Settlement, error)
	ListSettlements(ctx context.Context, employeeID string) ([]Settlement, error)
	UpdateSettlementPayment(ctx context.Context, settlementID, status string, details PaymentDetails) error
}
