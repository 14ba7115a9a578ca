package gratuity

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is a process-local StoreAPI used when no database is configured.
type MemoryStore struct {
	mu          sync.RWMutex
	current     map[string]Record
	history     []HistoryEntry
	settlements map[string]Settlement
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		current:     make(map[string]Record),
		settlements: make(map[string]Settlement),
	}
}

func (m *MemoryStore) SaveCalculation(_ context.Context, record Record, entry HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current[record.EmployeeID] = record
	m.history = append(m.history, entry)
	return nil
}

func (m *MemoryStore) GetCurrent(_ context.Context, employeeID string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.current[employeeID]
	if !ok {
		return Record{}, ErrRecordNotFound
	}
	return record, nil
}

func (m *MemoryStore) ListHistory(_ context.Context, employeeID string, limit int) ([]HistoryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []HistoryEntry
	for _, entry := range m.history {
		if entry.EmployeeID == employeeID {
			out = append(out, entry)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CalculationDate.Equal(out[j].CalculationDate) {
			return out[i].CalculationDate.After(out[j].CalculationDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) CreateSettlement(_ context.Context, settlement Settlement, entry HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settlements[settlement.ID] = settlement
	m.history = append(m.history, entry)
	return nil
}

func (m *MemoryStore) GetSettlement(_ context.Context, settlementID string) (Settlement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.settlements[settlementID]
	if !ok {
		return Settlement{}, ErrSettlementNotFound
	}
	return st, nil
}

func (m *MemoryStore) ListSettlements(_ context.Context, employeeID string) ([]Settlement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Settlement
	for _, st := range m.settlements {
		if st.EmployeeID == employeeID {
			out = append(out, st)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].SettlementDate.Equal(out[j].SettlementDate) {
			return out[i].SettlementDate.After(out[j].SettlementDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryStore) UpdateSettlementPayment(_ context.Context, settlementID, status string, details PaymentDetails) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.settlements[settlementID]
	if !ok {
		return ErrSettlementNotFound
	}
	st.PaymentStatus = status
	if details.PaymentDate != nil {
		st.PaymentDate = details.PaymentDate
	}
	if details.PaymentMethod != "" {
		st.PaymentMethod = details.PaymentMethod
	}
	if details.PaymentReference != "" {
		st.PaymentReference = details.PaymentReference
	}
	st.UpdatedAt = time.Now().UTC()
	m.settlements[settlementID] = st
	return nil
}
