package employee

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Fixtures is the demo workforce seeded into a fresh database and served
// by MemoryStore when no database is configured.
func Fixtures() []Employee {
	return []Employee{
		fixture("EMP001", "Ahmed Al Hashimi", "ahmed.alhashimi@company.com", "Engineering", "Software Engineer", "Dubai", "Emirati", StatusActive, "2022-01-15", 12000, 4000, 2000),
		fixture("EMP002", "Rajesh Kumar", "rajesh.kumar@company.com", "Engineering", "Senior Software Engineer", "Abu Dhabi", "Indian", StatusActive, "2022-01-15", 14000, 5000, 3000),
		fixture("EMP003", "Sarah Johnson", "sarah.johnson@company.com", "Marketing", "Marketing Manager", "Dubai", "American", StatusActive, "2021-06-10", 18000, 7000, 3000),
		fixture("EMP004", "Mohammed Al Ali", "mohammed.alali@company.com", "Sales", "Sales Executive", "Sharjah", "Emirati", StatusNoticePeriod, "2020-03-22", 10000, 3500, 1500),
		fixture("EMP005", "Fatima Al Zaabi", "fatima.alzaabi@company.com", "HR", "HR Manager", "Abu Dhabi", "Emirati", StatusActive, "2019-08-05", 20000, 8000, 4000),
		fixture("EMP006", "David Miller", "david.miller@company.com", "Operations", "Operations Lead", "Dubai", "British", StatusActive, "2021-11-18", 13000, 5000, 2000),
		fixture("EMP007", "Priya Sharma", "priya.sharma@company.com", "Finance", "Financial Analyst", "Ajman", "Indian", StatusActive, "2022-04-12", 12000, 4000, 2000),
		fixture("EMP008", "Khalid Al Mazrouei", "khalid.almazrouei@company.com", "Engineering", "Product Manager", "Abu Dhabi", "Emirati", StatusActive, "2020-09-30", 19000, 7500, 3500),
		fixture("EMP009", "Maria Rodriguez", "maria.rodriguez@company.com", "Design", "UI/UX Designer", "Dubai", "Spanish", StatusActive, "2023-01-20", 11000, 3500, 1500),
	}
}

func fixture(id, name, email, department, role, location, nationality, status, joinDate string, basic, housing, transport int64) Employee {
	joined, err := time.Parse(time.DateOnly, joinDate)
	if err != nil {
		panic(err)
	}
	return Employee{
		ID:                 id,
		Name:               name,
		Email:              email,
		Department:         department,
		Role:               role,
		Location:           location,
		Nationality:        nationality,
		Status:             status,
		JoinDate:           joined,
		BasicSalary:        decimal.NewFromInt(basic),
		HousingAllowance:   decimal.NewFromInt(housing),
		TransportAllowance: decimal.NewFromInt(transport),
		OtherAllowances:    decimal.Zero,
	}
}

// MemoryStore keeps employees in process.
type MemoryStore struct {
	mu        sync.RWMutex
	employees map[string]Employee
}

func NewMemoryStore(seed ...Employee) *MemoryStore {
	store := &MemoryStore{employees: make(map[string]Employee, len(seed))}
	for _, emp := range seed {
		store.employees[emp.ID] = emp
	}
	return store
}

func (m *MemoryStore) Get(_ context.Context, id string) (Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	emp, ok := m.employees[id]
	if !ok {
		return Employee{}, ErrNotFound
	}
	return emp, nil
}

func (m *MemoryStore) List(_ context.Context) ([]Employee, error) {
	return m.filter(func(Employee) bool { return true }), nil
}

func (m *MemoryStore) ListActive(_ context.Context) ([]Employee, error) {
	return m.filter(Employee.Employed), nil
}

func (m *MemoryStore) Upsert(_ context.Context, emp Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employees[emp.ID] = emp
	return nil
}

func (m *MemoryStore) filter(keep func(Employee) bool) []Employee {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Employee, 0, len(m.employees))
	for _, emp := range m.employees {
		if keep(emp) {
			out = append(out, emp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
