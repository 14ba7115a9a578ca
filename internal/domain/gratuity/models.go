package gratuity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CalculationMonthly    = "monthly"
	CalculationAnnual     = "annual"
	CalculationSettlement = "settlement"
	CalculationAdjustment = "adjustment"

	PaymentPending   = "pending"
	PaymentPaid      = "paid"
	PaymentCancelled = "cancelled"
)

var CalculationTypes = []string{CalculationMonthly, CalculationAnnual, CalculationSettlement, CalculationAdjustment}

var PaymentStatuses = []string{PaymentPending, PaymentPaid, PaymentCancelled}

// Result is a single gratuity evaluation. It is derived, never stored as-is.
type Result struct {
	JoinDate              time.Time       `json:"joinDate"`
	AsOf                  time.Time       `json:"asOf"`
	BasicSalary           decimal.Decimal `json:"basicSalary"`
	YearsOfService        decimal.Decimal `json:"yearsOfService"`
	DailyWage             decimal.Decimal `json:"dailyWage"`
	FirstFiveYearsAmount  decimal.Decimal `json:"firstFiveYearsAmount"`
	AdditionalYearsAmount decimal.Decimal `json:"additionalYearsAmount"`
	Capped                bool            `json:"capped"`
	Amount                decimal.Decimal `json:"amount"`
	Breakdown             []string        `json:"breakdown"`
}

// Record is the latest stored evaluation for an employee.
type Record struct {
	EmployeeID      string          `json:"employeeId"`
	Amount          decimal.Decimal `json:"amount"`
	YearsOfService  decimal.Decimal `json:"yearsOfService"`
	DailyWage       decimal.Decimal `json:"dailyWage"`
	BasicSalary     decimal.Decimal `json:"basicSalary"`
	CalculationDate time.Time       `json:"calculationDate"`
	LastUpdated     time.Time       `json:"lastUpdated"`
}

type HistoryEntry struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employeeId"`
	Amount          decimal.Decimal `json:"amount"`
	YearsOfService  decimal.Decimal `json:"yearsOfService"`
	DailyWage       decimal.Decimal `json:"dailyWage"`
	BasicSalary     decimal.Decimal `json:"basicSalary"`
	CalculationDate time.Time       `json:"calculationDate"`
	CalculationType string          `json:"calculationType"`
	Notes           string          `json:"notes,omitempty"`
	CreatedBy       string          `json:"createdBy,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type Settlement struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employeeId"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	YearsOfService   decimal.Decimal `json:"yearsOfService"`
	FinalBasicSalary decimal.Decimal `json:"finalBasicSalary"`
	SettlementDate   time.Time       `json:"settlementDate"`
	PaymentStatus    string          `json:"paymentStatus"`
	ApprovedBy       string          `json:"approvedBy,omitempty"`
	ApprovedAt       *time.Time      `json:"approvedAt,omitempty"`
	PaymentDate      *time.Time      `json:"paymentDate,omitempty"`
	PaymentMethod    string          `json:"paymentMethod,omitempty"`
	PaymentReference string          `json:"paymentReference,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

type PaymentDetails struct {
	PaymentDate      *time.Time
	PaymentMethod    string
	PaymentReference string
}

type BatchError struct {
	EmployeeID string `json:"employeeId"`
	Error      string `json:"error"`
}

type BatchResult struct {
	Total   int          `json:"total"`
	Success int          `json:"success"`
	Failed  int          `json:"failed"`
	Errors  []BatchError `json:"errors"`
}
