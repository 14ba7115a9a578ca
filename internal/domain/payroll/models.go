package payroll

import (
	"github.com/shopspring/decimal"
)

// Compensation is a fully defaulted set of monthly pay fields. Every field is
// non-negative once it has passed through Sanitize.
type Compensation struct {
	BasicSalary        decimal.Decimal `json:"basicSalary"`
	HousingAllowance   decimal.Decimal `json:"housingAllowance"`
	TransportAllowance decimal.Decimal `json:"transportAllowance"`
	OtherAllowances    decimal.Decimal `json:"otherAllowances"`
	Bonus              decimal.Decimal `json:"bonus"`
}

type Deduction struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type Breakdown struct {
	Compensation
	GrossSalary     decimal.Decimal `json:"grossSalary"`
	Deductions      []Deduction     `json:"deductions"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	NetSalary       decimal.Decimal `json:"netSalary"`
	NegativeNet     bool            `json:"negativeNet"`
	Warnings        []string        `json:"warnings"`
}

// Deduction returns the named deduction amount, or zero.
func (b Breakdown) Deduction(name string) decimal.Decimal {
	for _, d := range b.Deductions {
		if d.Name == name {
			return d.Amount
		}
	}
	return decimal.Zero
}

type EmployeePayroll struct {
	EmployeeID      string          `json:"employeeId"`
	Name            string          `json:"name"`
	Department      string          `json:"department"`
	Breakdown       Breakdown       `json:"currentSalary"`
	GratuityAccrued decimal.Decimal `json:"gratuityAccrued"`
	YearsOfService  decimal.Decimal `json:"yearsOfService"`
}

type RegisterRow struct {
	EmployeeID      string          `json:"employeeId"`
	Name            string          `json:"name"`
	Department      string          `json:"department"`
	BasicSalary     decimal.Decimal `json:"basicSalary"`
	Allowances      decimal.Decimal `json:"allowances"`
	Gross           decimal.Decimal `json:"grossSalary"`
	Deductions      decimal.Decimal `json:"totalDeductions"`
	Net             decimal.Decimal `json:"netSalary"`
	GratuityAccrued decimal.Decimal `json:"gratuityAccrued"`
}
