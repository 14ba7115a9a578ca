package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusActive       = "Active"
	StatusNoticePeriod = "Notice Period"
	StatusTerminated   = "Terminated"
)

type Employee struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Email              string          `json:"email"`
	Department         string          `json:"department"`
	Role               string          `json:"role"`
	Location           string          `json:"location"`
	Nationality        string          `json:"nationality"`
	Status             string          `json:"status"`
	JoinDate           time.Time       `json:"joinDate"`
	BasicSalary        decimal.Decimal `json:"basicSalary"`
	HousingAllowance   decimal.Decimal `json:"housingAllowance"`
	TransportAllowance decimal.Decimal `json:"transportAllowance"`
	OtherAllowances    decimal.Decimal `json:"otherAllowances"`
}

// Employed reports whether the employee still accrues gratuity.
// Staff serving notice are still employed.
func (e Employee) Employed() bool {
	return e.Status == StatusActive || e.Status == StatusNoticePeriod
}
