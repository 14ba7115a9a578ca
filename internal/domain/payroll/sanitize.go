package payroll

import (
	"encoding/json"
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"hrms/internal/domain/employee"
)

// ParseAmount coerces a loosely typed monetary value into a non-negative
// decimal. Missing, unparseable and negative values become zero.
func ParseAmount(v any) decimal.Decimal {
	var d decimal.Decimal
	switch value := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		d = value
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return decimal.Zero
		}
		d = decimal.NewFromFloat(value)
	case float32:
		return ParseAmount(float64(value))
	case int:
		d = decimal.NewFromInt(int64(value))
	case int32:
		d = decimal.NewFromInt32(value)
	case int64:
		d = decimal.NewFromInt(value)
	case json.Number:
		return ParseAmount(string(value))
	case string:
		parsed, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return decimal.Zero
		}
		d = parsed
	default:
		return decimal.Zero
	}
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Sanitize turns raw compensation fields into a fully defaulted record.
func Sanitize(raw map[string]any) Compensation {
	return Compensation{
		BasicSalary:        ParseAmount(raw[FieldBasicSalary]),
		HousingAllowance:   ParseAmount(raw[FieldHousingAllowance]),
		TransportAllowance: ParseAmount(raw[FieldTransportAllowance]),
		OtherAllowances:    ParseAmount(raw[FieldOtherAllowances]),
		Bonus:              ParseAmount(raw[FieldBonus]),
	}
}

func FromEmployee(emp employee.Employee) Compensation {
	return Compensation{
		BasicSalary:        ParseAmount(emp.BasicSalary),
		HousingAllowance:   ParseAmount(emp.HousingAllowance),
		TransportAllowance: ParseAmount(emp.TransportAllowance),
		OtherAllowances:    ParseAmount(emp.OtherAllowances),
		Bonus:              decimal.Zero,
	}
}

func DefaultDeductions(healthInsurance decimal.Decimal) []Deduction {
	return []Deduction{
		{Name: DeductionHealthInsurance, Amount: ParseAmount(healthInsurance)},
		{Name: DeductionOther, Amount: decimal.Zero},
	}
}

// MergeDeductions applies per-request overrides on top of the configured
// deductions. Overridden items keep their position; new names are appended
// in sorted order so the result is deterministic.
func MergeDeductions(defaults []Deduction, overrides map[string]any) []Deduction {
	out := make([]Deduction, 0, len(defaults)+len(overrides))
	seen := make(map[string]bool, len(defaults))
	for _, d := range defaults {
		if raw, ok := overrides[d.Name]; ok {
			d.Amount = ParseAmount(raw)
		}
		seen[d.Name] = true
		out = append(out, d)
	}

	var extra []string
	for name := range overrides {
		if strings.TrimSpace(name) == "" || seen[name] {
			continue
		}
		extra = append(extra, name)
	}
	sort.Strings(extra)
	for _, name := range extra {
		out = append(out, Deduction{Name: name, Amount: ParseAmount(overrides[name])})
	}
	return out
}
