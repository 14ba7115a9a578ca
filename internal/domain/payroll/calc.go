package payroll

import (
	"github.com/shopspring/decimal"
)

type InputLine struct {
	Name   string
	Type   string
	Amount decimal.Decimal
}

func ComputePayroll(baseSalary decimal.Decimal, inputs []InputLine) (gross, deductions, net decimal.Decimal) {
	gross = baseSalary
	for _, input := range inputs {
		switch input.Type {
		case ElementTypeEarning:
			gross = gross.Add(input.Amount)
		case ElementTypeDeduction:
			deductions = deductions.Add(input.Amount)
		}
	}
	net = gross.Sub(deductions)
	return gross, deductions, net
}

// Compose builds the breakdown for sanitized compensation and deductions.
// Net salary is not clamped; a negative net is flagged instead.
func Compose(comp Compensation, deductions []Deduction) Breakdown {
	lines := []InputLine{
		{Name: FieldHousingAllowance, Type: ElementTypeEarning, Amount: comp.HousingAllowance},
		{Name: FieldTransportAllowance, Type: ElementTypeEarning, Amount: comp.TransportAllowance},
		{Name: FieldOtherAllowances, Type: ElementTypeEarning, Amount: comp.OtherAllowances},
		{Name: FieldBonus, Type: ElementTypeEarning, Amount: comp.Bonus},
	}
	items := make([]Deduction, 0, len(deductions))
	for _, d := range deductions {
		lines = append(lines, InputLine{Name: d.Name, Type: ElementTypeDeduction, Amount: d.Amount})
		items = append(items, d)
	}

	gross, total, net := ComputePayroll(comp.BasicSalary, lines)
	b := Breakdown{
		Compensation:    comp,
		GrossSalary:     gross,
		Deductions:      items,
		TotalDeductions: total,
		NetSalary:       net,
		Warnings:        []string{},
	}
	if net.IsNegative() {
		b.NegativeNet = true
		b.Warnings = append(b.Warnings, WarningNegativeNet)
	}
	return b
}

// Allowances is everything in gross except the basic salary.
func (c Compensation) Allowances() decimal.Decimal {
	return c.HousingAllowance.Add(c.TransportAllowance).Add(c.OtherAllowances).Add(c.Bonus)
}
