package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestComputePayroll(t *testing.T) {
	inputs := []InputLine{
		{Type: "earning", Amount: d(200)},
		{Type: "earning", Amount: d(50)},
		{Type: "deduction", Amount: d(100)},
	}

	gross, deductions, net := ComputePayroll(d(1000), inputs)
	if !gross.Equal(d(1250)) {
		t.Fatalf("expected gross 1250, got %s", gross)
	}
	if !deductions.Equal(d(100)) {
		t.Fatalf("expected deductions 100, got %s", deductions)
	}
	if !net.Equal(d(1150)) {
		t.Fatalf("expected net 1150, got %s", net)
	}
}

func TestComputePayrollIgnoresUnknownTypes(t *testing.T) {
	inputs := []InputLine{
		{Type: "bonus", Amount: d(100)},
		{Type: "deduction", Amount: d(25)},
	}
	gross, deductions, net := ComputePayroll(d(500), inputs)
	if !gross.Equal(d(500)) {
		t.Fatalf("expected gross 500, got %s", gross)
	}
	if !deductions.Equal(d(25)) {
		t.Fatalf("expected deductions 25, got %s", deductions)
	}
	if !net.Equal(d(475)) {
		t.Fatalf("expected net 475, got %s", net)
	}
}

func TestComposeUAEPackage(t *testing.T) {
	comp := Compensation{
		BasicSalary:        d(12000),
		HousingAllowance:   d(4000),
		TransportAllowance: d(2000),
	}
	b := Compose(comp, DefaultDeductions(d(DefaultHealthInsurance)))

	if !b.GrossSalary.Equal(d(18000)) {
		t.Fatalf("expected gross 18000, got %s", b.GrossSalary)
	}
	if !b.TotalDeductions.Equal(d(500)) {
		t.Fatalf("expected deductions 500, got %s", b.TotalDeductions)
	}
	if !b.NetSalary.Equal(d(17500)) {
		t.Fatalf("expected net 17500, got %s", b.NetSalary)
	}
	if !b.Deduction(DeductionHealthInsurance).Equal(d(500)) || !b.Deduction(DeductionOther).IsZero() {
		t.Fatalf("unexpected itemized deductions: %+v", b.Deductions)
	}
	if b.NegativeNet || len(b.Warnings) != 0 {
		t.Fatalf("did not expect warnings, got %v", b.Warnings)
	}
}

func TestComposeFlagsNegativeNet(t *testing.T) {
	b := Compose(Compensation{BasicSalary: d(300)}, DefaultDeductions(d(500)))
	if !b.NetSalary.Equal(d(-200)) {
		t.Fatalf("expected net -200, got %s", b.NetSalary)
	}
	if !b.NegativeNet || len(b.Warnings) != 1 || b.Warnings[0] != WarningNegativeNet {
		t.Fatalf("expected negative net warning, got %+v", b)
	}
}

func TestComposeNetPlusDeductionsEqualsGross(t *testing.T) {
	values := []string{"0", "0.01", "1234.56", "99999.999", "18000", "0.3333333333"}
	for _, basic := range values {
		for _, allowance := range values {
			for _, deduction := range values {
				comp := Compensation{
					BasicSalary:        decimal.RequireFromString(basic),
					HousingAllowance:   decimal.RequireFromString(allowance),
					TransportAllowance: decimal.RequireFromString(allowance),
					OtherAllowances:    decimal.RequireFromString(deduction),
					Bonus:              decimal.RequireFromString(basic),
				}
				b := Compose(comp, []Deduction{
					{Name: DeductionHealthInsurance, Amount: decimal.RequireFromString(deduction)},
					{Name: DeductionOther, Amount: decimal.RequireFromString(allowance)},
				})
				if !b.NetSalary.Add(b.TotalDeductions).Equal(b.GrossSalary) {
					t.Fatalf("identity broken for %s/%s/%s: net %s + deductions %s != gross %s",
						basic, allowance, deduction, b.NetSalary, b.TotalDeductions, b.GrossSalary)
				}
			}
		}
	}
}

func TestComposeIsDeterministic(t *testing.T) {
	comp := Sanitize(map[string]any{"basicSalary": "14000", "housingAllowance": 5000.5, "bonus": "oops"})
	first := Compose(comp, DefaultDeductions(d(500)))
	second := Compose(comp, DefaultDeductions(d(500)))
	if !first.NetSalary.Equal(second.NetSalary) || !first.GrossSalary.Equal(second.GrossSalary) {
		t.Fatalf("expected identical breakdowns, got %+v and %+v", first, second)
	}
}
