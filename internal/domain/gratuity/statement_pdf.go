package gratuity

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"hrms/internal/domain/currency"
	"hrms/internal/domain/employee"
)

type Statement struct {
	Employee    employee.Employee
	Result      Result
	History     []HistoryEntry
	Settlements []Settlement
	Currency    currency.Currency
	GeneratedAt time.Time
}

func (s *Service) Statement(ctx context.Context, employeeID string, cur currency.Currency) (Statement, error) {
	res, emp, err := s.CalculateForEmployee(ctx, employeeID, time.Time{})
	if err != nil {
		return Statement{}, err
	}
	history, err := s.History(ctx, employeeID, DefaultHistoryLimit)
	if err != nil {
		return Statement{}, err
	}
	settlements, err := s.Settlements(ctx, employeeID)
	if err != nil {
		return Statement{}, err
	}
	return Statement{
		Employee:    emp,
		Result:      res,
		History:     history,
		Settlements: settlements,
		Currency:    cur,
		GeneratedAt: s.Calc.Now(),
	}, nil
}

// WriteStatementPDF renders the statement. Amounts carry the ISO code rather
// than the symbol since the core PDF fonts cannot encode most symbols.
func WriteStatementPDF(w io.Writer, st Statement) error {
	money := func(amount decimal.Decimal) string {
		return currency.FormatWith(amount, st.Currency, currency.FormatOptions{HideSymbol: true, ShowCode: true})
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "End of Service Gratuity Statement")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Employee: %s (%s)", st.Employee.Name, st.Employee.ID))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Department: %s", st.Employee.Department))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Join date: %s", st.Employee.JoinDate.Format(time.DateOnly)))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("As of: %s", st.Result.AsOf.Format(time.DateOnly)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Calculation")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	rows := [][2]string{
		{"Basic salary", money(st.Result.BasicSalary)},
		{"Years of service", st.Result.YearsOfService.StringFixed(2)},
		{"Daily wage", money(st.Result.DailyWage)},
		{"First five years", money(st.Result.FirstFiveYearsAmount)},
		{"Additional years", money(st.Result.AdditionalYearsAmount)},
		{"Gratuity accrued", money(st.Result.Amount)},
	}
	for _, row := range rows {
		pdf.CellFormat(80, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(80, 7, row[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
	for _, line := range st.Result.Breakdown {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}

	if len(st.History) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "History")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for _, entry := range st.History {
			pdf.CellFormat(35, 6, entry.CalculationDate.Format(time.DateOnly), "1", 0, "L", false, 0, "")
			pdf.CellFormat(35, 6, entry.CalculationType, "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 6, entry.YearsOfService.StringFixed(2), "1", 0, "R", false, 0, "")
			pdf.CellFormat(60, 6, money(entry.Amount), "1", 1, "R", false, 0, "")
		}
	}

	if len(st.Settlements) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Settlements")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for _, settlement := range st.Settlements {
			pdf.CellFormat(35, 6, settlement.SettlementDate.Format(time.DateOnly), "1", 0, "L", false, 0, "")
			pdf.CellFormat(35, 6, settlement.PaymentStatus, "1", 0, "L", false, 0, "")
			pdf.CellFormat(90, 6, money(settlement.TotalAmount), "1", 1, "R", false, 0, "")
		}
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s", st.GeneratedAt.UTC().Format(time.RFC3339)))

	return pdf.Output(w)
}
