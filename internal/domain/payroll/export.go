package payroll

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"hrms/internal/domain/currency"
)

var deductionLabels = map[string]string{
	DeductionHealthInsurance: "Health insurance",
	DeductionOther:           "Other deductions",
}

func deductionLabel(name string) string {
	if label, ok := deductionLabels[name]; ok {
		return label
	}
	return name
}

func plainMoney(c currency.Currency) func(decimal.Decimal) string {
	return func(amount decimal.Decimal) string {
		return currency.FormatWith(amount, c, currency.FormatOptions{HideSymbol: true, ShowCode: true})
	}
}

// WritePayslipPDF renders a monthly payslip for one employee.
func WritePayslipPDF(w io.Writer, view EmployeePayroll, c currency.Currency, month time.Time) error {
	money := plainMoney(c)
	b := view.Breakdown

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Employee: %s (%s)", view.Name, view.EmployeeID))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Department: %s", view.Department))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s", month.Format("January 2006")))
	pdf.Ln(10)

	row := func(label, value string) {
		pdf.CellFormat(90, 7, label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 7, value, "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Earnings")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	row("Basic salary", money(b.BasicSalary))
	row("Housing allowance", money(b.HousingAllowance))
	row("Transport allowance", money(b.TransportAllowance))
	row("Other allowances", money(b.OtherAllowances))
	row("Bonus", money(b.Bonus))
	pdf.SetFont("Helvetica", "B", 11)
	row("Gross salary", money(b.GrossSalary))
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Deductions")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, d := range b.Deductions {
		row(deductionLabel(d.Name), money(d.Amount))
	}
	pdf.SetFont("Helvetica", "B", 11)
	row("Total deductions", money(b.TotalDeductions))
	pdf.Ln(4)
	row("Net salary", money(b.NetSalary))
	pdf.SetFont("Helvetica", "", 11)
	row("End of service gratuity accrued", money(view.GratuityAccrued))

	return pdf.Output(w)
}

// WriteRegisterXLSX writes the payroll register workbook with a totals row.
func WriteRegisterXLSX(w io.Writer, rows []RegisterRow, c currency.Currency, generatedAt time.Time) error {
	const sheet = "Register"
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	sw := &sheetWriter{f: f, sheet: sheet}
	headers := []string{"Employee ID", "Name", "Department", "Basic", "Allowances", "Gross", "Deductions", "Net", "Gratuity accrued"}
	for i, header := range headers {
		sw.set(i+1, 1, header)
	}

	totals := make([]decimal.Decimal, 6)
	for i, r := range rows {
		line := i + 2
		sw.set(1, line, r.EmployeeID)
		sw.set(2, line, r.Name)
		sw.set(3, line, r.Department)
		amounts := []decimal.Decimal{r.BasicSalary, r.Allowances, r.Gross, r.Deductions, r.Net, r.GratuityAccrued}
		for j, amount := range amounts {
			sw.set(j+4, line, amount.Round(c.DecimalPlaces).InexactFloat64())
			totals[j] = totals[j].Add(amount)
		}
	}

	totalLine := len(rows) + 2
	sw.set(1, totalLine, "Total")
	for j, amount := range totals {
		sw.set(j+4, totalLine, amount.Round(c.DecimalPlaces).InexactFloat64())
	}
	sw.set(1, totalLine+2, "Currency")
	sw.set(2, totalLine+2, c.Code)
	sw.set(1, totalLine+3, "Generated")
	sw.set(2, totalLine+3, generatedAt.UTC().Format(time.RFC3339))
	if sw.err != nil {
		return fmt.Errorf("write register sheet: %w", sw.err)
	}

	return f.Write(w)
}

// sheetWriter keeps the first cell error so a register is either complete
// or not written at all.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (sw *sheetWriter) set(col, row int, value any) {
	if sw.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		sw.err = err
		return
	}
	sw.err = sw.f.SetCellValue(sw.sheet, cell, value)
}
