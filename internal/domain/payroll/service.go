package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"hrms/internal/domain/employee"
	"hrms/internal/domain/gratuity"
)

type Service struct {
	Employees  employee.StoreAPI
	Gratuity   *gratuity.Service
	Deductions []Deduction
}

func NewService(employees employee.StoreAPI, gratuitySvc *gratuity.Service, deductions []Deduction) *Service {
	return &Service{Employees: employees, Gratuity: gratuitySvc, Deductions: deductions}
}

// Compose sanitizes raw fields and applies the configured deductions with
// any per-request overrides.
func (s *Service) Compose(raw map[string]any, overrides map[string]any) Breakdown {
	return Compose(Sanitize(raw), MergeDeductions(s.Deductions, overrides))
}

func (s *Service) ForEmployee(ctx context.Context, employeeID string) (EmployeePayroll, employee.Employee, error) {
	emp, err := s.Employees.Get(ctx, employeeID)
	if err != nil {
		return EmployeePayroll{}, employee.Employee{}, err
	}
	view, err := s.view(emp)
	return view, emp, err
}

func (s *Service) view(emp employee.Employee) (EmployeePayroll, error) {
	breakdown := Compose(FromEmployee(emp), s.Deductions)
	view := EmployeePayroll{
		EmployeeID:      emp.ID,
		Name:            emp.Name,
		Department:      emp.Department,
		Breakdown:       breakdown,
		GratuityAccrued: decimal.Zero,
		YearsOfService:  decimal.Zero,
	}
	res, err := s.Gratuity.Calc.AsOf(emp.JoinDate, breakdown.BasicSalary, time.Time{})
	switch {
	case errors.Is(err, gratuity.ErrInvalidDateRange):
		// not yet joined
	case err != nil:
		return EmployeePayroll{}, fmt.Errorf("gratuity for %s: %w", emp.ID, err)
	default:
		view.GratuityAccrued = res.Amount
		view.YearsOfService = res.YearsOfService.Round(2)
	}
	return view, nil
}

// Register returns one row per employed staff member.
func (s *Service) Register(ctx context.Context) ([]RegisterRow, error) {
	employees, err := s.Employees.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]RegisterRow, 0, len(employees))
	for _, emp := range employees {
		view, err := s.view(emp)
		if err != nil {
			return nil, err
		}
		b := view.Breakdown
		rows = append(rows, RegisterRow{
			EmployeeID:      emp.ID,
			Name:            emp.Name,
			Department:      emp.Department,
			BasicSalary:     b.BasicSalary,
			Allowances:      b.Allowances(),
			Gross:           b.GrossSalary,
			Deductions:      b.TotalDeductions,
			Net:             b.NetSalary,
			GratuityAccrued: view.GratuityAccrued,
		})
	}
	return rows, nil
}
