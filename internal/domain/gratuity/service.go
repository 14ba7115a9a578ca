package gratuity

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"hrms/internal/domain/employee"
)

const (
	DefaultHistoryLimit = 12
	MaxHistoryLimit     = 120
)

// Observer is notified of every calculation the service performs.
type Observer interface {
	ObserveCalculation(kind string, err error)
}

type Service struct {
	Store     StoreAPI
	Employees employee.StoreAPI
	Calc      *Calculator
	Observer  Observer
}

func NewService(store StoreAPI, employees employee.StoreAPI, calc *Calculator) *Service {
	return &Service{Store: store, Employees: employees, Calc: calc}
}

func (s *Service) observe(kind string, err error) {
	if s.Observer != nil {
		s.Observer.ObserveCalculation(kind, err)
	}
}

// CalculateForEmployee evaluates the employee's gratuity without storing it.
func (s *Service) CalculateForEmployee(ctx context.Context, employeeID string, asOf time.Time) (Result, employee.Employee, error) {
	emp, err := s.Employees.Get(ctx, employeeID)
	if err != nil {
		return Result{}, employee.Employee{}, err
	}
	res, err := s.Calc.AsOf(emp.JoinDate, emp.BasicSalary, asOf)
	s.observe("evaluate", err)
	if err != nil {
		return Result{}, emp, err
	}
	return res, emp, nil
}

// CalculateAndStore evaluates the employee's gratuity as of now, replaces the
// current record, and appends a history entry of the given type.
func (s *Service) CalculateAndStore(ctx context.Context, employeeID, calcType, createdBy, notes string) (HistoryEntry, Result, error) {
	if calcType == "" {
		calcType = CalculationMonthly
	}
	if !slices.Contains(CalculationTypes, calcType) {
		return HistoryEntry{}, Result{}, ErrInvalidCalculationType
	}

	res, _, err := s.CalculateForEmployee(ctx, employeeID, time.Time{})
	if err != nil {
		return HistoryEntry{}, Result{}, err
	}

	now := s.Calc.Now().UTC()
	calcDate := dateOnly(now)
	record := Record{
		EmployeeID:      employeeID,
		Amount:          res.Amount,
		YearsOfService:  res.YearsOfService.Round(2),
		DailyWage:       res.DailyWage.Round(2),
		BasicSalary:     res.BasicSalary,
		CalculationDate: calcDate,
		LastUpdated:     now,
	}
	entry := HistoryEntry{
		ID:              uuid.NewString(),
		EmployeeID:      employeeID,
		Amount:          record.Amount,
		YearsOfService:  record.YearsOfService,
		DailyWage:       record.DailyWage,
		BasicSalary:     record.BasicSalary,
		CalculationDate: calcDate,
		CalculationType: calcType,
		Notes:           notes,
		CreatedBy:       createdBy,
		CreatedAt:       now,
	}
	if err := s.Store.SaveCalculation(ctx, record, entry); err != nil {
		return HistoryEntry{}, Result{}, fmt.Errorf("save gratuity calculation: %w", err)
	}
	return entry, res, nil
}

func (s *Service) Current(ctx context.Context, employeeID string) (Record, error) {
	return s.Store.GetCurrent(ctx, employeeID)
}

func (s *Service) History(ctx context.Context, employeeID string, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	return s.Store.ListHistory(ctx, employeeID, limit)
}

// RecordSettlement creates a pending final settlement evaluated as of the
// settlement date.
func (s *Service) RecordSettlement(ctx context.Context, employeeID string, settlementDate time.Time, approvedBy, notes string) (Settlement, error) {
	if settlementDate.IsZero() {
		settlementDate = s.Calc.Now()
	}
	settlementDate = dateOnly(settlementDate.UTC())

	res, _, err := s.CalculateForEmployee(ctx, employeeID, settlementDate)
	if err != nil {
		return Settlement{}, err
	}

	now := s.Calc.Now().UTC()
	settlement := Settlement{
		ID:               uuid.NewString(),
		EmployeeID:       employeeID,
		TotalAmount:      res.Amount,
		YearsOfService:   res.YearsOfService.Round(2),
		FinalBasicSalary: res.BasicSalary,
		SettlementDate:   settlementDate,
		PaymentStatus:    PaymentPending,
		ApprovedBy:       approvedBy,
		Notes:            notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if approvedBy != "" {
		settlement.ApprovedAt = &now
	}
	entry := HistoryEntry{
		ID:              uuid.NewString(),
		EmployeeID:      employeeID,
		Amount:          res.Amount,
		YearsOfService:  settlement.YearsOfService,
		DailyWage:       res.DailyWage.Round(2),
		BasicSalary:     res.BasicSalary,
		CalculationDate: settlementDate,
		CalculationType: CalculationSettlement,
		Notes:           fmt.Sprintf("Final settlement: %s", notes),
		CreatedBy:       approvedBy,
		CreatedAt:       now,
	}
	if err := s.Store.CreateSettlement(ctx, settlement, entry); err != nil {
		return Settlement{}, fmt.Errorf("create gratuity settlement: %w", err)
	}
	return settlement, nil
}

func (s *Service) UpdateSettlementPayment(ctx context.Context, settlementID, status string, details PaymentDetails) (Settlement, error) {
	if !slices.Contains(PaymentStatuses, status) {
		return Settlement{}, ErrInvalidPaymentStatus
	}
	if status == PaymentPaid && details.PaymentDate == nil {
		paidOn := dateOnly(s.Calc.Now().UTC())
		details.PaymentDate = &paidOn
	}
	if err := s.Store.UpdateSettlementPayment(ctx, settlementID, status, details); err != nil {
		return Settlement{}, err
	}
	return s.Store.GetSettlement(ctx, settlementID)
}

func (s *Service) Settlements(ctx context.Context, employeeID string) ([]Settlement, error) {
	return s.Store.ListSettlements(ctx, employeeID)
}

// CalculateAll stores a monthly calculation for every employed staff member.
// Per-employee failures are collected rather than aborting the batch.
func (s *Service) CalculateAll(ctx context.Context, createdBy string) (BatchResult, error) {
	employees, err := s.Employees.ListActive(ctx)
	if err != nil {
		return BatchResult{}, fmt.Errorf("list active employees: %w", err)
	}

	result := BatchResult{Total: len(employees), Errors: []BatchError{}}
	for _, emp := range employees {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if _, _, err := s.CalculateAndStore(ctx, emp.ID, CalculationMonthly, createdBy, "Monthly accrual"); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, BatchError{EmployeeID: emp.ID, Error: err.Error()})
			continue
		}
		result.Success++
	}
	return result, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
