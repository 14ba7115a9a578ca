package attendance

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"hrms/internal/domain/employee"
)

var ErrInvalidMonth = errors.New("month must be between 1 and 12")

type Service struct {
	Employees employee.StoreAPI
	Rules     Rules
	now       func() time.Time
}

func NewService(employees employee.StoreAPI) *Service {
	return &Service{Employees: employees, Rules: DefaultRules(), now: time.Now}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	clone := *s
	clone.now = now
	return &clone
}

// MonthForEmployee returns generated attendance for the month. The generator
// is seeded from the employee and month so repeated requests agree.
func (s *Service) MonthForEmployee(ctx context.Context, employeeID string, year int, month time.Month) (Month, error) {
	if month < time.January || month > time.December {
		return Month{}, ErrInvalidMonth
	}
	if _, err := s.Employees.Get(ctx, employeeID); err != nil {
		return Month{}, err
	}

	days := GenerateMonth(year, month, rand.New(rand.NewSource(monthSeed(employeeID, year, month))))
	return Month{
		EmployeeID: employeeID,
		Year:       year,
		Month:      int(month),
		Days:       days,
		Summary:    Summarize(days),
	}, nil
}

func (s *Service) Punches(punches []Punch) (PunchResult, error) {
	return CalculateFromPunches(punches, s.Rules, s.now())
}

func monthSeed(employeeID string, year int, month time.Month) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s/%04d-%02d", employeeID, year, month)
	return int64(h.Sum64())
}
