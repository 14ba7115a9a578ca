package gratuity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// UAE Labour Law end-of-service gratuity:
//   - 21 days of basic salary per year for the first five years
//   - 30 days of basic salary per year after that
//
// A day's salary is basic/30 and a year is 365.25 days.
var (
	daysPerYear        = decimal.RequireFromString("365.25")
	secondsPerDay      = decimal.NewFromInt(86400)
	daysPerMonth       = decimal.NewFromInt(30)
	tierOneYears       = decimal.NewFromInt(5)
	tierOneDaysPerYear = decimal.NewFromInt(21)
	tierTwoDaysPerYear = decimal.NewFromInt(30)
	capMonths          = decimal.NewFromInt(24)
)

type Options struct {
	// ApplyCap limits the total to 24 months of basic salary.
	ApplyCap bool
}

// Calculate computes the gratuity accrued between joinDate and asOf.
// The total is rounded half away from zero to a whole currency unit.
func Calculate(joinDate time.Time, basicSalary decimal.Decimal, asOf time.Time, opts Options) (Result, error) {
	if basicSalary.IsNegative() {
		return Result{}, ErrNegativeSalary
	}
	if asOf.Before(joinDate) {
		return Result{}, fmt.Errorf("%w: as-of %s precedes join date %s",
			ErrInvalidDateRange, asOf.Format(time.DateOnly), joinDate.Format(time.DateOnly))
	}

	years := YearsOfService(joinDate, asOf)
	res := Result{
		JoinDate:       joinDate,
		AsOf:           asOf,
		BasicSalary:    basicSalary,
		YearsOfService: years,
		DailyWage:      basicSalary.Div(daysPerMonth),
	}

	if years.LessThanOrEqual(tierOneYears) {
		res.FirstFiveYearsAmount = daysOfSalary(years, tierOneDaysPerYear, basicSalary)
	} else {
		res.FirstFiveYearsAmount = daysOfSalary(tierOneYears, tierOneDaysPerYear, basicSalary)
		res.AdditionalYearsAmount = daysOfSalary(years.Sub(tierOneYears), tierTwoDaysPerYear, basicSalary)
	}
	res.Breakdown = append(res.Breakdown, fmt.Sprintf("First 5 years (%s years): %s",
		decimal.Min(years, tierOneYears).StringFixed(2), res.FirstFiveYearsAmount.StringFixed(2)))
	if res.AdditionalYearsAmount.IsPositive() {
		res.Breakdown = append(res.Breakdown, fmt.Sprintf("Additional years (%s years): %s",
			years.Sub(tierOneYears).StringFixed(2), res.AdditionalYearsAmount.StringFixed(2)))
	}

	total := res.FirstFiveYearsAmount.Add(res.AdditionalYearsAmount)
	if opts.ApplyCap {
		ceiling := basicSalary.Mul(capMonths)
		if total.GreaterThan(ceiling) {
			res.Breakdown = append(res.Breakdown, fmt.Sprintf("Capped at 2 years basic salary: %s (calculated: %s)",
				ceiling.StringFixed(2), total.StringFixed(2)))
			total = ceiling
			res.Capped = true
		}
	}
	res.Amount = total.Round(0)
	return res, nil
}

// YearsOfService is the elapsed time in 365.25-day years.
func YearsOfService(joinDate, asOf time.Time) decimal.Decimal {
	seconds := decimal.NewFromInt(int64(asOf.Sub(joinDate) / time.Second))
	return seconds.Div(secondsPerDay).Div(daysPerYear)
}

// daysOfSalary multiplies before dividing by 30 to keep the result exact
// for whole-number salaries.
func daysOfSalary(years, daysPerYear, basicSalary decimal.Decimal) decimal.Decimal {
	return years.Mul(daysPerYear).Mul(basicSalary).Div(daysPerMonth)
}

// Calculator evaluates gratuity against the current clock.
type Calculator struct {
	opts Options
	now  func() time.Time
}

func NewCalculator(opts Options) *Calculator {
	return &Calculator{opts: opts, now: time.Now}
}

// WithClock returns a copy of the calculator that reads time from now.
func (c *Calculator) WithClock(now func() time.Time) *Calculator {
	clone := *c
	clone.now = now
	return &clone
}

func (c *Calculator) Options() Options {
	return c.opts
}

// Accrued evaluates as of the current time.
func (c *Calculator) Accrued(joinDate time.Time, basicSalary decimal.Decimal) (Result, error) {
	return Calculate(joinDate, basicSalary, c.now(), c.opts)
}

// AsOf evaluates as of the given date, or now when asOf is zero.
func (c *Calculator) AsOf(joinDate time.Time, basicSalary decimal.Decimal, asOf time.Time) (Result, error) {
	if asOf.IsZero() {
		asOf = c.now()
	}
	return Calculate(joinDate, basicSalary, asOf, c.opts)
}

func (c *Calculator) Now() time.Time {
	return c.now()
}
