package attendance

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Summarize counts statuses and derives the attendance rate, reported to one
// decimal place with halves rounded away from zero. Late days count as
// present. The input is not modified.
func Summarize(days []Day) Summary {
	var s Summary
	for _, day := range days {
		switch day.Status {
		case StatusPresent, StatusLate:
			s.Present++
		case StatusAbsent:
			s.Absent++
		case StatusLeave:
			s.Leave++
		case StatusHalfDay:
			s.HalfDay++
		}
		if day.Status != StatusWeekend {
			s.WorkingDays++
		}
	}

	s.AttendanceRate = decimal.Zero
	if s.WorkingDays > 0 {
		// (present + halfDay/2) / workingDays * 100, kept in integers until the final division
		attended := decimal.NewFromInt(int64(2*s.Present + s.HalfDay)).Mul(hundred)
		s.AttendanceRate = attended.DivRound(decimal.NewFromInt(int64(2*s.WorkingDays)), 1)
	}
	return s
}
