package attendance

import (
	"fmt"
	"math/rand"
	"time"
)

const casualLeave = "Casual Leave"

// GenerateMonth produces demo attendance for every day of the month.
// Saturdays and Sundays are weekends; other days are present 85% of the time,
// absent 5%, on leave 5% and half days 5%.
func GenerateMonth(year int, month time.Month, rng *rand.Rand) []Day {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	days := make([]Day, 0, daysInMonth)

	for i := 0; i < daysInMonth; i++ {
		date := first.AddDate(0, 0, i)
		day := Day{Date: date, Weekday: date.Weekday().String()[:3]}

		if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			day.Status = StatusWeekend
			days = append(days, day)
			continue
		}

		switch roll := rng.Float64(); {
		case roll < 0.85:
			day.Status = StatusPresent
			day.CheckIn = fmt.Sprintf("09:%02d AM", rng.Intn(30))
			day.CheckOut = fmt.Sprintf("06:%02d PM", rng.Intn(60))
		case roll < 0.90:
			day.Status = StatusAbsent
		case roll < 0.95:
			day.Status = StatusLeave
			day.LeaveType = casualLeave
		default:
			day.Status = StatusHalfDay
			day.CheckIn = fmt.Sprintf("09:%02d AM", rng.Intn(30))
			day.CheckOut = fmt.Sprintf("01:%02d PM", rng.Intn(60))
		}
		days = append(days, day)
	}
	return days
}
