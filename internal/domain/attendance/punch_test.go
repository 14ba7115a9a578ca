package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/internal/domain/employee"
)

var evening = time.Date(2025, time.March, 3, 20, 0, 0, 0, time.UTC)

func punches(pairs ...string) []Punch {
	out := make([]Punch, 0, len(pairs))
	for i, at := range pairs {
		typ := PunchIn
		if i%2 == 1 {
			typ = PunchOut
		}
		out = append(out, Punch{Time: at, Type: typ})
	}
	return out
}

func TestParseClock(t *testing.T) {
	cases := map[string]int{
		"09:00":    540,
		"18:15":    1095,
		"09:05:30": 545,
		"09:05 AM": 545,
		"12:10 AM": 10,
		"12:30 PM": 750,
		"06:45 pm": 1125,
	}
	for input, want := range cases {
		got, err := ParseClock(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	for _, bad := range []string{"", "-", "25:00", "9", "10:61", "13:00 PM", "ab:cd"} {
		_, err := ParseClock(bad)
		assert.ErrorIs(t, err, ErrInvalidPunchTime, bad)
	}
}

func TestCalculateFromPunches(t *testing.T) {
	cases := []struct {
		name     string
		punches  []Punch
		minutes  int
		breaks   int
		status   Status
		firstIn  string
		lastOut  string
		workHour string
	}{
		{"full day", punches("09:05", "13:00", "14:00", "18:15"), 490, 60, StatusPresent, "09:05", "18:15", "8h 10m"},
		{"half day", punches("09:00", "13:00"), 240, 0, StatusHalfDay, "09:00", "13:00", "4h 0m"},
		{"late short", punches("10:30", "13:00", "14:00", "18:30"), 420, 60, StatusHalfDay, "10:30", "18:30", "7h 0m"},
		{"late full", punches("09:45", "18:00"), 495, 0, StatusLate, "09:45", "18:00", "8h 15m"},
		{"multiple breaks", punches("09:00", "10:30", "10:45", "13:00", "14:00", "16:00", "16:15", "18:00"), 450, 90, StatusHalfDay, "09:00", "18:00", "7h 30m"},
		{"early exit", punches("09:00", "14:00"), 300, 0, StatusHalfDay, "09:00", "14:00", "5h 0m"},
		{"twelve hour clock", punches("09:00 AM", "06:00 PM"), 540, 0, StatusPresent, "09:00", "18:00", "9h 0m"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := CalculateFromPunches(tc.punches, DefaultRules(), evening)
			require.NoError(t, err)
			assert.Equal(t, tc.minutes, res.TotalAttendingMinutes)
			assert.Equal(t, tc.breaks, res.TotalBreakMinutes)
			assert.Equal(t, tc.status, res.Status)
			assert.Equal(t, tc.firstIn, res.FirstCheckIn)
			assert.Equal(t, tc.lastOut, res.LastCheckOut)
			assert.Equal(t, tc.workHour, res.WorkHoursDisplay)
		})
	}
}

func TestCalculateFromPunchesUnordered(t *testing.T) {
	shuffled := []Punch{
		{Time: "18:15", Type: PunchOut},
		{Time: "14:00", Type: PunchIn},
		{Time: "09:05", Type: PunchIn},
		{Time: "13:00", Type: PunchOut},
	}
	res, err := CalculateFromPunches(shuffled, DefaultRules(), evening)
	require.NoError(t, err)
	assert.Equal(t, 490, res.TotalAttendingMinutes)
	assert.Equal(t, StatusPresent, res.Status)
}

func TestCalculateFromPunchesOpenSession(t *testing.T) {
	noon := time.Date(2025, time.March, 3, 12, 30, 0, 0, time.UTC)
	res, err := CalculateFromPunches([]Punch{{Time: "09:00", Type: PunchIn}}, DefaultRules(), noon)
	require.NoError(t, err)
	assert.Equal(t, 210, res.TotalAttendingMinutes)
	assert.Equal(t, "-", res.LastCheckOut)
	assert.Equal(t, StatusHalfDay, res.Status)
}

func TestCalculateFromPunchesAbsent(t *testing.T) {
	for _, input := range [][]Punch{nil, {{Time: "18:00", Type: PunchOut}}} {
		res, err := CalculateFromPunches(input, DefaultRules(), evening)
		require.NoError(t, err)
		assert.Equal(t, StatusAbsent, res.Status)
		assert.Equal(t, "-", res.FirstCheckIn)
		assert.Equal(t, "0h 0m", res.WorkHoursDisplay)
	}

	_, err := CalculateFromPunches([]Punch{{Time: "nine", Type: PunchIn}}, DefaultRules(), evening)
	assert.True(t, errors.Is(err, ErrInvalidPunchTime))
}

func TestServiceMonthForEmployee(t *testing.T) {
	ctx := context.Background()
	svc := NewService(employee.NewMemoryStore(employee.Fixtures()...))

	first, err := svc.MonthForEmployee(ctx, "EMP001", 2025, time.January)
	require.NoError(t, err)
	second, err := svc.MonthForEmployee(ctx, "EMP001", 2025, time.January)
	require.NoError(t, err)

	assert.Len(t, first.Days, 31)
	assert.Equal(t, first.Days, second.Days)
	assert.True(t, Summarize(first.Days).AttendanceRate.Equal(first.Summary.AttendanceRate))
	assert.Equal(t, 31, first.Summary.WorkingDays+countWeekends(first.Days))

	_, err = svc.MonthForEmployee(ctx, "EMP001", 2025, 13)
	assert.ErrorIs(t, err, ErrInvalidMonth)

	_, err = svc.MonthForEmployee(ctx, "EMP404", 2025, time.January)
	assert.ErrorIs(t, err, employee.ErrNotFound)
}

func countWeekends(days []Day) int {
	n := 0
	for _, day := range days {
		if day.Status == StatusWeekend {
			n++
		}
	}
	return n
}
