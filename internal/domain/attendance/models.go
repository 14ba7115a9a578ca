package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusLeave   Status = "Leave"
	StatusHalfDay Status = "Half Day"
	StatusWeekend Status = "Weekend"
	StatusLate    Status = "Late"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLeave, StatusHalfDay, StatusWeekend, StatusLate:
		return true
	}
	return false
}

type Day struct {
	Date      time.Time `json:"date"`
	Weekday   string    `json:"day"`
	Status    Status    `json:"status"`
	CheckIn   string    `json:"checkIn,omitempty"`
	CheckOut  string    `json:"checkOut,omitempty"`
	LeaveType string    `json:"leaveType,omitempty"`
}

type Summary struct {
	Present        int             `json:"present"`
	Absent         int             `json:"absent"`
	Leave          int             `json:"leave"`
	HalfDay        int             `json:"halfDay"`
	WorkingDays    int             `json:"workingDays"`
	AttendanceRate decimal.Decimal `json:"attendanceRate"`
}

type Month struct {
	EmployeeID string  `json:"employeeId,omitempty"`
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	Days       []Day   `json:"attendance"`
	Summary    Summary `json:"summary"`
}
