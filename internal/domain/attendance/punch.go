package attendance

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidPunchTime = errors.New("invalid punch time")

type PunchType string

const (
	PunchIn  PunchType = "in"
	PunchOut PunchType = "out"
)

type Punch struct {
	Time     string    `json:"time"`
	Type     PunchType `json:"type"`
	Location string    `json:"location,omitempty"`
}

// Rules are minutes; ShiftStart is minutes after midnight.
type Rules struct {
	FullDayMinutes       int `json:"fullDayMinutes"`
	LateThresholdMinutes int `json:"lateThresholdMinutes"`
	ShiftStart           int `json:"shiftStart"`
}

func DefaultRules() Rules {
	return Rules{
		FullDayMinutes:       8 * 60,
		LateThresholdMinutes: 30,
		ShiftStart:           9 * 60,
	}
}

type PunchResult struct {
	FirstCheckIn          string `json:"firstCheckIn"`
	LastCheckOut          string `json:"lastCheckOut"`
	TotalAttendingMinutes int    `json:"totalAttendingMinutes"`
	TotalBreakMinutes     int    `json:"totalBreakMinutes"`
	WorkHoursDisplay      string `json:"workHoursDisplay"`
	BreakHoursDisplay     string `json:"breakHoursDisplay"`
	Status                Status `json:"status"`
}

// ParseClock converts "HH:MM", "HH:MM:SS" or "HH:MM AM/PM" into minutes
// after midnight.
func ParseClock(value string) (int, error) {
	value = strings.ToUpper(strings.TrimSpace(value))
	period := ""
	if rest, ok := strings.CutSuffix(value, "AM"); ok {
		value, period = strings.TrimSpace(rest), "AM"
	} else if rest, ok := strings.CutSuffix(value, "PM"); ok {
		value, period = strings.TrimSpace(rest), "PM"
	}

	parts := strings.Split(value, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPunchTime, value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPunchTime, value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPunchTime, value)
	}

	switch period {
	case "":
		if hours < 0 || hours > 23 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidPunchTime, value)
		}
	default:
		if hours < 1 || hours > 12 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidPunchTime, value)
		}
		if hours == 12 {
			hours = 0
		}
		if period == "PM" {
			hours += 12
		}
	}
	return hours*60 + minutes, nil
}

func clockString(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func hourDisplay(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

type timedPunch struct {
	at  int
	typ PunchType
}

// CalculateFromPunches pairs each check-in with the next check-out before the
// following check-in. An unmatched final check-in runs until now.
func CalculateFromPunches(punches []Punch, rules Rules, now time.Time) (PunchResult, error) {
	result := PunchResult{
		FirstCheckIn:      "-",
		LastCheckOut:      "-",
		WorkHoursDisplay:  hourDisplay(0),
		BreakHoursDisplay: hourDisplay(0),
		Status:            StatusAbsent,
	}

	var ins, outs []int
	timed := make([]timedPunch, 0, len(punches))
	for _, p := range punches {
		at, err := ParseClock(p.Time)
		if err != nil {
			return PunchResult{}, err
		}
		timed = append(timed, timedPunch{at: at, typ: p.Type})
	}
	sort.SliceStable(timed, func(i, j int) bool { return timed[i].at < timed[j].at })
	for _, p := range timed {
		switch p.typ {
		case PunchIn:
			ins = append(ins, p.at)
		case PunchOut:
			outs = append(outs, p.at)
		}
	}
	if len(ins) == 0 {
		return result, nil
	}

	for i, in := range ins {
		last := i == len(ins)-1
		out, matched := 0, false
		for _, candidate := range outs {
			if candidate > in && (last || candidate <= ins[i+1]) {
				out, matched = candidate, true
				break
			}
		}

		switch {
		case matched:
			result.TotalAttendingMinutes += out - in
			if !last {
				if gap := ins[i+1] - out; gap > 0 {
					result.TotalBreakMinutes += gap
				}
			}
		case last:
			if open := now.Hour()*60 + now.Minute() - in; open > 0 {
				result.TotalAttendingMinutes += open
			}
		}
	}

	result.FirstCheckIn = clockString(ins[0])
	if len(outs) > 0 {
		result.LastCheckOut = clockString(outs[len(outs)-1])
	}
	result.WorkHoursDisplay = hourDisplay(result.TotalAttendingMinutes)
	result.BreakHoursDisplay = hourDisplay(result.TotalBreakMinutes)

	late := ins[0] > rules.ShiftStart+rules.LateThresholdMinutes
	switch {
	case result.TotalAttendingMinutes >= rules.FullDayMinutes && late:
		result.Status = StatusLate
	case result.TotalAttendingMinutes >= rules.FullDayMinutes:
		result.Status = StatusPresent
	case result.TotalAttendingMinutes > 0:
		result.Status = StatusHalfDay
	}
	return result, nil
}
