package shared

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDate accepts RFC3339 or YYYY-MM-DD.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}

// ParseYearMonth reads year and month query values, falling back to the
// month containing now for whichever is empty.
func ParseYearMonth(rawYear, rawMonth string, now time.Time) (int, time.Month, error) {
	year, month := now.Year(), now.Month()
	if rawYear = strings.TrimSpace(rawYear); rawYear != "" {
		v, err := strconv.Atoi(rawYear)
		if err != nil || v < 1 {
			return 0, 0, fmt.Errorf("invalid year %q", rawYear)
		}
		year = v
	}
	if rawMonth = strings.TrimSpace(rawMonth); rawMonth != "" {
		v, err := strconv.Atoi(rawMonth)
		if err != nil || v < 1 || v > 12 {
			return 0, 0, fmt.Errorf("invalid month %q", rawMonth)
		}
		month = time.Month(v)
	}
	return year, month, nil
}
