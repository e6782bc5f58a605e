package ussd

import (
	"errors"
	"time"

	"github.com/i474232898/ussd-weather-gateway/internal/weather"
)

var (
	// ErrBadDate means the input is not a valid YYYY-MM-DD calendar date.
	ErrBadDate = errors.New("invalid date")
	// ErrStartAfterEnd means the range's start date is after its end date.
	ErrStartAfterEnd = errors.New("start date after end date")
	// ErrRangeTooLong means the inclusive day count exceeds the maximum.
	ErrRangeTooLong = errors.New("date range too long")
)

// ParseDate accepts only the fixed YYYY-MM-DD layout. time.Parse tolerates
// unpadded months and days, so the length is checked first.
func ParseDate(s string) (time.Time, error) {
	if len(s) != len(weather.DateLayout) {
		return time.Time{}, ErrBadDate
	}
	t, err := time.Parse(weather.DateLayout, s)
	if err != nil {
		return time.Time{}, ErrBadDate
	}
	return t, nil
}

// ValidateRange checks ordering before span length so the user always sees
// the same message for the same mistake. The span is the inclusive day
// count: start == end is a one-day range.
func ValidateRange(start, end time.Time, maxSpanDays int) error {
	if start.After(end) {
		return ErrStartAfterEnd
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days > maxSpanDays {
		return ErrRangeTooLong
	}
	return nil
}
