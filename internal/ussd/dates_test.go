package ussd

import (
	"testing"
	"time"

	"github.com/i474232898/ussd-weather-gateway/internal/weather"
)

func TestParseDateRoundTrip(t *testing.T) {
	for _, s := range []string{"2024-01-01", "2024-02-29", "2025-12-31"} {
		d, err := ParseDate(s)
		if err != nil {
			t.Fatalf("ParseDate(%q) failed: %v", s, err)
		}
		if got := d.Format(weather.DateLayout); got != s {
			t.Fatalf("round trip of %q produced %q", s, got)
		}
	}
}

func TestParseDateRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"tomorrow",
		"2024/01/01",
		"01-02-2024",
		"2024-1-2",   // unpadded; time.Parse alone would accept this
		"2024-02-30", // impossible calendar date
		"2023-02-29", // not a leap year
		"2024-01-015",
	}
	for _, s := range bad {
		if _, err := ParseDate(s); err == nil {
			t.Fatalf("ParseDate(%q) unexpectedly succeeded", s)
		}
	}
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func TestValidateRangeStartAfterEnd(t *testing.T) {
	// Ordering is checked before span length, even for huge spans.
	cases := [][2]string{
		{"2024-01-02", "2024-01-01"},
		{"2024-06-01", "2024-01-01"},
	}
	for _, c := range cases {
		err := ValidateRange(date(t, c[0]), date(t, c[1]), 16)
		if err != ErrStartAfterEnd {
			t.Fatalf("ValidateRange(%s, %s) = %v, want ErrStartAfterEnd", c[0], c[1], err)
		}
	}
}

func TestValidateRangeTooLong(t *testing.T) {
	// 16 inclusive days is the limit; 17 is over.
	if err := ValidateRange(date(t, "2024-01-01"), date(t, "2024-01-16"), 16); err != nil {
		t.Fatalf("16-day range rejected: %v", err)
	}
	if err := ValidateRange(date(t, "2024-01-01"), date(t, "2024-01-17"), 16); err != ErrRangeTooLong {
		t.Fatalf("17-day range = %v, want ErrRangeTooLong", err)
	}
	if err := ValidateRange(date(t, "2024-01-10"), date(t, "2024-01-30"), 16); err != ErrRangeTooLong {
		t.Fatalf("21-day range = %v, want ErrRangeTooLong", err)
	}
}

func TestValidateRangeSingleDay(t *testing.T) {
	if err := ValidateRange(date(t, "2024-01-01"), date(t, "2024-01-01"), 16); err != nil {
		t.Fatalf("single-day range rejected: %v", err)
	}
}
