package ussd

import (
	"fmt"
	"strings"

	"github.com/i474232898/ussd-weather-gateway/internal/weather"
)

// Protocol tags understood by the carrier gateway: CON keeps the session
// open for another turn, END closes it.
const (
	tagContinue = "CON "
	tagEnd      = "END "
)

// Continue tags a prompt that expects another turn.
func Continue(msg string, maxLen int) string {
	return clip(tagContinue+msg, maxLen)
}

// End tags a terminal message.
func End(msg string, maxLen int) string {
	return clip(tagEnd+msg, maxLen)
}

// RenderForecast builds the terminal forecast summary, one line per day in
// ascending date order. Days without data are marked, never omitted, so
// the user can tell a gap from a short range.
func RenderForecast(loc weather.Location, points weather.Forecast) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Weather for %s:", loc.Name)
	for _, p := range points {
		b.WriteString("\n")
		if !p.Available {
			fmt.Fprintf(&b, "%s: no data", p.Date.Format(weather.DateLayout))
			continue
		}
		fmt.Fprintf(&b, "%s: %.1fC, %.1fmm", p.Date.Format(weather.DateLayout), p.Temperature, p.Rain)
	}
	return b.String()
}

// RenderLive builds the terminal live-weather snapshot. The value fields
// already carry their units; they are passed through untouched.
func RenderLive(r weather.LiveReport) string {
	return fmt.Sprintf("Live weather for %s (%s):\nMax temp: %s\nRain: %s",
		r.Location, r.Date, r.TemperatureMax, r.RainSum)
}

// clip enforces the display ceiling by dropping whole trailing lines,
// never cutting a line mid-way. The first line always survives. maxLen <= 0
// disables the ceiling.
func clip(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	lines := strings.Split(s, "\n")
	total := len(lines[0])
	kept := 1
	for _, line := range lines[1:] {
		if total+1+len(line) > maxLen {
			break
		}
		total += 1 + len(line)
		kept++
	}
	return strings.Join(lines[:kept], "\n")
}
