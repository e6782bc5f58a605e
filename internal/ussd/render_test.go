package ussd

import (
	"strings"
	"testing"
	"time"

	"github.com/i474232898/ussd-weather-gateway/internal/weather"
)

func TestProtocolTags(t *testing.T) {
	if got := Continue("hello", 0); got != "CON hello" {
		t.Fatalf("Continue produced %q", got)
	}
	if got := End("bye", 0); got != "END bye" {
		t.Fatalf("End produced %q", got)
	}
}

func TestClipDropsWholeTrailingLines(t *testing.T) {
	msg := "header\nline one\nline two\nline three"
	got := End(msg, len("END header\nline one"))
	if got != "END header\nline one" {
		t.Fatalf("clip produced %q", got)
	}
	// Never mid-line: one byte short of fitting "line two" drops it whole.
	got = End(msg, len("END header\nline one\nline tw"))
	if got != "END header\nline one" {
		t.Fatalf("clip cut mid-line: %q", got)
	}
}

func TestClipKeepsFirstLine(t *testing.T) {
	got := End("a very long terminal message", 5)
	if got != "END a very long terminal message" {
		t.Fatalf("first line must survive the ceiling, got %q", got)
	}
}

func TestRenderForecastMarksMissingDays(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, 3, 15+d, 0, 0, 0, 0, time.UTC)
	}
	points := weather.Forecast{
		{Date: day(0), Temperature: 24.5, Rain: 1.2, Available: true},
		{Date: day(1)},
		{Date: day(2), Temperature: 26.0, Rain: 0, Available: true},
	}

	got := RenderForecast(weather.Location{Name: "Machakos"}, points)
	lines := strings.Split(got, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 lines, got %q", got)
	}
	if lines[0] != "Weather for Machakos:" {
		t.Fatalf("bad header: %q", lines[0])
	}
	if lines[1] != "2024-03-15: 24.5C, 1.2mm" {
		t.Fatalf("bad day line: %q", lines[1])
	}
	if lines[2] != "2024-03-16: no data" {
		t.Fatalf("missing day not marked: %q", lines[2])
	}
	if !strings.HasPrefix(lines[3], "2024-03-17:") {
		t.Fatalf("days out of order: %q", got)
	}
}

func TestRenderLivePassesValuesThrough(t *testing.T) {
	got := RenderLive(weather.LiveReport{
		Location:       "Machakos",
		Date:           "2024-03-15",
		TemperatureMax: "28.1 °C",
		RainSum:        "3.5 mm",
	})
	for _, want := range []string{"Machakos", "2024-03-15", "28.1 °C", "3.5 mm"} {
		if !strings.Contains(got, want) {
			t.Fatalf("rendered snapshot missing %q: %q", want, got)
		}
	}
}
