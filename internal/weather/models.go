package weather

import (
	"strings"
	"time"
)

// DateLayout is the only calendar-date format accepted and emitted by this
// service, matching what the prediction backend expects.
const DateLayout = "2006-01-02"

// Location represents a logical place forecasts can be requested for.
// Name is what users pick from the menu; the coordinates come from
// configuration (or geocoding at startup).
type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Key returns a canonical string key for indexing this location in stores
// and for upstream query parameters.
func (l Location) Key() string {
	return strings.ToLower(strings.TrimSpace(l.Name))
}

// ForecastPoint is one day's prediction for a location. A point with
// Available false keeps its date so rendering stays in calendar order.
type ForecastPoint struct {
	Date        time.Time `json:"date"`
	Temperature float64   `json:"temperatureC"`
	Rain        float64   `json:"rainMm"`
	Available   bool      `json:"available"`
}

// Forecast is one ForecastPoint per day, ordered by date ascending.
type Forecast []ForecastPoint

// LiveReport is the current-day snapshot returned by the live-weather
// service. The backend embeds units in the numeric fields ("28 °C",
// "3.5 mm"), so they are carried as display strings and passed through.
type LiveReport struct {
	Location       string `json:"location"`
	Date           string `json:"date"`
	TemperatureMax string `json:"temperature_max"`
	RainSum        string `json:"rain_sum"`
}

// Midnight truncates t to the start of its day in UTC. Daily forecast
// buckets are always keyed on midnight UTC.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
