package store

import (
	"testing"
	"time"

	"github.com/i474232898/ussd-weather-gateway/internal/weather"
)

var machakos = weather.Location{Name: "Machakos"}

func point(day int) weather.ForecastPoint {
	return weather.ForecastPoint{
		Date:        time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
		Temperature: float64(20 + day),
		Rain:        1.0,
		Available:   true,
	}
}

func TestSaveAndGetPoint(t *testing.T) {
	s := NewMemoryStore(0, 0)
	s.SavePoint(machakos, point(15))

	got, err := s.GetPoint(machakos, time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("GetPoint failed: %v", err)
	}
	if got.Temperature != 35 {
		t.Fatalf("unexpected point: %+v", got)
	}

	if _, err := s.GetPoint(machakos, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for uncached date, got %v", err)
	}
	if _, err := s.GetPoint(weather.Location{Name: "Kakamega"}, point(15).Date); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for uncached location, got %v", err)
	}
}

func TestUnavailablePointsAreNotCached(t *testing.T) {
	s := NewMemoryStore(0, 0)
	s.SavePoint(machakos, weather.ForecastPoint{Date: point(15).Date})

	if _, err := s.GetPoint(machakos, point(15).Date); err != ErrNotFound {
		t.Fatalf("unavailable point was cached: %v", err)
	}
}

func TestMaxAgeEviction(t *testing.T) {
	s := NewMemoryStore(0, time.Nanosecond)
	s.SavePoint(machakos, point(15))

	time.Sleep(5 * time.Millisecond)

	if _, err := s.GetPoint(machakos, point(15).Date); err != ErrNotFound {
		t.Fatalf("expected stale point to miss, got %v", err)
	}
}

func TestMaxPerLocationEviction(t *testing.T) {
	s := NewMemoryStore(2, 0)
	s.SavePoint(machakos, point(15))
	time.Sleep(time.Millisecond)
	s.SavePoint(machakos, point(16))
	time.Sleep(time.Millisecond)
	s.SavePoint(machakos, point(17))

	if _, err := s.GetPoint(machakos, point(15).Date); err != ErrNotFound {
		t.Fatalf("oldest point should have been evicted, got %v", err)
	}
	for _, d := range []int{16, 17} {
		if _, err := s.GetPoint(machakos, point(d).Date); err != nil {
			t.Fatalf("day %d should still be cached: %v", d, err)
		}
	}
}
