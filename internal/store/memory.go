package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/ussd-weather-gateway/internal/weather"
)

var (
	// ErrNotFound is returned when no fresh cached point exists for a
	// location and date.
	ErrNotFound = errors.New("no cached forecast for date")
)

type cachedPoint struct {
	point    weather.ForecastPoint
	storedAt time.Time
}

// MemoryStore is a concurrency-safe in-memory cache of per-day forecast
// points, keyed by location and date.
type MemoryStore struct {
	mu sync.RWMutex

	// key: location key, inner key: date in weather.DateLayout
	data map[string]map[string]cachedPoint

	// retention configuration
	maxPerLocation int           // max cached days per location (0 = unlimited)
	maxAge         time.Duration // max age of a cached point (0 = unlimited)
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxPerLocation is <= 0, it is treated as unlimited.
func NewMemoryStore(maxPerLocation int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:           make(map[string]map[string]cachedPoint),
		maxPerLocation: maxPerLocation,
		maxAge:         maxAge,
	}
}

// SavePoint caches a forecast point and enforces retention. Unavailable
// points are not cached; a later retry may still succeed for that day.
func (s *MemoryStore) SavePoint(loc weather.Location, p weather.ForecastPoint) {
	if !p.Available {
		return
	}
	key := loc.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	days, ok := s.data[key]
	if !ok {
		days = make(map[string]cachedPoint)
		s.data[key] = days
	}

	days[p.Date.Format(weather.DateLayout)] = cachedPoint{point: p, storedAt: time.Now()}

	// Enforce retention by age first, then by count.
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		for d, cp := range days {
			if cp.storedAt.Before(cutoff) {
				delete(days, d)
			}
		}
	}
	if s.maxPerLocation > 0 {
		for len(days) > s.maxPerLocation {
			oldest := ""
			var oldestAt time.Time
			for d, cp := range days {
				if oldest == "" || cp.storedAt.Before(oldestAt) {
					oldest = d
					oldestAt = cp.storedAt
				}
			}
			delete(days, oldest)
		}
	}
}

// GetPoint returns the cached point for a location and date, if still fresh.
func (s *MemoryStore) GetPoint(loc weather.Location, date time.Time) (weather.ForecastPoint, error) {
	key := loc.Key()
	day := weather.Midnight(date).Format(weather.DateLayout)

	s.mu.RLock()
	defer s.mu.RUnlock()

	days, ok := s.data[key]
	if !ok {
		return weather.ForecastPoint{}, ErrNotFound
	}
	cp, ok := days[day]
	if !ok {
		return weather.ForecastPoint{}, ErrNotFound
	}
	if s.maxAge > 0 && cp.storedAt.Before(time.Now().Add(-s.maxAge)) {
		return weather.ForecastPoint{}, ErrNotFound
	}
	return cp.point, nil
}
