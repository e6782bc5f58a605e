package weather

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// ErrNoForecast is returned when not a single day of a requested range
// could be retrieved.
var ErrNoForecast = errors.New("no forecast data available")

const (
	defaultWorkers      = 4
	defaultFetchTimeout = 10 * time.Second
)

// Options tunes the service's outbound behaviour.
type Options struct {
	// Workers bounds how many per-day fetches run at once.
	Workers int
	// FetchTimeout caps the wall time of one aggregation or live fetch.
	FetchTimeout time.Duration
}

// Service orchestrates per-day prediction fetches and live-weather lookups.
// It holds no per-session state; every call is independent.
type Service struct {
	store     Store
	predictor Predictor
	live      LiveSource
	workers   int
	timeout   time.Duration
}

// NewService creates a new Service. store may be nil to disable caching.
func NewService(store Store, predictor Predictor, live LiveSource, opts Options) *Service {
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = defaultFetchTimeout
	}
	return &Service{
		store:     store,
		predictor: predictor,
		live:      live,
		workers:   opts.Workers,
		timeout:   opts.FetchTimeout,
	}
}

// Aggregate fetches one prediction per day in the inclusive [start, end]
// range and returns the points in ascending date order regardless of fetch
// completion order. A day that cannot be fetched is returned as an
// unavailable point; only when every day fails does the whole call fail.
// Cached points are used without touching the network.
func (s *Service) Aggregate(ctx context.Context, loc Location, start, end time.Time) (Forecast, error) {
	start = Midnight(start)
	end = Midnight(end)
	if end.Before(start) {
		return nil, errors.New("end date before start date")
	}

	days := int(end.Sub(start).Hours()/24) + 1
	points := make(Forecast, days)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.workers)

	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		points[i] = ForecastPoint{Date: date}

		if s.store != nil {
			if p, err := s.store.GetPoint(loc, date); err == nil {
				points[i] = p
				continue
			}
		}

		wg.Add(1)
		go func(i int, date time.Time) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			p, err := s.predictor.Predict(ctx, loc, date)
			if err != nil {
				// Log and continue; we want partial results when possible.
				log.Printf("prediction failed for %s on %s: %v", loc.Key(), date.Format(DateLayout), err)
				return
			}

			// Each goroutine owns a distinct index, so no lock is needed.
			points[i] = p
			if s.store != nil {
				s.store.SavePoint(loc, p)
			}
		}(i, date)
	}

	wg.Wait()

	for _, p := range points {
		if p.Available {
			return points, nil
		}
	}
	log.Printf("no successful prediction for %s over %s..%s", loc.Key(), start.Format(DateLayout), end.Format(DateLayout))
	return nil, ErrNoForecast
}

// Live fetches current-day conditions for loc. There is no per-day
// degradation here: any failure is the caller's single error.
func (s *Service) Live(ctx context.Context, loc Location) (LiveReport, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.live.FetchLive(ctx, loc)
}

// Prewarm populates the cache with the next days of forecast for loc,
// starting today. Used by the scheduler; failures are non-fatal there.
func (s *Service) Prewarm(ctx context.Context, loc Location, days int) error {
	if days <= 0 {
		return nil
	}
	today := Midnight(time.Now())
	_, err := s.Aggregate(ctx, loc, today, today.AddDate(0, 0, days-1))
	return err
}
