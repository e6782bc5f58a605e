package weather

import (
	"context"
	"time"
)

// Predictor abstracts the external prediction service returning one
// temperature/rain prediction per (location, date).
type Predictor interface {
	Predict(ctx context.Context, loc Location, date time.Time) (ForecastPoint, error)
}

// LiveSource abstracts the live-weather service returning current-day
// conditions for a location.
type LiveSource interface {
	FetchLive(ctx context.Context, loc Location) (LiveReport, error)
}

// Store is the contract the in-memory forecast cache (and any future
// persistent cache) must satisfy. Both operations are best effort: a miss
// just means a fetch.
type Store interface {
	SavePoint(loc Location, p ForecastPoint)
	GetPoint(loc Location, date time.Time) (ForecastPoint, error)
}
