package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/ussd-weather-gateway/internal/weather"
)

// PredictClient implements weather.Predictor against the external
// prediction service (POST /predict).
type PredictClient struct {
	url     string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewPredictClient creates a client for the prediction endpoint at url.
func NewPredictClient(client *http.Client, url string) *PredictClient {
	return &PredictClient{
		url: url,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff(),
		},
		circuit: newBreaker("predict"),
	}
}

type predictRequest struct {
	Date     string `json:"date"`
	Location string `json:"location"`
}

type predictResponse struct {
	Temperature float64 `json:"temperature_prediction"`
	Rain        float64 `json:"rain_prediction"`
}

// Predict requests the temperature/rain prediction for one (location, day).
func (c *PredictClient) Predict(ctx context.Context, loc weather.Location, date time.Time) (weather.ForecastPoint, error) {
	body, err := json.Marshal(predictRequest{
		Date:     date.Format(weather.DateLayout),
		Location: loc.Name,
	})
	if err != nil {
		return weather.ForecastPoint{}, err
	}

	buildRequest := func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodPost, c.url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return weather.ForecastPoint{}, err
	}
	defer resp.Body.Close()

	var payload predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.ForecastPoint{}, err
	}

	return weather.ForecastPoint{
		Date:        weather.Midnight(date),
		Temperature: payload.Temperature,
		Rain:        payload.Rain,
		Available:   true,
	}, nil
}
