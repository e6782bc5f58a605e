package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/i474232898/ussd-weather-gateway/internal/weather"
)

// LiveClient implements weather.LiveSource against the live-weather
// service (GET /live_weather?location=...).
type LiveClient struct {
	url     string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewLiveClient creates a client for the live-weather endpoint at rawURL.
func NewLiveClient(client *http.Client, rawURL string) *LiveClient {
	return &LiveClient{
		url: rawURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff(),
		},
		circuit: newBreaker("live_weather"),
	}
}

// FetchLive requests current-day conditions for loc. The backend reports
// application errors in-band with a 200 status, so the payload is checked
// for an error field before it counts as success.
func (c *LiveClient) FetchLive(ctx context.Context, loc weather.Location) (weather.LiveReport, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("location", loc.Key())

		u := fmt.Sprintf("%s?%s", c.url, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return weather.LiveReport{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		weather.LiveReport
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.LiveReport{}, err
	}
	if payload.Error != "" {
		return weather.LiveReport{}, fmt.Errorf("live weather service: %s", payload.Error)
	}
	if payload.Date == "" {
		return weather.LiveReport{}, fmt.Errorf("live weather service: malformed payload")
	}

	return payload.LiveReport, nil
}
