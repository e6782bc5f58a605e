package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelvins/geocoder"

	"github.com/i474232898/ussd-weather-gateway/internal/weather"
)

// Default location set: the pilot deployment's coverage area.
const defaultLocations = "Machakos:-1.5167:37.2667,Kakamega:0.2827:34.7519"

type AppConfig struct {
	// Upstream endpoints.
	PredictURL     string
	LiveWeatherURL string

	// Locations offered on the USSD menu, in menu order.
	Locations []weather.Location

	// MaxRangeDays bounds a custom range's inclusive day count; it is what
	// keeps reply size and request fan-out bounded.
	MaxRangeDays int

	// Windows are the fixed forecast options, in days.
	Windows []int

	// ReplyMaxLen caps rendered USSD replies (0 = uncapped).
	ReplyMaxLen int

	HTTPTimeout  time.Duration
	FetchWorkers int

	// Forecast cache retention.
	CacheMaxPoints int
	CacheMaxAge    time.Duration

	// Cache prewarm job.
	PrewarmInterval time.Duration
	PrewarmDays     int

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.PredictURL = getenvDefault("PREDICT_URL", "http://localhost:8000/predict")
	cfg.LiveWeatherURL = getenvDefault("LIVE_WEATHER_URL", "http://localhost:8000/live_weather")

	cfg.MaxRangeDays = getenvInt("MAX_RANGE_DAYS", 16)
	if cfg.MaxRangeDays < 1 {
		return nil, fmt.Errorf("MAX_RANGE_DAYS must be at least 1")
	}

	windows, err := parseWindows(getenvDefault("FORECAST_WINDOWS", "1,2,3,7,14"))
	if err != nil {
		return nil, err
	}
	cfg.Windows = windows

	cfg.ReplyMaxLen = getenvInt("REPLY_MAX_LEN", 640)

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.FetchWorkers = getenvInt("FETCH_CONCURRENCY", 4)

	cfg.CacheMaxPoints = getenvInt("CACHE_MAX_POINTS", 32)
	maxAgeStr := getenvDefault("CACHE_MAX_AGE", "6h")
	maxAge, err := time.ParseDuration(maxAgeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_MAX_AGE: %w", err)
	}
	cfg.CacheMaxAge = maxAge

	prewarmStr := getenvDefault("PREWARM_INTERVAL", "6h")
	prewarm, err := time.ParseDuration(prewarmStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PREWARM_INTERVAL: %w", err)
	}
	cfg.PrewarmInterval = prewarm
	cfg.PrewarmDays = getenvInt("PREWARM_DAYS", 7)

	cfg.Port = getenvDefault("PORT", "8080")

	locs, err := loadLocations()
	if err != nil {
		return nil, err
	}
	cfg.Locations = locs

	return cfg, nil
}

// loadLocations parses USSD_LOCATIONS, a comma-separated list of
// "Name:lat:lon" entries. A bare "Name" entry is resolved through the
// geocoding API when GEOCODER_API_KEY is set.
func loadLocations() ([]weather.Location, error) {
	raw := getenvDefault("USSD_LOCATIONS", defaultLocations)
	country := getenvDefault("GEOCODER_COUNTRY", "Kenya")
	geocoder.ApiKey = os.Getenv("GEOCODER_API_KEY")

	var locs []weather.Location
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.Split(entry, ":")
		switch len(parts) {
		case 1:
			if geocoder.ApiKey == "" {
				return nil, fmt.Errorf("location %q has no coordinates and GEOCODER_API_KEY is not set", entry)
			}
			coords, err := geocoder.Geocoding(geocoder.Address{City: parts[0], Country: country})
			if err != nil {
				return nil, fmt.Errorf("geocoding %q: %w", parts[0], err)
			}
			locs = append(locs, weather.Location{Name: parts[0], Lat: coords.Latitude, Lon: coords.Longitude})
		case 3:
			lat, err := strconv.ParseFloat(parts[1], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid latitude in %q: %w", entry, err)
			}
			lon, err := strconv.ParseFloat(parts[2], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid longitude in %q: %w", entry, err)
			}
			locs = append(locs, weather.Location{Name: parts[0], Lat: lat, Lon: lon})
		default:
			return nil, fmt.Errorf("invalid USSD_LOCATIONS entry %q; want Name or Name:lat:lon", entry)
		}
	}

	if len(locs) == 0 {
		return nil, fmt.Errorf("no locations configured")
	}
	return locs, nil
}

func parseWindows(raw string) ([]int, error) {
	var windows []int
	for _, w := range strings.Split(raw, ",") {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		n, err := strconv.Atoi(w)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid FORECAST_WINDOWS entry %q", w)
		}
		windows = append(windows, n)
	}
	if len(windows) == 0 {
		return nil, fmt.Errorf("no forecast windows configured")
	}
	return windows, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
