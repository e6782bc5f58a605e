package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	httpapi "github.com/i474232898/ussd-weather-gateway/internal/api/http"
	"github.com/i474232898/ussd-weather-gateway/internal/config"
	"github.com/i474232898/ussd-weather-gateway/internal/scheduler"
	"github.com/i474232898/ussd-weather-gateway/internal/store"
	"github.com/i474232898/ussd-weather-gateway/internal/ussd"
	"github.com/i474232898/ussd-weather-gateway/internal/weather"
	"github.com/i474232898/ussd-weather-gateway/internal/weather/upstream"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound upstream calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory forecast cache with configured retention.
	cache := store.NewMemoryStore(cfg.CacheMaxPoints, cfg.CacheMaxAge)

	// Upstream clients with resilience (backoff + circuit breaker).
	predict := upstream.NewPredictClient(httpClient, cfg.PredictURL)
	live := upstream.NewLiveClient(httpClient, cfg.LiveWeatherURL)

	// Core service orchestrating per-day fetches and the cache.
	service := weather.NewService(cache, predict, live, weather.Options{
		Workers:      cfg.FetchWorkers,
		FetchTimeout: cfg.HTTPTimeout,
	})

	// Stateless USSD menu over the configured locations.
	menu := ussd.NewMenu(cfg.Locations, cfg.Windows, cfg.MaxRangeDays)

	// Scheduler that keeps the cache warm for the menu's locations.
	sched := scheduler.New(cfg.Locations, cfg.PrewarmInterval, cfg.PrewarmDays, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "ussd-weather-gateway",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "ussd-weather-gateway",
		})
	})

	// USSD callback route.
	httpapi.RegisterRoutes(app, menu, service, cfg.ReplyMaxLen)

	// Start server with graceful shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
