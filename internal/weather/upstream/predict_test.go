package upstream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/i474232898/ussd-weather-gateway/internal/weather"
)

var machakos = weather.Location{Name: "Machakos", Lat: -1.5167, Lon: 37.2667}

func TestPredictSendsDateAndLocation(t *testing.T) {
	var gotBody predictRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]float64{
			"temperature_prediction": 24.53,
			"rain_prediction":        2.1,
		})
	}))
	defer server.Close()

	client := NewPredictClient(server.Client(), server.URL)
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	point, err := client.Predict(context.Background(), machakos, date)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	if gotBody.Date != "2024-03-15" || gotBody.Location != "Machakos" {
		t.Fatalf("unexpected request body: %+v", gotBody)
	}
	if !point.Available {
		t.Fatal("successful prediction not marked available")
	}
	if point.Temperature != 24.53 || point.Rain != 2.1 {
		t.Fatalf("unexpected point: %+v", point)
	}
	if !point.Date.Equal(date) {
		t.Fatalf("point date %s, want %s", point.Date, date)
	}
}

func TestPredictRejectsMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewPredictClient(server.Client(), server.URL)
	_, err := client.Predict(context.Background(), machakos, time.Now())
	if err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestPredictHonoursContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server notices the client disconnect;
		// otherwise r.Context() never fires and Close hangs.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewPredictClient(server.Client(), server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Predict(ctx, machakos, time.Now())
	if err == nil {
		t.Fatal("expected error after context deadline")
	}
}
