package oanda

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"FXPulse/internal/domain/models"
)

func TestFetchQuoteParsesCandle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/instruments/EUR_USD/candles" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"instrument": "EUR_USD",
			"candles": [{
				"time": "2025-06-02T14:00:00Z",
				"volume": 4821,
				"complete": false,
				"bid": {"o": "1.0840", "h": "1.0861", "l": "1.0833", "c": "1.0850"},
				"ask": {"o": "1.0842", "h": "1.0863", "l": "1.0835", "c": "1.0852"}
			}]
		}`))
	}))
	defer srv.Close()

	feed := New("test-key", srv.URL, 5*time.Second)
	q, err := feed.FetchQuote(context.Background(), "EUR_USD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Bid != 1.0850 || q.Ask != 1.0852 {
		t.Fatalf("bid/ask = %v/%v", q.Bid, q.Ask)
	}
	if q.High != 1.0861 || q.Low != 1.0833 {
		t.Fatalf("high/low = %v/%v", q.High, q.Low)
	}
	if q.Volume != 4821 {
		t.Fatalf("volume = %v", q.Volume)
	}
	if q.Source != models.SourceLive {
		t.Fatalf("source = %s", q.Source)
	}
	want := time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)
	if !q.Timestamp.Equal(want) {
		t.Fatalf("timestamp = %v", q.Timestamp)
	}
}

func TestFetchQuoteUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errorMessage":"Insufficient authorization"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	feed := New("expired", srv.URL, 5*time.Second)
	_, err := feed.FetchQuote(context.Background(), "EUR_USD")
	if !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
}

func TestFetchQuoteNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"instrument": "EUR_USD", "candles": []}`))
	}))
	defer srv.Close()

	feed := New("test-key", srv.URL, 5*time.Second)
	_, err := feed.FetchQuote(context.Background(), "EUR_USD")
	if !errors.Is(err, models.ErrNoData) {
		t.Fatalf("want ErrNoData, got %v", err)
	}
}

func TestFetchQuoteNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	feed := New("test-key", srv.URL, time.Second)
	_, err := feed.FetchQuote(context.Background(), "EUR_USD")
	if !models.IsNetworkError(err) {
		t.Fatalf("want NetworkError, got %v", err)
	}
}
