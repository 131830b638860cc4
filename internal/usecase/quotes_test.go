package usecase

import (
	"context"
	"math"
	"testing"
	"time"

	"FXPulse/internal/domain/models"
	"FXPulse/internal/service/synth"
	"FXPulse/internal/symbols"
	applogger "FXPulse/pkg/logger"
)

type fakeMetrics struct {
	fallbacks map[string]int
	served    map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{fallbacks: map[string]int{}, served: map[string]int{}}
}

func (m *fakeMetrics) RecordQuoteServed(source, symbol string)       { m.served[source]++ }
func (m *fakeMetrics) RecordFallback(reason string)                  { m.fallbacks[reason]++ }
func (m *fakeMetrics) RecordSignal(direction string)                 {}
func (m *fakeMetrics) RecordError(kind string)                       {}
func (m *fakeMetrics) RecordLastMid(symbol string, price float64)    {}
func (m *fakeMetrics) RecordProviderLatency(p string, secs float64)  {}

type fakeFeed struct {
	quote *models.MarketQuote
	err   error
	calls int
}

func (f *fakeFeed) FetchQuote(ctx context.Context, brokerSymbol string) (*models.MarketQuote, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	q := *f.quote
	q.Symbol = brokerSymbol
	return &q, nil
}

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func newQuoteService(t *testing.T, feed *fakeFeed, hasCred bool, m *fakeMetrics) *QuoteService {
	t.Helper()
	mapper := symbols.NewMapper()
	gen := synth.NewGeneratorWithSeed(mapper, 42)
	var lf = feed
	if feed == nil {
		lf = &fakeFeed{}
	}
	return NewQuoteService(mapper, lf, hasCred, gen, m, testLogger(t))
}

func TestQuoteWithoutCredentialIsSynthetic(t *testing.T) {
	m := newFakeMetrics()
	feed := &fakeFeed{}
	s := newQuoteService(t, feed, false, m)

	for i := 0; i < 10; i++ {
		q := s.Quote(context.Background(), "EURUSD")
		if q.Source != models.SourceSynthetic {
			t.Fatalf("source = %s", q.Source)
		}
		if q.Reason != models.ReasonNoCredential {
			t.Fatalf("reason = %s", q.Reason)
		}
		if q.Ask <= q.Bid {
			t.Fatalf("ask %v <= bid %v", q.Ask, q.Bid)
		}
		if math.Abs(q.Spread-(q.Ask-q.Bid)) > 1e-9 {
			t.Fatalf("spread mismatch")
		}
	}
	if feed.calls != 0 {
		t.Fatalf("network must not be touched without credential, got %d calls", feed.calls)
	}
	if m.fallbacks[string(models.ReasonNoCredential)] != 10 {
		t.Fatalf("fallback metric = %v", m.fallbacks)
	}
}

func TestQuoteLivePassthrough(t *testing.T) {
	m := newFakeMetrics()
	feed := &fakeFeed{quote: &models.MarketQuote{
		Bid: 1.0850, Ask: 1.0852, Spread: 0.0002,
		High: 1.0861, Low: 1.0833, Volume: 100,
		Timestamp: time.Now(), Source: models.SourceLive,
	}}
	s := newQuoteService(t, feed, true, m)

	q := s.Quote(context.Background(), "EUR_USD")
	if q.Source != models.SourceLive {
		t.Fatalf("source = %s", q.Source)
	}
	if q.Display != "EURUSD" {
		t.Fatalf("display = %s", q.Display)
	}
	if q.Reason != "" {
		t.Fatalf("live quote must not carry a fallback reason, got %s", q.Reason)
	}
	if m.served[string(models.SourceLive)] != 1 {
		t.Fatalf("served metric = %v", m.served)
	}
}

func TestQuoteAcceptsDisplayForm(t *testing.T) {
	feed := &fakeFeed{quote: &models.MarketQuote{Bid: 2349, Ask: 2350, Source: models.SourceLive}}
	s := newQuoteService(t, feed, true, newFakeMetrics())

	q := s.Quote(context.Background(), "GOLD")
	if q.Symbol != "XAU_USD" {
		t.Fatalf("symbol = %s", q.Symbol)
	}
}

func TestQuoteFallbackReasons(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want models.FallbackReason
	}{
		{"unauthorized", models.ErrUnauthorized, models.ReasonUnauthorized},
		{"no data", models.ErrNoData, models.ReasonNoData},
		{"network", &models.NetworkError{Op: "candles", Err: context.DeadlineExceeded}, models.ReasonNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newFakeMetrics()
			feed := &fakeFeed{err: tt.err}
			s := newQuoteService(t, feed, true, m)

			q := s.Quote(context.Background(), "EUR_USD")
			if q.Source != models.SourceSynthetic {
				t.Fatalf("source = %s", q.Source)
			}
			if q.Reason != tt.want {
				t.Fatalf("reason = %s, want %s", q.Reason, tt.want)
			}
			if feed.calls != 1 {
				t.Fatalf("exactly one attempt expected, got %d", feed.calls)
			}
		})
	}
}

func TestQuoteSyntheticJPYSpreadWider(t *testing.T) {
	s := newQuoteService(t, nil, false, newFakeMetrics())

	jpy := s.Quote(context.Background(), "USDJPY")
	eur := s.Quote(context.Background(), "EURUSD")
	if jpy.Spread <= eur.Spread {
		t.Fatalf("USDJPY spread %v should exceed EURUSD spread %v", jpy.Spread, eur.Spread)
	}
}
