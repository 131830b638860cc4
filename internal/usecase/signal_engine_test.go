package usecase

import (
	"context"
	"testing"
	"time"

	"FXPulse/internal/domain/models"
	"FXPulse/internal/symbols"
)

type fakeStore struct {
	stored []*models.TradeSignal
}

func (s *fakeStore) Store(ctx context.Context, sig *models.TradeSignal) error {
	s.stored = append(s.stored, sig)
	return nil
}

func (s *fakeStore) Query(ctx context.Context, symbol string, from, to time.Time, limit int) ([]*models.TradeSignal, error) {
	var out []*models.TradeSignal
	for _, sig := range s.stored {
		if sig.Symbol == symbol {
			out = append(out, sig)
		}
	}
	return out, nil
}

func (s *fakeStore) Health(ctx context.Context) error { return nil }
func (s *fakeStore) Close() error                     { return nil }

type fakePublisher struct {
	published []*models.TradeSignal
}

func (p *fakePublisher) Publish(ctx context.Context, sig *models.TradeSignal) error {
	p.published = append(p.published, sig)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func newEngine(t *testing.T, feed *fakeFeed, hasCred bool, minRR float64) (*SignalEngine, *fakeStore, *fakePublisher) {
	t.Helper()
	mapper := symbols.NewMapper()
	qs := newQuoteService(t, feed, hasCred, newFakeMetrics())
	store := &fakeStore{}
	pub := &fakePublisher{}
	eng := NewSignalEngine(qs, mapper, store, pub, newFakeMetrics(), testLogger(t), minRR, 1.0)
	return eng, store, pub
}

func upperRangeQuote() *models.MarketQuote {
	// Mid well above range center: long bias.
	return &models.MarketQuote{
		Bid: 1.0858, Ask: 1.0860, Spread: 0.0002,
		High: 1.0861, Low: 1.0801,
		Source: models.SourceLive, Timestamp: time.Now(),
	}
}

func lowerRangeQuote() *models.MarketQuote {
	return &models.MarketQuote{
		Bid: 1.0803, Ask: 1.0805, Spread: 0.0002,
		High: 1.0861, Low: 1.0801,
		Source: models.SourceLive, Timestamp: time.Now(),
	}
}

func TestGenerateBuySignal(t *testing.T) {
	eng, store, pub := newEngine(t, &fakeFeed{quote: upperRangeQuote()}, true, 0.5)

	sig := eng.Generate(context.Background(), "EUR_USD")
	if sig.Direction != models.DirectionBuy {
		t.Fatalf("direction = %s, factors %v rr %v", sig.Direction, sig.Factors, sig.RiskReward)
	}
	if sig.StopLoss >= sig.Entry {
		t.Fatalf("stop %v must be below entry %v", sig.StopLoss, sig.Entry)
	}
	if sig.TakeProfit <= sig.Entry {
		t.Fatalf("target %v must be above entry %v", sig.TakeProfit, sig.Entry)
	}
	if sig.RiskReward <= 0 {
		t.Fatalf("risk reward = %v", sig.RiskReward)
	}
	if len(store.stored) != 1 || len(pub.published) != 1 {
		t.Fatalf("signal should be stored and published: %d/%d", len(store.stored), len(pub.published))
	}
}

func TestGenerateSellSignal(t *testing.T) {
	eng, _, _ := newEngine(t, &fakeFeed{quote: lowerRangeQuote()}, true, 0.1)

	sig := eng.Generate(context.Background(), "EUR_USD")
	if sig.Direction != models.DirectionSell {
		t.Fatalf("direction = %s", sig.Direction)
	}
	if sig.StopLoss <= sig.Entry {
		t.Fatalf("stop %v must be above entry %v", sig.StopLoss, sig.Entry)
	}
	if sig.TakeProfit >= sig.Entry {
		t.Fatalf("target %v must be below entry %v", sig.TakeProfit, sig.Entry)
	}
}

func TestGenerateHoldBelowMinRiskReward(t *testing.T) {
	eng, _, _ := newEngine(t, &fakeFeed{quote: upperRangeQuote()}, true, 100)

	sig := eng.Generate(context.Background(), "EUR_USD")
	if sig.Direction != models.DirectionHold {
		t.Fatalf("direction = %s", sig.Direction)
	}
	found := false
	for _, f := range sig.Factors {
		if f == "risk_reward_below_minimum" {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing demotion factor: %v", sig.Factors)
	}
}

func TestSyntheticQuoteDemotesConfidence(t *testing.T) {
	live, _, _ := newEngine(t, &fakeFeed{quote: upperRangeQuote()}, true, 0.1)
	synthetic, _, _ := newEngine(t, nil, false, 0.1)

	sl := live.Generate(context.Background(), "EUR_USD")
	ss := synthetic.Generate(context.Background(), "EUR_USD")

	if sl.Source != models.SourceLive || ss.Source != models.SourceSynthetic {
		t.Fatalf("provenance lost: %s / %s", sl.Source, ss.Source)
	}
	foundFactor := false
	for _, f := range ss.Factors {
		if f == "synthetic_data" {
			foundFactor = true
		}
	}
	if !foundFactor {
		t.Fatalf("synthetic signal must carry synthetic_data factor: %v", ss.Factors)
	}
}

func TestHistoryUsesBrokerSymbol(t *testing.T) {
	eng, store, _ := newEngine(t, &fakeFeed{quote: upperRangeQuote()}, true, 0.1)

	eng.Generate(context.Background(), "GOLD")
	if len(store.stored) != 1 || store.stored[0].Symbol != "XAU_USD" {
		t.Fatalf("stored = %+v", store.stored)
	}

	got, err := eng.History(context.Background(), "GOLD", time.Time{}, time.Now(), 10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("history rows = %d", len(got))
	}
}

func TestPipSizeFor(t *testing.T) {
	mapper := symbols.NewMapper()
	tests := []struct {
		symbol string
		want   float64
	}{
		{"EUR_USD", 0.0001},
		{"USD_JPY", 0.01},
		{"GBP_JPY", 0.01},
		{"XAU_USD", 0.01},
		{"US30_USD", 1.0},
	}
	for _, tt := range tests {
		if got := PipSizeFor(mapper, tt.symbol); got != tt.want {
			t.Errorf("PipSizeFor(%s) = %v, want %v", tt.symbol, got, tt.want)
		}
	}
}
