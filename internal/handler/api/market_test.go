package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	models "FXPulse/internal/domain/models"
	"FXPulse/internal/service/cache"
	"FXPulse/internal/service/synth"
	"FXPulse/internal/symbols"
	"FXPulse/internal/usecase"
	xhttp "FXPulse/pkg/http"
	xlogger "FXPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

type noopMetrics struct{}

func (noopMetrics) RecordQuoteServed(string, string)     {}
func (noopMetrics) RecordFallback(string)                {}
func (noopMetrics) RecordSignal(string)                  {}
func (noopMetrics) RecordError(string)                   {}
func (noopMetrics) RecordLastMid(string, float64)        {}
func (noopMetrics) RecordProviderLatency(string, float64) {}

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

// newTestHandler builds a handler on a synthetic-only quote service.
func newTestHandler(t *testing.T, c cache.BytesCache) *MarketHandler {
	t.Helper()
	l := testLogger(t)
	mapper := symbols.NewMapper()
	gen := synth.NewGeneratorWithSeed(mapper, 7)
	quotes := usecase.NewQuoteService(mapper, nil, false, gen, noopMetrics{}, l)
	engine := usecase.NewSignalEngine(quotes, mapper, nil, nil, noopMetrics{}, l, 0.1, 1.0)
	return NewMarketHandler(l, quotes, engine, c, nil, time.Second)
}

func do(h *MarketHandler, target string) *httptest.ResponseRecorder {
	e := echo.New()
	h.RegisterRoutes(e)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (int, json.RawMessage) {
	t.Helper()
	var env struct {
		Status int             `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	return env.Status, env.Data
}

func TestQuoteEndpointSyntheticFallback(t *testing.T) {
	h := newTestHandler(t, nil)
	rec := do(h, "/api/quote?symbol=EURUSD")

	status, data := decodeEnvelope(t, rec)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	var q models.MarketQuote
	if err := json.Unmarshal(data, &q); err != nil {
		t.Fatalf("decode quote: %v", err)
	}
	if q.Source != models.SourceSynthetic {
		t.Errorf("source = %q, want synthetic", q.Source)
	}
	if q.Reason != models.ReasonNoCredential {
		t.Errorf("reason = %q, want no_credential", q.Reason)
	}
	if q.Symbol != "EUR_USD" || q.Display != "EURUSD" {
		t.Errorf("symbol/display = %q/%q", q.Symbol, q.Display)
	}
	if q.Ask <= q.Bid {
		t.Errorf("ask %v <= bid %v", q.Ask, q.Bid)
	}
}

func TestQuoteEndpointMissingSymbol(t *testing.T) {
	h := newTestHandler(t, nil)
	rec := do(h, "/api/quote")

	status, _ := decodeEnvelope(t, rec)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
}

func TestQuoteEndpointUsesCache(t *testing.T) {
	h := newTestHandler(t, cache.NewTTLCache())

	first := do(h, "/api/quote?symbol=GOLD")
	second := do(h, "/api/quote?symbol=XAU_USD")

	// Same broker symbol, within TTL: the perturbed synthetic quote must
	// be served verbatim from cache rather than regenerated.
	if first.Body.String() != second.Body.String() {
		t.Errorf("cached response differs:\n%s\n%s", first.Body.String(), second.Body.String())
	}
}

func TestSymbolEndpoint(t *testing.T) {
	h := newTestHandler(t, nil)
	rec := do(h, "/api/symbol?symbol=GOLD")

	status, data := decodeEnvelope(t, rec)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	var info models.SymbolInfo
	if err := json.Unmarshal(data, &info); err != nil {
		t.Fatalf("decode info: %v", err)
	}
	if info.Broker != "XAU_USD" || info.Display != "GOLD" || info.Category != models.CategoryMetal {
		t.Errorf("info = %+v", info)
	}
}

func TestSymbolEndpointUnknown(t *testing.T) {
	h := newTestHandler(t, nil)
	rec := do(h, "/api/symbol?symbol=BOGUS1")

	status, _ := decodeEnvelope(t, rec)
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
}

func TestSignalEndpoint(t *testing.T) {
	h := newTestHandler(t, nil)
	rec := do(h, "/api/signal?symbol=USDJPY")

	status, data := decodeEnvelope(t, rec)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	var sig models.TradeSignal
	if err := json.Unmarshal(data, &sig); err != nil {
		t.Fatalf("decode signal: %v", err)
	}
	if sig.Symbol != "USD_JPY" {
		t.Errorf("symbol = %q", sig.Symbol)
	}
	switch sig.Direction {
	case models.DirectionBuy, models.DirectionSell, models.DirectionHold:
	default:
		t.Errorf("direction = %q", sig.Direction)
	}
	if sig.PipSize != 0.01 {
		t.Errorf("pip size = %v, want 0.01 for JPY pair", sig.PipSize)
	}
}

func TestHistoryWithoutStore(t *testing.T) {
	h := newTestHandler(t, nil)
	rec := do(h, "/api/signals/history?symbol=EURUSD")

	status, _ := decodeEnvelope(t, rec)
	if status != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", status)
	}
}

func TestAdminLogsSnapshot(t *testing.T) {
	l := testLogger(t)
	mapper := symbols.NewMapper()
	gen := synth.NewGenerator(mapper)
	quotes := usecase.NewQuoteService(mapper, nil, false, gen, noopMetrics{}, l)
	engine := usecase.NewSignalEngine(quotes, mapper, nil, nil, noopMetrics{}, l, 1.5, 1.0)

	collector := xlogger.NewCollector(xlogger.CollectorConfig{})
	collector.Add("warn", "upstream degraded", map[string]interface{}{"symbol": "EUR_USD"}, "oanda/client.go:42")
	collector.Add("warn", "upstream degraded", map[string]interface{}{"symbol": "EUR_USD"}, "oanda/client.go:42")

	h := NewMarketHandler(l, quotes, engine, nil, collector, time.Second)
	rec := do(h, "/api/admin/logs")

	status, data := decodeEnvelope(t, rec)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	var list struct {
		Rows  []xlogger.AggregatedEntry `json:"rows"`
		Total int64                     `json:"total"`
	}
	if err := json.Unmarshal(data, &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if list.Total != 1 || len(list.Rows) != 1 {
		t.Fatalf("total = %d rows = %d, want 1 aggregated entry", list.Total, len(list.Rows))
	}
	if list.Rows[0].Count != 2 {
		t.Errorf("count = %d, want 2", list.Rows[0].Count)
	}
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestHandler(t, nil)
	rec := do(h, "/healthz")

	status, _ := decodeEnvelope(t, rec)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
}

var _ xhttp.Handler = (*MarketHandler)(nil)
