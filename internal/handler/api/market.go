package api

import (
	"encoding/json"
	"time"

	models "FXPulse/internal/domain/models"
	"FXPulse/internal/service/cache"
	endpointmetrics "FXPulse/internal/service/metrics"
	"FXPulse/internal/service/ratelimit"
	"FXPulse/internal/usecase"
	xhttp "FXPulse/pkg/http"
	xlogger "FXPulse/pkg/logger"
	"FXPulse/pkg/util"

	"github.com/labstack/echo/v4"
)

// MarketHandler implements Echo-based HTTP handlers for the market-data API.
type MarketHandler struct {
	logger    *xlogger.Logger
	quotes    *usecase.QuoteService
	engine    *usecase.SignalEngine
	cache     cache.BytesCache
	limiter   *ratelimit.Limiter
	collector *xlogger.Collector
	cacheTTL  time.Duration

	// token bucket per client IP for /api/quote
	rateCapacity float64
	ratePerSec   float64
}

func NewMarketHandler(
	logger *xlogger.Logger,
	quotes *usecase.QuoteService,
	engine *usecase.SignalEngine,
	c cache.BytesCache,
	collector *xlogger.Collector,
	cacheTTL time.Duration,
) *MarketHandler {
	if cacheTTL <= 0 {
		cacheTTL = 2 * time.Second
	}
	return &MarketHandler{
		logger:       logger,
		quotes:       quotes,
		engine:       engine,
		cache:        c,
		limiter:      ratelimit.New(),
		collector:    collector,
		cacheTTL:     cacheTTL,
		rateCapacity: 20,
		ratePerSec:   10,
	}
}

func (h *MarketHandler) RegisterRoutes(e *echo.Echo) {
	endpointmetrics.Register()

	g := e.Group("/api")
	g.GET("/quote", h.Quote)
	g.GET("/symbol", h.Symbol)
	g.GET("/signal", h.Signal)
	g.GET("/signals/history", h.History)
	g.GET("/admin/logs", h.AdminLogs)

	e.GET("/healthz", h.Health)
}

// Quote serves a market quote. It never returns 5xx for upstream trouble;
// the quote service degrades to synthetic data instead.
func (h *MarketHandler) Quote(c echo.Context) error {
	start := time.Now()
	defer func() {
		endpointmetrics.EndpointLatency.WithLabelValues("quote").Observe(time.Since(start).Seconds())
	}()

	if !h.limiter.Allow(c.RealIP(), h.rateCapacity, h.ratePerSec) {
		endpointmetrics.EndpointErrors.WithLabelValues("quote").Inc()
		return xhttp.TooManyRequestsResponse(c)
	}

	req := &models.QuoteRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		endpointmetrics.EndpointErrors.WithLabelValues("quote").Inc()
		return xhttp.BadRequestResponse(c, verr)
	}

	broker := h.quotes.Mapper().ToBroker(req.Symbol)
	key := "quote:" + broker
	if h.cache != nil {
		if b, ok, err := h.cache.GetBytes(key); err == nil && ok {
			var q models.MarketQuote
			if err := json.Unmarshal(b, &q); err == nil {
				return xhttp.SuccessResponse(c, &q)
			}
		}
	}

	q := h.quotes.Quote(c.Request().Context(), req.Symbol)
	if h.cache != nil {
		if b, err := json.Marshal(q); err == nil {
			_ = h.cache.SetBytes(key, b, h.cacheTTL)
		}
	}
	return xhttp.SuccessResponse(c, q)
}

// Symbol resolves symbol metadata for either representation.
func (h *MarketHandler) Symbol(c echo.Context) error {
	req := &models.QuoteRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	m := h.quotes.Mapper()
	if !m.IsValid(req.Symbol) {
		endpointmetrics.EndpointErrors.WithLabelValues("symbol").Inc()
		return xhttp.NotFoundResponse(c, "symbol")
	}
	info := m.Info(req.Symbol)
	return xhttp.SuccessResponse(c, info)
}

// Signal generates a fresh trade signal for the requested instrument.
func (h *MarketHandler) Signal(c echo.Context) error {
	start := time.Now()
	defer func() {
		endpointmetrics.EndpointLatency.WithLabelValues("signal").Observe(time.Since(start).Seconds())
	}()

	req := &models.SignalRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		endpointmetrics.EndpointErrors.WithLabelValues("signal").Inc()
		return xhttp.BadRequestResponse(c, verr)
	}

	sig := h.engine.Generate(c.Request().Context(), req.Symbol)
	return xhttp.SuccessResponse(c, sig)
}

// History lists previously generated signals from the store.
func (h *MarketHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.engine.HasHistory() {
		return xhttp.AppErrorResponse(c, xhttp.UnavailableError("signal history not configured"))
	}

	now := time.Now().UTC()
	from := util.ParseTimeDefault(req.From, now.Add(-24*time.Hour))
	to := util.ParseTimeDefault(req.To, now)

	signals, err := h.engine.History(c.Request().Context(), req.Symbol, from, to, req.Limit)
	if err != nil {
		h.logger.Error("signal history query failed", xlogger.Error(err), xlogger.String("symbol", req.Symbol))
		endpointmetrics.EndpointErrors.WithLabelValues("history").Inc()
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, signals, int64(len(signals)))
}

// AdminLogs exposes aggregated warn/error log entries for operators.
func (h *MarketHandler) AdminLogs(c echo.Context) error {
	if h.collector == nil {
		return xhttp.ListResponse(c, []xlogger.AggregatedEntry{}, 0)
	}
	entries := h.collector.Snapshot()
	return xhttp.ListResponse(c, entries, int64(len(entries)))
}

// Health reports liveness. Quote serving works without any backend, so
// this only confirms the process is up.
func (h *MarketHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}
