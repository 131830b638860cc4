package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"FXPulse/internal/usecase"
	xlogger "FXPulse/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	wsWriteTimeout = 5 * time.Second
	wsPongTimeout  = 60 * time.Second
	wsPingPeriod   = 30 * time.Second
	wsMaxSymbols   = 16
)

// QuotesWSHandler streams quotes over WebSocket. Clients connect with
// ?symbols=EURUSD,GOLD and receive one frame per symbol per push period.
type QuotesWSHandler struct {
	logger     *xlogger.Logger
	quotes     *usecase.QuoteService
	upgrader   websocket.Upgrader
	pushPeriod time.Duration
}

func NewQuotesWSHandler(logger *xlogger.Logger, quotes *usecase.QuoteService, pushPeriod time.Duration) *QuotesWSHandler {
	if pushPeriod <= 0 {
		pushPeriod = 2 * time.Second
	}
	return &QuotesWSHandler{
		logger: logger,
		quotes: quotes,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pushPeriod: pushPeriod,
	}
}

func (h *QuotesWSHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/quotes", h.Stream)
}

func (h *QuotesWSHandler) Stream(c echo.Context) error {
	syms := parseSymbols(c.QueryParam("symbols"), h.quotes)
	if len(syms) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no valid symbols")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	h.logger.Info("ws client connected",
		xlogger.String("remote", c.RealIP()),
		xlogger.Strings("symbols", syms))

	ctx := c.Request().Context()
	done := make(chan struct{})

	// Read pump: discard inbound frames, surface close.
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
	})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.pushPeriod)
	defer ticker.Stop()
	pinger := time.NewTicker(wsPingPeriod)
	defer pinger.Stop()

	// Initial burst so clients see data before the first tick.
	if err := h.push(ctx, conn, syms); err != nil {
		return nil
	}

	for {
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return nil
		case <-pinger.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		case <-ticker.C:
			if err := h.push(ctx, conn, syms); err != nil {
				h.logger.Debug("ws push ended", xlogger.Error(err))
				return nil
			}
		}
	}
}

func (h *QuotesWSHandler) push(ctx context.Context, conn *websocket.Conn, syms []string) error {
	for _, s := range syms {
		q := h.quotes.Quote(ctx, s)
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(q); err != nil {
			return err
		}
	}
	return nil
}

func parseSymbols(raw string, quotes *usecase.QuoteService) []string {
	var out []string
	seen := map[string]bool{}
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s == "" || !quotes.Mapper().IsValid(s) {
			continue
		}
		broker := quotes.Mapper().ToBroker(s)
		if seen[broker] {
			continue
		}
		seen[broker] = true
		out = append(out, broker)
		if len(out) == wsMaxSymbols {
			break
		}
	}
	return out
}
