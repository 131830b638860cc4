package usecase

import (
	"context"
	"errors"
	"time"

	"FXPulse/internal/domain/models"
	drepo "FXPulse/internal/domain/repository"
	"FXPulse/internal/service/synth"
	"FXPulse/internal/symbols"
	applogger "FXPulse/pkg/logger"
)

// QuoteService supplies a best-effort MarketQuote for a symbol, preferring
// the live feed and degrading to tagged synthetic data. It never returns an
// error: every upstream failure is mapped to the synthetic path. Callers
// must branch on the Source tag, never on errors.
type QuoteService struct {
	mapper  *symbols.Mapper
	feed    drepo.LiveFeed
	hasCred bool
	synth   *synth.Generator
	metrics drepo.Metrics
	logger  *applogger.Logger
}

func NewQuoteService(
	mapper *symbols.Mapper,
	feed drepo.LiveFeed,
	hasCred bool,
	gen *synth.Generator,
	metrics drepo.Metrics,
	logger *applogger.Logger,
) *QuoteService {
	return &QuoteService{
		mapper:  mapper,
		feed:    feed,
		hasCred: hasCred,
		synth:   gen,
		metrics: metrics,
		logger:  logger,
	}
}

// Quote returns a quote for a symbol given in either representation.
func (s *QuoteService) Quote(ctx context.Context, symbol string) *models.MarketQuote {
	broker := s.mapper.ToBroker(symbol)

	if !s.hasCred || s.feed == nil {
		// No credential: skip the network entirely. Routine, so no warning.
		s.logger.Debug("quote synthesized without credential", applogger.String("symbol", broker))
		return s.fallback(broker, models.ReasonNoCredential)
	}

	start := time.Now()
	q, err := s.feed.FetchQuote(ctx, broker)
	s.metrics.RecordProviderLatency("oanda", time.Since(start).Seconds())
	if err != nil {
		reason := classifyFailure(err)
		s.logger.Warn("live quote failed, falling back to synthetic",
			applogger.String("symbol", broker),
			applogger.String("reason", string(reason)),
			applogger.Error(err),
		)
		s.metrics.RecordError(string(reason))
		return s.fallback(broker, reason)
	}

	q.Display = s.mapper.ToDisplay(broker)
	s.metrics.RecordQuoteServed(string(models.SourceLive), broker)
	s.metrics.RecordLastMid(broker, q.Mid())
	return q
}

func (s *QuoteService) fallback(broker string, reason models.FallbackReason) *models.MarketQuote {
	s.metrics.RecordFallback(string(reason))
	q := s.synth.Generate(broker, reason)
	s.metrics.RecordQuoteServed(string(models.SourceSynthetic), broker)
	s.metrics.RecordLastMid(broker, q.Mid())
	return q
}

// Mapper exposes the symbol mapper for handlers sharing the service.
func (s *QuoteService) Mapper() *symbols.Mapper { return s.mapper }

func classifyFailure(err error) models.FallbackReason {
	switch {
	case errors.Is(err, models.ErrUnauthorized):
		return models.ReasonUnauthorized
	case errors.Is(err, models.ErrNoData):
		return models.ReasonNoData
	default:
		// Transport failures and anything unexpected; a single attempt,
		// no retry, straight to synthesis.
		return models.ReasonNetwork
	}
}
