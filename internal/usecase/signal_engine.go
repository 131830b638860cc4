package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"FXPulse/internal/domain/models"
	drepo "FXPulse/internal/domain/repository"
	"FXPulse/internal/symbols"
	applogger "FXPulse/pkg/logger"
)

// SignalEngine derives trade signals from quotes: price levels off the
// session range, risk/reward validation, and a confidence score that is
// demoted when the underlying quote is synthetic.
type SignalEngine struct {
	quotes  *QuoteService
	mapper  *symbols.Mapper
	store   drepo.SignalStore     // optional
	pub     drepo.SignalPublisher // optional
	metrics drepo.Metrics
	logger  *applogger.Logger

	minRiskReward float64
	rewardFactor  float64
}

func NewSignalEngine(
	quotes *QuoteService,
	mapper *symbols.Mapper,
	store drepo.SignalStore,
	pub drepo.SignalPublisher,
	metrics drepo.Metrics,
	logger *applogger.Logger,
	minRiskReward, rewardFactor float64,
) *SignalEngine {
	if minRiskReward <= 0 {
		minRiskReward = 1.5
	}
	if rewardFactor <= 0 {
		rewardFactor = 1.0
	}
	return &SignalEngine{
		quotes:        quotes,
		mapper:        mapper,
		store:         store,
		pub:           pub,
		metrics:       metrics,
		logger:        logger,
		minRiskReward: minRiskReward,
		rewardFactor:  rewardFactor,
	}
}

// PipSizeFor returns the price increment for unit conversion between broker
// price levels and pips. JPY-quoted pairs and metals quote two decimals.
func PipSizeFor(mapper *symbols.Mapper, brokerSymbol string) float64 {
	switch mapper.Classify(brokerSymbol) {
	case models.CategoryIndex:
		return 1.0
	case models.CategoryMetal:
		return 0.01
	case models.CategoryForex:
		if strings.Contains(brokerSymbol, "JPY") {
			return 0.01
		}
		return 0.0001
	default:
		return 0.0001
	}
}

// Generate builds a signal for the symbol, publishes it and appends it to
// history. Publishing and storage are best-effort: a downstream outage must
// not block signal delivery to the requesting caller.
func (e *SignalEngine) Generate(ctx context.Context, symbol string) *models.TradeSignal {
	q := e.quotes.Quote(ctx, symbol)
	sig := e.derive(q)

	e.metrics.RecordSignal(string(sig.Direction))

	if e.pub != nil {
		if err := e.pub.Publish(ctx, sig); err != nil {
			e.logger.Warn("signal publish failed", applogger.String("symbol", sig.Symbol), applogger.Error(err))
			e.metrics.RecordError("signal_publish")
		}
	}
	if e.store != nil {
		if err := e.store.Store(ctx, sig); err != nil {
			e.logger.Warn("signal store failed", applogger.String("symbol", sig.Symbol), applogger.Error(err))
			e.metrics.RecordError("signal_store")
		}
	}

	return sig
}

// History returns previously generated signals for a symbol.
func (e *SignalEngine) History(ctx context.Context, symbol string, from, to time.Time, limit int) ([]*models.TradeSignal, error) {
	if e.store == nil {
		return nil, errors.New("signal history not configured")
	}
	broker := e.mapper.ToBroker(symbol)
	return e.store.Query(ctx, broker, from, to, limit)
}

// HasHistory reports whether a signal store is configured.
func (e *SignalEngine) HasHistory() bool { return e.store != nil }

func (e *SignalEngine) derive(q *models.MarketQuote) *models.TradeSignal {
	pip := PipSizeFor(e.mapper, q.Symbol)
	mid := q.Mid()

	// Session range drives the price levels. Degenerate ranges (flat or
	// inverted candles) fall back to a 20-pip band around mid.
	high, low := q.High, q.Low
	if high <= low {
		high = mid + 10*pip
		low = mid - 10*pip
	}
	rng := high - low
	center := (high + low) / 2

	var factors []string
	var sig models.TradeSignal
	sig.Symbol = q.Symbol
	sig.Display = q.Display
	sig.PipSize = pip
	sig.Source = q.Source
	sig.CreatedAt = time.Now().UTC()

	// Position of mid within the session range is the momentum proxy:
	// trading above center leans long, below leans short.
	momentum := (mid - center) / (rng / 2) // -1..1 when mid stays in range
	if momentum > 1 {
		momentum = 1
	} else if momentum < -1 {
		momentum = -1
	}

	buffer := 2 * pip
	if momentum >= 0 {
		sig.Direction = models.DirectionBuy
		sig.Entry = q.Ask
		sig.StopLoss = low - buffer
		sig.TakeProfit = sig.Entry + e.rewardFactor*rng
		factors = append(factors, "momentum_up")
	} else {
		sig.Direction = models.DirectionSell
		sig.Entry = q.Bid
		sig.StopLoss = high + buffer
		sig.TakeProfit = sig.Entry - e.rewardFactor*rng
		factors = append(factors, "momentum_down")
	}

	risk := sig.Entry - sig.StopLoss
	reward := sig.TakeProfit - sig.Entry
	if sig.Direction == models.DirectionSell {
		risk = sig.StopLoss - sig.Entry
		reward = sig.Entry - sig.TakeProfit
	}
	if risk > 0 {
		sig.RiskReward = reward / risk
	}

	// Confidence: momentum strength, demoted on synthetic data and on
	// spreads wide relative to the range.
	conf := 0.5 + 0.4*abs(momentum)
	if q.Source == models.SourceSynthetic {
		conf -= 0.25
		factors = append(factors, "synthetic_data")
	}
	if rng > 0 && q.Spread > rng/4 {
		conf -= 0.1
		factors = append(factors, "wide_spread")
	}
	sig.Confidence = clamp(conf, 0.05, 0.95)

	if sig.RiskReward < e.minRiskReward {
		// Not worth taking; demote to HOLD but keep the computed levels
		// so the caller can see why.
		sig.Direction = models.DirectionHold
		factors = append(factors, "risk_reward_below_minimum")
	}
	sig.Factors = factors

	return &sig
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
