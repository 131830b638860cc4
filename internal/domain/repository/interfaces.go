package repository

import (
	"context"
	"time"

	"FXPulse/internal/domain/models"
)

// LiveFeed is the upstream market-data provider boundary. Implementations
// return typed errors (models.ErrUnauthorized, models.ErrNoData,
// *models.NetworkError); the quote service decides what to do with them.
type LiveFeed interface {
	FetchQuote(ctx context.Context, brokerSymbol string) (*models.MarketQuote, error)
}

// SignalStore persists generated trade signals (append-only history).
type SignalStore interface {
	Store(ctx context.Context, s *models.TradeSignal) error
	Query(ctx context.Context, symbol string, from, to time.Time, limit int) ([]*models.TradeSignal, error)
	Health(ctx context.Context) error
	Close() error
}

// SignalPublisher emits generated signals to downstream consumers.
type SignalPublisher interface {
	Publish(ctx context.Context, s *models.TradeSignal) error
	Close() error
}

// Metrics records operational metrics.
type Metrics interface {
	RecordQuoteServed(source, symbol string)
	RecordFallback(reason string)
	RecordSignal(direction string)
	RecordError(kind string)
	RecordLastMid(symbol string, price float64)
	RecordProviderLatency(provider string, seconds float64)
}
