package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"FXPulse/internal/domain/models"
	"FXPulse/internal/domain/repository"
	pkgkafka "FXPulse/pkg/kafka"
)

// ClickHouseSignalStore implements SignalStore on a MergeTree table.
// History is append-only; signals are never updated or deleted.
type ClickHouseSignalStore struct {
	db    *sql.DB
	table string
}

// NewClickHouseSignalStore creates ClickHouse signal storage.
func NewClickHouseSignalStore(db *sql.DB, table string) repository.SignalStore {
	return &ClickHouseSignalStore{db: db, table: table}
}

// SchemaFor returns the idempotent DDL for the store.
func SchemaFor(database, table string) []string {
	return []string{
		"CREATE DATABASE IF NOT EXISTS " + database,
		"CREATE TABLE IF NOT EXISTS " + database + "." + table + ` (
			ts DateTime,
			symbol String,
			display String,
			direction LowCardinality(String),
			entry Float64,
			stop_loss Float64,
			take_profit Float64,
			risk_reward Float64,
			confidence Float64,
			pip_size Float64,
			source LowCardinality(String),
			factors String
		) ENGINE = MergeTree ORDER BY (symbol, ts)`,
	}
}

func (s *ClickHouseSignalStore) Store(ctx context.Context, sig *models.TradeSignal) error {
	q := "INSERT INTO " + s.table + " (ts, symbol, display, direction, entry, stop_loss, take_profit, risk_reward, confidence, pip_size, source, factors) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	_, err := s.db.ExecContext(ctx, q,
		sig.CreatedAt,
		sig.Symbol,
		sig.Display,
		string(sig.Direction),
		sig.Entry,
		sig.StopLoss,
		sig.TakeProfit,
		sig.RiskReward,
		sig.Confidence,
		sig.PipSize,
		string(sig.Source),
		strings.Join(sig.Factors, ","),
	)
	return err
}

func (s *ClickHouseSignalStore) Query(ctx context.Context, symbol string, from, to time.Time, limit int) ([]*models.TradeSignal, error) {
	q := "SELECT ts, symbol, display, direction, entry, stop_loss, take_profit, risk_reward, confidence, pip_size, source, factors FROM " + s.table +
		" WHERE symbol = ? AND ts >= ? AND ts <= ? ORDER BY ts DESC LIMIT ?"
	rows, err := s.db.QueryContext(ctx, q, symbol, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var signals []*models.TradeSignal
	for rows.Next() {
		var sig models.TradeSignal
		var ts time.Time
		var direction, source, factors string
		if err := rows.Scan(&ts, &sig.Symbol, &sig.Display, &direction, &sig.Entry, &sig.StopLoss,
			&sig.TakeProfit, &sig.RiskReward, &sig.Confidence, &sig.PipSize, &source, &factors); err != nil {
			return nil, err
		}
		sig.CreatedAt = ts
		sig.Direction = models.Direction(direction)
		sig.Source = models.QuoteSource(source)
		if factors != "" {
			sig.Factors = strings.Split(factors, ",")
		}
		signals = append(signals, &sig)
	}
	return signals, rows.Err()
}

func (s *ClickHouseSignalStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseSignalStore) Close() error {
	return nil // pool is owned by pkg/clickhouse.Client
}

// KafkaSignalPublisher implements SignalPublisher for Kafka. Messages are
// keyed by broker symbol so per-instrument ordering survives partitioning.
type KafkaSignalPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaSignalPublisher creates a Kafka signal publisher.
func NewKafkaSignalPublisher(producer *pkgkafka.Producer, topic string) repository.SignalPublisher {
	return &KafkaSignalPublisher{producer: producer, topic: topic}
}

func (p *KafkaSignalPublisher) Publish(ctx context.Context, sig *models.TradeSignal) error {
	return p.producer.Publish(ctx, p.topic, []byte(sig.Symbol), sig)
}

func (p *KafkaSignalPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
