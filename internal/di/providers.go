package di

import (
	"context"
	"fmt"
	"time"

	"FXPulse/internal/domain/repository"
	"FXPulse/internal/handler/api"
	internalrepo "FXPulse/internal/repository"
	"FXPulse/internal/service/cache"
	"FXPulse/internal/service/oanda"
	"FXPulse/internal/service/synth"
	"FXPulse/internal/symbols"
	"FXPulse/internal/usecase"
	pkgch "FXPulse/pkg/clickhouse"
	"FXPulse/pkg/config"
	pkgkafka "FXPulse/pkg/kafka"
	"FXPulse/pkg/metrics"
	"FXPulse/pkg/server"

	xlogger "FXPulse/pkg/logger"
)

// ProvideCollector creates the warn/error log aggregator.
func ProvideCollector() *xlogger.Collector {
	return xlogger.NewCollector(xlogger.CollectorConfig{})
}

// ProvideLogger creates the application logger with its collector attached.
func ProvideLogger(cfg *config.Config, collector *xlogger.Collector) (*xlogger.Logger, error) {
	l, err := xlogger.New(&xlogger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	l.AttachCollector(collector)
	return l, nil
}

// ProvideMapper creates the canonical symbol mapper.
func ProvideMapper() *symbols.Mapper {
	return symbols.NewMapper()
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideLiveFeed creates the OANDA candles client.
func ProvideLiveFeed(cfg *config.Config) *oanda.Client {
	return oanda.New(cfg.OANDA.APIKey, cfg.OANDA.BaseURL, cfg.OANDA.Timeout)
}

// ProvideQuoteService creates the quote use case with synthetic fallback.
func ProvideQuoteService(
	mapper *symbols.Mapper,
	feed *oanda.Client,
	m repository.Metrics,
	l *xlogger.Logger,
) *usecase.QuoteService {
	gen := synth.NewGenerator(mapper)
	return usecase.NewQuoteService(mapper, feed, feed.HasCredential(), gen, m, l)
}

// ProvideClickHouseClient creates a ClickHouse client, or nil when disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, internalrepo.SchemaFor(cfg.ClickHouse.Database, "signals")); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideSignalStore creates ClickHouse signal storage, or nil when disabled.
func ProvideSignalStore(chClient *pkgch.Client, cfg *config.Config) repository.SignalStore {
	if chClient == nil {
		return nil
	}
	return internalrepo.NewClickHouseSignalStore(chClient.DB(), cfg.ClickHouse.Database+".signals")
}

// ProvideKafkaProducer creates a Kafka producer, or nil when disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.WriteTimeout, cfg.Kafka.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideSignalPublisher creates the Kafka signal publisher, or nil when disabled.
func ProvideSignalPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.SignalPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaSignalPublisher(producer, cfg.Signals.Topic)
}

// ProvideSignalEngine creates the signal generation use case.
func ProvideSignalEngine(
	cfg *config.Config,
	quotes *usecase.QuoteService,
	mapper *symbols.Mapper,
	store repository.SignalStore,
	pub repository.SignalPublisher,
	m repository.Metrics,
	l *xlogger.Logger,
) *usecase.SignalEngine {
	return usecase.NewSignalEngine(quotes, mapper, store, pub, m, l,
		cfg.Signals.MinRiskReward, cfg.Signals.RewardFactor)
}

// ProvideCache picks Redis when configured, in-process TTL otherwise.
func ProvideCache(cfg *config.Config) cache.BytesCache {
	if cfg.Redis.Enabled {
		return cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	return cache.NewTTLCache()
}

// ProvideHandlers assembles the HTTP route groups.
func ProvideHandlers(
	cfg *config.Config,
	l *xlogger.Logger,
	collector *xlogger.Collector,
	quotes *usecase.QuoteService,
	engine *usecase.SignalEngine,
	c cache.BytesCache,
) *api.Handlers {
	market := api.NewMarketHandler(l, quotes, engine, c, collector, cfg.Quotes.CacheTTL)
	ws := api.NewQuotesWSHandler(l, quotes, cfg.Quotes.PushPeriod)
	return api.Compose(market, ws)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *xlogger.Logger,
	handlers *api.Handlers,
	chClient *pkgch.Client,
	store repository.SignalStore,
	pub repository.SignalPublisher,
	c cache.BytesCache,
) *server.App {
	return server.New(cfg, l, handlers, chClient, store, pub, c)
}
