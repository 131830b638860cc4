// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package di

import (
	"FXPulse/pkg/config"
	"FXPulse/pkg/server"
)

// Injectors from wire.go:

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	collector := ProvideCollector()
	logger, err := ProvideLogger(cfg, collector)
	if err != nil {
		return nil, err
	}
	mapper := ProvideMapper()
	client := ProvideLiveFeed(cfg)
	metrics := ProvideMetrics()
	quoteService := ProvideQuoteService(mapper, client, metrics, logger)
	clickhouseClient, err := ProvideClickHouseClient(cfg)
	if err != nil {
		return nil, err
	}
	signalStore := ProvideSignalStore(clickhouseClient, cfg)
	producer, err := ProvideKafkaProducer(cfg)
	if err != nil {
		return nil, err
	}
	signalPublisher := ProvideSignalPublisher(producer, cfg)
	signalEngine := ProvideSignalEngine(cfg, quoteService, mapper, signalStore, signalPublisher, metrics, logger)
	bytesCache := ProvideCache(cfg)
	handlers := ProvideHandlers(cfg, logger, collector, quoteService, signalEngine, bytesCache)
	app := ProvideApp(cfg, logger, handlers, clickhouseClient, signalStore, signalPublisher, bytesCache)
	return app, nil
}
