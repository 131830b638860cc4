//go:build wireinject
// +build wireinject

package di

import (
	"FXPulse/pkg/config"
	"FXPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideCollector,
		ProvideLogger,
		ProvideMapper,
		ProvideMetrics,

		// Infrastructure clients
		ProvideLiveFeed,
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Repositories
		ProvideSignalStore,
		ProvideSignalPublisher,
		ProvideCache,

		// Use cases
		ProvideQuoteService,
		ProvideSignalEngine,

		// HTTP surface and application server
		ProvideHandlers,
		ProvideApp,
	)
	return &server.App{}, nil
}
