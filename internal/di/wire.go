//go:build wireinject
// +build wireinject

package di

import (
	"StockLens/pkg/config"
	"StockLens/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideRegistry,
		ProvideMetrics,

		// Backend access and derivation
		ProvideHTTPClient,
		ProvideGateway,
		ProvideDeriver,
		ProvideOrchestrator,

		// Infrastructure clients
		ProvideCache,
		ProvideThemeStore,
		ProvideKafkaProducer,

		// Sessions and transport
		ProvideSessions,
		ProvideLimiter,
		ProvideViewHandler,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
