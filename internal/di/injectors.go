//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"hyperstat/internal"
	"hyperstat/internal/clients"
	"hyperstat/internal/codec"
	"hyperstat/internal/controllers"
	"hyperstat/internal/providers"
	"hyperstat/internal/services"
	"hyperstat/internal/structures"
)

var clientSet = wire.NewSet(
	providers.NewConfigProvider,
	providers.NewLogProvider,
	providers.NewMetricsProvider,
	providers.NewHttpClientProvider,

	codec.NewHyperStatDecoder,
	clients.NewNexonClient,
	services.NewHyperStatService,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		clientSet,
		providers.NewInstrumentedCacheProvider,

		controllers.NewCharacterController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

func InitFetcher(cfg *structures.CliFlags) (*internal.Fetcher, error) {

	wire.Build(
		clientSet,
		internal.NewFetcher,
	)

	return nil, nil
}
