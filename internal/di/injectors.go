//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"mcstatus/internal"
	"mcstatus/internal/controllers"
	"mcstatus/internal/identicon"
	"mcstatus/internal/ping"
	"mcstatus/internal/providers"
	"mcstatus/internal/services"
	"mcstatus/internal/statistic"
	"mcstatus/internal/structures"
)

var resolverSet = wire.NewSet(
	providers.Location,
	statistic.NewClock,
	statistic.NewCompressor,
	statistic.NewFileManager,
	statistic.NewFaviconCache,
	statistic.NewWeekStatsEngine,
	ping.NewSRVResolver,
	ping.NewJavaProbe,
	ping.NewBedrockProbe,
	ping.NewCoordinator,
	identicon.NewGenerator,
	services.NewStatusService,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		resolverSet,
		services.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

// InitStatusService builds the resolver alone, for one-shot CLI lookups.
func InitStatusService(conf *structures.Config, logger providers.Logger) (services.StatusServiceInterface, error) {

	wire.Build(
		providers.NewNoopMetrics,
		resolverSet,
	)

	return nil, nil
}
