//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"rostersync/internal"
	"rostersync/internal/controllers"
	"rostersync/internal/gateway"
	"rostersync/internal/models"
	"rostersync/internal/providers"
	"rostersync/internal/roster"
	"rostersync/internal/services"
	"rostersync/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewNotifierProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewMetricsProvider,

		gateway.NewClient,
		models.NewRosterStore,
		models.NewOverlayStore,

		roster.NewZstdCompressor,
		roster.NewFileManager,
		roster.NewBatchQueue,
		roster.NewScheduler,

		services.NewFollowService,
		services.NewRosterService,
		services.NewScheduleService,
		wire.Bind(new(roster.Refresher), new(services.RosterServiceInterface)),

		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
