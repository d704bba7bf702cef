package internal

import (
	"net/http"

	"rostersync/internal/controllers"
	"rostersync/internal/providers"
	"rostersync/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/roster", http.HandlerFunc(apiController.GetRoster))
	routers.Get("/roster/active", http.HandlerFunc(apiController.GetActive))
	routers.Get("/roster/pending", http.HandlerFunc(apiController.GetPending))
	return routers
}
