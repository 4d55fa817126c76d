package internal

import (
	"hyperstat/internal/controllers"
	"hyperstat/internal/providers"
	"hyperstat/internal/structures"
	"net/http"
)

func InitRoutes(characterController *controllers.CharacterController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/character/hyper-stat", http.HandlerFunc(characterController.GetHyperStat))
	return routers
}
