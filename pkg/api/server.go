package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mvgboard/mvgboard/pkg/api/routes"
	"github.com/mvgboard/mvgboard/pkg/boards"
	"github.com/mvgboard/mvgboard/pkg/dispatcher"
)

func SetupServer(listen string, d *dispatcher.Dispatcher, boardSet *boards.BoardSet) error {
	return createServer(d, boardSet).Listen(listen)
}

func createServer(d *dispatcher.Dispatcher, boardSet *boards.BoardSet) *fiber.App {
	routes.Setup(d, boardSet)

	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.BoardsRouter(group.Group("/boards"))

	group.Get("/departures", routes.AdHocDepartures)

	return webApp
}
