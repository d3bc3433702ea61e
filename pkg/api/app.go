package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tripscope/tripscope/pkg/api/routes"
	"github.com/tripscope/tripscope/pkg/replay"
)

func App(session *replay.Session) *fiber.App {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.PlayerRouter(group.Group("/player"), session)
	routes.VehiclesRouter(group.Group("/vehicles"), session)
	routes.DatasetRouter(group.Group("/dataset"), session)

	return webApp
}

func SetupServer(listen string, session *replay.Session) error {
	return App(session).Listen(listen)
}
