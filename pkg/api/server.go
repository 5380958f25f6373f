package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/railnav/pkg/api/routes"
	"github.com/travigo/railnav/pkg/monitor"
)

func NewApp(client routes.LDBWSClient, boardMonitor *monitor.Monitor, extraRoutes ...func(fiber.Router)) *fiber.App {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	webApp.Get("version", routes.APIVersion)

	routes.BoardsRouter(webApp.Group("/boards"), client, boardMonitor)
	routes.ServicesRouter(webApp.Group("/services"), client)
	routes.MonitorRouter(webApp.Group("/monitor"), boardMonitor)

	for _, register := range extraRoutes {
		register(webApp)
	}

	return webApp
}

func SetupServer(listen string, client routes.LDBWSClient, boardMonitor *monitor.Monitor, extraRoutes ...func(fiber.Router)) error {
	return NewApp(client, boardMonitor, extraRoutes...).Listen(listen)
}
