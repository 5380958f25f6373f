package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/railnav/pkg/monitor"
)

func MonitorRouter(router fiber.Router, boardMonitor *monitor.Monitor) {
	router.Post("/start/:crs", func(c *fiber.Ctx) error {
		if err := boardMonitor.Start(c.Params("crs")); err != nil {
			return sendError(c, err)
		}

		station, err := boardMonitor.Station()
		if err != nil {
			return sendError(c, err)
		}

		return c.JSON(fiber.Map{
			"Station": station,
		})
	})

	router.Post("/stop", func(c *fiber.Ctx) error {
		boardMonitor.Stop()

		return c.JSON(fiber.Map{
			"State": boardMonitor.Snapshot().State,
		})
	})

	router.Post("/refresh", func(c *fiber.Ctx) error {
		if _, err := boardMonitor.Station(); err != nil {
			return sendError(c, err)
		}

		return c.JSON(fiber.Map{
			"Refreshed": boardMonitor.RefreshNow(),
		})
	})
}
