package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/railnav/pkg/monitor"
)

func BoardsRouter(router fiber.Router, client LDBWSClient, boardMonitor *monitor.Monitor) {
	router.Get("/current", func(c *fiber.Ctx) error {
		return getCurrentBoard(c, boardMonitor)
	})
	router.Get("/current/next", func(c *fiber.Ctx) error {
		return getNextDeparture(c, boardMonitor)
	})
	router.Get("/:crs", func(c *fiber.Ctx) error {
		return getBoard(c, client)
	})
}

func getCurrentBoard(c *fiber.Ctx, boardMonitor *monitor.Monitor) error {
	snapshot := boardMonitor.Snapshot()
	if snapshot.Station == "" {
		return sendError(c, monitor.ErrNoStation)
	}

	response := fiber.Map{
		"Station":   snapshot.Station,
		"State":     snapshot.State,
		"UpdatedAt": nil,
		"LastError": nil,
		"Board":     nil,
	}
	if !snapshot.UpdatedAt.IsZero() {
		response["UpdatedAt"] = snapshot.UpdatedAt
	}
	if snapshot.LastError != nil {
		response["LastError"] = snapshot.LastError.Error()
	}

	board := boardMonitor.Board()
	if board != nil {
		filtered, err := applyFilter(c, board)
		if err != nil {
			return sendError(c, err)
		}

		reduced, err := reduce(c, filtered)
		if err != nil {
			return sendError(c, err)
		}

		response["Board"] = reduced
		response["HasDisruptions"] = board.HasDisruptions()
		response["HasActiveServices"] = board.HasActiveServices()
	}

	return c.JSON(response)
}

func getNextDeparture(c *fiber.Ctx, boardMonitor *monitor.Monitor) error {
	destination := c.Query("to")
	if destination == "" {
		return sendError(c, fiber.NewError(fiber.StatusBadRequest, "the to query parameter is required"))
	}

	board := boardMonitor.Board()
	if board == nil {
		return sendError(c, monitor.ErrNoStation)
	}

	service, found := board.FindNextDepartureTo(destination)
	if !found {
		return sendError(c, fiber.NewError(fiber.StatusNotFound, "no departure found to "+destination))
	}

	return sendReduced(c, service)
}

func getBoard(c *fiber.Ctx, client LDBWSClient) error {
	board, err := client.GetBoard(c.UserContext(), c.Params("crs"))
	if err != nil {
		return sendError(c, err)
	}

	if c.QueryBool("enrich", false) {
		board = client.EnrichBoard(c.UserContext(), board)
	}

	board, err = applyFilter(c, board)
	if err != nil {
		return sendError(c, err)
	}

	return sendReduced(c, board)
}
