package routes

import (
	"github.com/gofiber/fiber/v2"
)

func ServicesRouter(router fiber.Router, client LDBWSClient) {
	router.Get("/:identifier", func(c *fiber.Ctx) error {
		service, err := client.GetServiceDetails(c.UserContext(), c.Params("identifier"))
		if err != nil {
			return sendError(c, err)
		}

		return sendReduced(c, service)
	})
}
