package consumer

import (
	"github.com/adjust/rmq/v5"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RegisterStatsRoutes exposes the rmq queue statistics page and a Redis health check
func RegisterStatsRoutes(router fiber.Router, connection rmq.Connection, client *redis.Client) {
	router.Get("/queues/stats", func(c *fiber.Ctx) error {
		queues, err := connection.GetOpenQueues()
		if err != nil {
			return err
		}

		stats, err := connection.CollectStats(queues)
		if err != nil {
			return err
		}

		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(stats.GetHtml(c.Query("layout"), c.Query("refresh")))
	})

	router.Get("/health", func(c *fiber.Ctx) error {
		if err := client.Ping(c.Context()).Err(); err != nil {
			c.Status(fiber.StatusInternalServerError)
			return c.SendString(err.Error())
		}

		return c.SendString("OK")
	})
}
