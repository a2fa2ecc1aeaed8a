package gateway

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/proxy"
)

// Route maps a path prefix to a backend base address. Every request whose
// path falls under the prefix is forwarded verbatim.
type Route struct {
	Prefix string
	Target string
}

// New builds the gateway app: a health endpoint, one pass-through forwarder
// per route, and a 404 fallthrough for everything else. The gateway holds
// no state, so any number of replicas can run behind the same address.
func New(routes []Route, timeout time.Duration) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "api-gateway",
		})
	})

	for _, route := range routes {
		app.Use(route.Prefix, forward(route.Target, timeout))
	}

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})

	return app
}

// forward proxies the request to the backend, keeping the original method,
// path, query string, and body. The backend response is copied back
// unchanged. A backend that refuses the connection or does not answer
// within the timeout yields a 503; there is no retry.
func forward(target string, timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		url := target + c.OriginalURL()
		if err := proxy.DoTimeout(c, url, timeout); err != nil {
			log.Printf("Proxy to %s failed: %v", url, err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Service temporarily unavailable",
			})
		}
		c.Response().Header.Del(fiber.HeaderServer)
		return nil
	}
}
