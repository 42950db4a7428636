// Package app assembles the Fiber application serving the toy catalog.
package app

import (
	"io"
	"os"

	"legolelo/internal/handlers"
	"legolelo/internal/logging"
	"legolelo/internal/middleware"
	"legolelo/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// LivenessMessage is the body answered on GET /.
const LivenessMessage = "server is running"

// Options configures New.
type Options struct {
	Service          *services.ToyService
	Logger           logging.Logger
	CORSAllowOrigins string    // defaults to "*"
	AccessLog        io.Writer // defaults to os.Stdout; io.Discard silences it
}

// New builds the Fiber app with middleware and all catalog routes registered.
func New(opts Options) *fiber.App {
	if opts.CORSAllowOrigins == "" {
		opts.CORSAllowOrigins = "*"
	}
	if opts.AccessLog == nil {
		opts.AccessLog = os.Stdout
	}

	app := fiber.New(fiber.Config{
		AppName: "legolelo",
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: opts.CORSAllowOrigins}))
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format: "${time} | ${locals:" + middleware.RequestIDLocal + "} | ${status} | ${latency} | ${method} ${path}\n",
		Output: opts.AccessLog,
	}))

	toyHandler := handlers.NewToyHandler(opts.Service, opts.Logger)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(LivenessMessage)
	})
	app.Get("/health", toyHandler.HandleHealth)
	toyHandler.RegisterRoutes(app)

	return app
}
