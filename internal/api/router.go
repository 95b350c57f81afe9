package api

import (
	"billchill/docs"
	"billchill/internal/api/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

func SetupRouter(
	disputeHandler *handlers.DisputeHandler,
	hospitalHandler *handlers.HospitalHandler,
) *fiber.App {
	app := fiber.New(fiber.Config{
		// Bills and rules documents are uploaded whole; default 4MB is too
		// small for scanned PDFs.
		BodyLimit: 32 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(logger.New())

	_ = docs.SwaggerInfo // ensure docs package is imported and init() is called
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Dispute routes
	dispute := app.Group("/api/dispute")
	dispute.Get("", disputeHandler.ListProviders)

	sessions := dispute.Group("/sessions")
	sessions.Post("", disputeHandler.CreateSession)
	sessions.Get("/:id", disputeHandler.GetState)
	sessions.Post("/:id/bill", disputeHandler.StageBill)
	sessions.Post("/:id/rules", disputeHandler.StageRules)
	sessions.Post("/:id/reset", disputeHandler.Reset)
	sessions.Post("/:id/submit", disputeHandler.Submit)
	sessions.Get("/:id/letter", disputeHandler.DownloadLetter)
	sessions.Get("/:id/findings", disputeHandler.GetFindings)

	// Hospital price search
	app.Post("/api/hospitals", hospitalHandler.Search)

	return app
}
