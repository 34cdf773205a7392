// Package routes registers the v1 HTTP routes
package routes

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/jobradar/jobradar/internal/api/v1/handlers"
)

// RegisterRoutes registers all v1 API routes on the fiber app
func RegisterRoutes(
	app *fiber.App,
	jobHandler *handlers.JobHandler,
	scrapeHandler *handlers.ScrapeHandler,
	registryHandler *handlers.RegistryHandler,
	scheduleHandler *handlers.ScheduleHandler,
) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	// Job listings (read path)
	jobs := v1.Group("/jobs")
	jobs.Get("/", jobHandler.ListJobs)
	jobs.Get("/:platform/:externalId", jobHandler.GetJob)

	// Aggregation runs
	scrape := v1.Group("/scrape")
	scrape.Post("/run", scrapeHandler.RunAll)
	scrape.Post("/run/company/:id", scrapeHandler.RunCompany)
	scrape.Post("/run/:platform", scrapeHandler.RunPlatform)
	scrape.Get("/stats", scrapeHandler.Stats)

	// Job board registry
	boards := v1.Group("/boards")
	boards.Get("/", registryHandler.ListBoards)
	boards.Post("/", registryHandler.CreateBoard)
	boards.Get("/:slug", registryHandler.GetBoard)
	boards.Put("/:id", registryHandler.UpdateBoard)
	boards.Delete("/:id", registryHandler.DeleteBoard)

	// Company registry
	companies := v1.Group("/companies")
	companies.Get("/", registryHandler.ListCompanies)
	companies.Post("/", registryHandler.CreateCompany)
	companies.Get("/:id", registryHandler.GetCompany)
	companies.Put("/:id", registryHandler.UpdateCompany)
	companies.Delete("/:id", registryHandler.DeleteCompany)

	// Scrape pairs
	pairs := v1.Group("/pairs")
	pairs.Get("/", registryHandler.ListPairs)
	pairs.Post("/", registryHandler.CreatePair)
	pairs.Post("/bulk", registryHandler.CreatePairs)
	pairs.Put("/:id", registryHandler.UpdatePair)
	pairs.Delete("/:id", registryHandler.DeletePair)
	pairs.Patch("/:id/toggle", registryHandler.TogglePair)

	// Recurring schedule
	schedule := v1.Group("/schedule")
	schedule.Get("/", scheduleHandler.GetSchedule)
	schedule.Put("/", scheduleHandler.UpdateSchedule)
	schedule.Get("/suggestions", scheduleHandler.Suggestions)
}
