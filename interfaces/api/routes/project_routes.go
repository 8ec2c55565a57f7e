package routes

import (
	"github.com/gofiber/fiber/v2"

	"storyreel/interfaces/api/handlers"
)

func SetupProjectRoutes(api fiber.Router, h *handlers.Handlers) {
	projects := api.Group("/projects")

	// CRUD
	projects.Post("/", h.ProjectHandler.Create)
	projects.Get("/", h.ProjectHandler.List)
	projects.Get("/:id", h.ProjectHandler.GetByID)
	projects.Put("/:id", h.ProjectHandler.Update)
	projects.Delete("/:id", h.ProjectHandler.Delete)

	// Suggestions
	projects.Get("/:id/suggest-continuations", h.ProjectHandler.SuggestContinuations)

	// Initial generation
	projects.Post("/:id/generation", h.GenerationHandler.Generate)
	projects.Get("/:id/generation", h.GenerationHandler.GetByProject)
	projects.Post("/:id/generation/check-status", h.GenerationHandler.CheckStatus)

	// Story ledger
	projects.Post("/:id/continue", h.StoryHandler.Continue)
	projects.Get("/:id/segments", h.StoryHandler.ListSegments)
	projects.Delete("/:id/segments/:segmentId", h.StoryHandler.DeleteLast)
	projects.Post("/:id/assemble", h.StoryHandler.Assemble)
}
