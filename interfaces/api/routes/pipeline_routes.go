package routes

import (
	"github.com/gofiber/fiber/v2"

	"storyreel/interfaces/api/handlers"
)

func SetupPipelineRoutes(api fiber.Router, h *handlers.Handlers) {
	pipeline := api.Group("/pipeline")

	// Submit อย่างเดียว ไม่รอผล
	pipeline.Post("/generate", h.PipelineHandler.Generate)
	pipeline.Post("/generate-from-image", h.PipelineHandler.GenerateFromImage)

	// ดึง frame สุดท้ายอย่างเดียว
	pipeline.Post("/frames/from-video", h.PipelineHandler.FrameFromVideo)

	// Continuation pipeline จาก video URL
	pipeline.Post("/continue", h.PipelineHandler.ContinueFromVideo)
	pipeline.Post("/submit", h.PipelineHandler.SubmitFromVideo)

	// Provider job status
	pipeline.Get("/jobs/:jobSetId", h.PipelineHandler.JobStatus)
}
