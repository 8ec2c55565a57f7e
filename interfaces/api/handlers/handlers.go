package handlers

import (
	"storyreel/domain/services"
)

// Services contains all the services needed for handlers
type Services struct {
	ProjectService    services.ProjectService
	GenerationService services.GenerationService
	StoryService      services.StoryService
	PipelineService   services.PipelineService
	SuggestionService services.SuggestionService
}

// Handlers contains all HTTP handlers
type Handlers struct {
	ProjectHandler    *ProjectHandler
	GenerationHandler *GenerationHandler
	StoryHandler      *StoryHandler
	PipelineHandler   *PipelineHandler
}

// NewHandlers creates a new instance of Handlers with all dependencies
func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		ProjectHandler:    NewProjectHandler(services.ProjectService, services.SuggestionService),
		GenerationHandler: NewGenerationHandler(services.GenerationService),
		StoryHandler:      NewStoryHandler(services.StoryService),
		PipelineHandler:   NewPipelineHandler(services.PipelineService),
	}
}
