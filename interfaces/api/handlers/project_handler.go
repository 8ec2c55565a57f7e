package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"storyreel/domain/dto"
	"storyreel/domain/services"
	"storyreel/pkg/logger"
	"storyreel/pkg/utils"
)

type ProjectHandler struct {
	projectService    services.ProjectService
	suggestionService services.SuggestionService
}

func NewProjectHandler(projectService services.ProjectService, suggestionService services.SuggestionService) *ProjectHandler {
	return &ProjectHandler{
		projectService:    projectService,
		suggestionService: suggestionService,
	}
}

// Create สร้าง project ใหม่พร้อม submit initial generation
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", errors)
		return utils.ValidationErrorResponse(c, errors)
	}

	project, err := h.projectService.Create(ctx, &req)
	if err != nil {
		return respondServiceError(c, err)
	}

	logger.InfoContext(ctx, "Project created", "project_id", project.ID, "name", project.Name)
	return utils.CreatedResponse(c, project)
}

// GetByID ดึง project แบบเต็ม (full prompt + last video + segments)
func (h *ProjectHandler) GetByID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid project ID")
	}

	project, err := h.projectService.GetByID(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return utils.SuccessResponse(c, project)
}

// List ดึง projects ทั้งหมดแบบแบ่งหน้า
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.PaginationRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid query parameters")
	}
	req.Normalize()

	result, err := h.projectService.List(ctx, &req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return utils.PaginatedSuccessResponse(c, result.Projects,
		result.Pagination.Total, result.Pagination.Page, result.Pagination.Limit)
}

// Update แก้ไขชื่อ project
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid project ID")
	}

	var req dto.UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		return utils.ValidationErrorResponse(c, errors)
	}

	project, err := h.projectService.Update(ctx, id, &req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return utils.SuccessResponse(c, project)
}

// Delete ลบ project พร้อม generation + segments (cascade)
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid project ID")
	}

	if err := h.projectService.Delete(ctx, id); err != nil {
		return respondServiceError(c, err)
	}

	return utils.NoContentResponse(c)
}

// SuggestContinuations ขอไอเดียต่อเรื่องจาก LLM
// ใช้ ?prompt= ถ้าส่งมา ไม่งั้นใช้ full prompt ปัจจุบันของ project
func (h *ProjectHandler) SuggestContinuations(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid project ID")
	}

	prompt := c.Query("prompt")
	if prompt == "" {
		project, err := h.projectService.GetByID(ctx, id)
		if err != nil {
			return respondServiceError(c, err)
		}
		prompt = project.FullPrompt
	}
	if prompt == "" {
		return utils.BadRequestResponse(c, "Prompt not found. Pass ?prompt=... or start a generation first")
	}

	count := c.QueryInt("count", 0)

	result, err := h.suggestionService.Suggest(ctx, &dto.SuggestRequest{
		Prompt: prompt,
		Count:  count,
	})
	if err != nil {
		logger.ErrorContext(ctx, "Suggestion request failed", "project_id", id, "error", err)
		return utils.BadGatewayResponse(c, "Suggestion provider error")
	}

	return utils.SuccessResponse(c, result)
}
