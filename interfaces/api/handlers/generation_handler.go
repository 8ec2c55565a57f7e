package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"storyreel/domain/dto"
	"storyreel/domain/services"
	"storyreel/pkg/logger"
	"storyreel/pkg/utils"
)

type GenerationHandler struct {
	generationService services.GenerationService
}

func NewGenerationHandler(generationService services.GenerationService) *GenerationHandler {
	return &GenerationHandler{generationService: generationService}
}

// Generate submit วิดีโอตั้งต้นของ project (generate ใหม่ทับได้)
func (h *GenerationHandler) Generate(c *fiber.Ctx) error {
	ctx := c.UserContext()

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid project ID")
	}

	var req dto.GenerateInitialRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", errors)
		return utils.ValidationErrorResponse(c, errors)
	}

	generation, err := h.generationService.Generate(ctx, projectID, &req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return utils.CreatedResponse(c, generation)
}

// GetByProject ดึงสถานะ generation ตามที่บันทึกไว้ใน DB
func (h *GenerationHandler) GetByProject(c *fiber.Ctx) error {
	ctx := c.UserContext()

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid project ID")
	}

	generation, err := h.generationService.GetByProject(ctx, projectID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return utils.SuccessResponse(c, generation)
}

// CheckStatus ถาม provider แล้ว sync สถานะล่าสุด
func (h *GenerationHandler) CheckStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid project ID")
	}

	result, err := h.generationService.CheckStatus(ctx, projectID)
	if err != nil {
		logger.WarnContext(ctx, "Status check failed", "project_id", projectID, "error", err)
		return respondServiceError(c, err)
	}

	return utils.SuccessResponse(c, result)
}
