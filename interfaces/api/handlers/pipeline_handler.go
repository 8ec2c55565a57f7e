package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storyreel/domain/dto"
	"storyreel/domain/services"
	"storyreel/pkg/logger"
	"storyreel/pkg/utils"
)

// PipelineHandler endpoint ระดับล่าง เรียก pipeline ตรงๆ โดยไม่ผูก project
type PipelineHandler struct {
	pipelineService services.PipelineService
}

func NewPipelineHandler(pipelineService services.PipelineService) *PipelineHandler {
	return &PipelineHandler{pipelineService: pipelineService}
}

// Generate submit text-to-video คืน job set id ทันที
func (h *PipelineHandler) Generate(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.GenerateVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", errors)
		return utils.ValidationErrorResponse(c, errors)
	}

	result, err := h.pipelineService.GenerateVideo(ctx, &req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return utils.CreatedResponse(c, result)
}

// GenerateFromImage submit image-to-video จาก image URL ที่มีอยู่แล้ว
func (h *PipelineHandler) GenerateFromImage(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.GenerateFromImageRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", errors)
		return utils.ValidationErrorResponse(c, errors)
	}

	result, err := h.pipelineService.GenerateFromImage(ctx, &req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return utils.CreatedResponse(c, result)
}

// FrameFromVideo ดึง frame สุดท้ายของ video แล้วคืน image URL + meta
func (h *PipelineHandler) FrameFromVideo(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.ExtractFrameRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		return utils.ValidationErrorResponse(c, errors)
	}

	result, err := h.pipelineService.ExtractFrame(ctx, &req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return utils.SuccessResponse(c, result)
}

// ContinueFromVideo รัน pipeline เต็มจาก video URL แล้วรอจนจบ
func (h *PipelineHandler) ContinueFromVideo(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.GenerateFromVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", errors)
		return utils.ValidationErrorResponse(c, errors)
	}

	result, err := h.pipelineService.GenerateFromVideo(ctx, &req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return utils.SuccessResponse(c, result)
}

// SubmitFromVideo เหมือน ContinueFromVideo แต่ไม่รอ poll
func (h *PipelineHandler) SubmitFromVideo(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.GenerateFromVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		return utils.ValidationErrorResponse(c, errors)
	}

	result, err := h.pipelineService.SubmitFromVideo(ctx, &req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return utils.CreatedResponse(c, result)
}

// JobStatus ถามสถานะ job set จาก provider
func (h *PipelineHandler) JobStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()

	jobSetID := c.Params("jobSetId")
	if jobSetID == "" {
		return utils.BadRequestResponse(c, "Job set ID is required")
	}

	result, err := h.pipelineService.GetJobStatus(ctx, jobSetID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return utils.SuccessResponse(c, result)
}
