package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"storyreel/domain/dto"
	"storyreel/domain/services"
	"storyreel/pkg/logger"
	"storyreel/pkg/utils"
)

type StoryHandler struct {
	storyService services.StoryService
}

func NewStoryHandler(storyService services.StoryService) *StoryHandler {
	return &StoryHandler{storyService: storyService}
}

// Continue ต่อเรื่องหนึ่ง segment (synchronous รอจน provider เสร็จ)
func (h *StoryHandler) Continue(c *fiber.Ctx) error {
	ctx := c.UserContext()

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid project ID")
	}

	var req dto.ContinueStoryRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", errors)
		return utils.ValidationErrorResponse(c, errors)
	}

	result, err := h.storyService.Continue(ctx, projectID, &req)
	if err != nil {
		return respondServiceError(c, err)
	}

	logger.InfoContext(ctx, "Story continued",
		"project_id", projectID, "segment_id", result.Segment.ID)
	return utils.CreatedResponse(c, result)
}

// ListSegments ดึง segment ทั้งหมดของ project เรียงตาม position
func (h *StoryHandler) ListSegments(c *fiber.Ctx) error {
	ctx := c.UserContext()

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid project ID")
	}

	segments, err := h.storyService.ListSegments(ctx, projectID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return utils.SuccessResponse(c, segments)
}

// DeleteLast ลบ segment ท้ายสุด (undo) ลบตัวกลางเรื่องไม่ได้
func (h *StoryHandler) DeleteLast(c *fiber.Ctx) error {
	ctx := c.UserContext()

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid project ID")
	}

	segmentID, err := uuid.Parse(c.Params("segmentId"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid segment ID")
	}

	if err := h.storyService.DeleteLast(ctx, projectID, segmentID); err != nil {
		return respondServiceError(c, err)
	}

	return utils.NoContentResponse(c)
}

// Assemble รวม video ทั้งเรื่องเป็นไฟล์เดียวแล้วอัปโหลด
func (h *StoryHandler) Assemble(c *fiber.Ctx) error {
	ctx := c.UserContext()

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid project ID")
	}

	result, err := h.storyService.Assemble(ctx, projectID)
	if err != nil {
		return respondServiceError(c, err)
	}

	logger.InfoContext(ctx, "Story assembled",
		"project_id", projectID, "segment_count", result.SegmentCount)
	return utils.SuccessResponse(c, result)
}
