package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"storyreel/domain/ports"
	"storyreel/domain/services"
	"storyreel/pkg/logger"
	"storyreel/pkg/utils"
)

// respondServiceError แปลง error จาก service layer เป็น HTTP response
// not found → 404, state/validation → 400, lock ชน → 409,
// provider/tool/storage พัง → 502, รอ provider นานเกิน → 504
func respondServiceError(c *fiber.Ctx, err error) error {
	ctx := c.UserContext()

	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		return utils.NotFoundResponse(c, "Project not found")
	case errors.Is(err, services.ErrGenerationNotFound):
		return utils.NotFoundResponse(c, "Generation not found")
	case errors.Is(err, services.ErrSegmentNotFound):
		return utils.NotFoundResponse(c, "Segment not found")
	case errors.Is(err, services.ErrNoBaseState):
		return utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, services.ErrNotTail):
		return utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, services.ErrNoSegmentsToAssemble):
		return utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, ports.ErrLockHeld):
		return utils.ConflictResponse(c, "Another generation is already running for this project")
	}

	var preflightErr *services.PreflightError
	if errors.As(err, &preflightErr) {
		logger.WarnContext(ctx, "Preflight rejected source video", "error", err)
		return utils.BadRequestResponse(c, preflightErr.Error())
	}

	var pollTimeout *services.PollTimeoutError
	if errors.As(err, &pollTimeout) {
		logger.ErrorContext(ctx, "Provider polling timed out", "error", err)
		return utils.GatewayTimeoutResponse(c, pollTimeout.Error())
	}

	var downloadErr *services.DownloadError
	var probeErr *services.ProbeError
	var extractErr *services.ExtractError
	var uploadErr *services.UploadError
	var submitErr *services.SubmitError
	var statusErr *services.StatusCheckError
	var jobErr *services.JobError
	if errors.As(err, &downloadErr) ||
		errors.As(err, &statusErr) ||
		errors.As(err, &probeErr) ||
		errors.As(err, &extractErr) ||
		errors.As(err, &uploadErr) ||
		errors.As(err, &submitErr) ||
		errors.As(err, &jobErr) {
		logger.ErrorContext(ctx, "Pipeline stage failed", "error", err)
		return utils.BadGatewayResponse(c, err.Error())
	}

	logger.ErrorContext(ctx, "Unhandled service error", "error", err)
	return utils.InternalServerErrorResponse(c)
}
