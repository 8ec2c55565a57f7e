package serviceimpl

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"storyreel/domain/dto"
	"storyreel/domain/models"
	"storyreel/domain/ports"
	"storyreel/domain/repositories"
	"storyreel/domain/services"
	"storyreel/pkg/config"
	"storyreel/pkg/logger"
)

const sweepBatchSize = 50

type GenerationServiceImpl struct {
	projectRepo repositories.ProjectRepository
	genRepo     repositories.GenerationRepository
	videoGen    ports.VideoGenPort
	hfCfg       config.HiggsfieldConfig
}

func NewGenerationService(
	projectRepo repositories.ProjectRepository,
	genRepo repositories.GenerationRepository,
	videoGen ports.VideoGenPort,
	hfCfg config.HiggsfieldConfig,
) services.GenerationService {
	return &GenerationServiceImpl{
		projectRepo: projectRepo,
		genRepo:     genRepo,
		videoGen:    videoGen,
		hfCfg:       hfCfg,
	}
}

// Generate submit วิดีโอตั้งต้น (ใหม่หรือทับของเดิม)
// generate ทับ = ขอ job ใหม่ เซ็ต queued และล้าง URL เดิมทิ้ง
func (s *GenerationServiceImpl) Generate(ctx context.Context, projectID uuid.UUID, req *dto.GenerateInitialRequest) (*dto.GenerationResponse, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	params := ports.SubmitParams{
		Prompt:        req.Prompt,
		Model:         req.Model,
		Duration:      req.Duration,
		Resolution:    req.Resolution,
		AspectRatio:   req.AspectRatio,
		Seed:          req.Seed,
		EnhancePrompt: true,
	}
	if params.Model == "" {
		params.Model = s.hfCfg.DefaultModel
	}
	if params.Duration <= 0 {
		params.Duration = s.hfCfg.DefaultDuration
	}
	if params.Resolution == "" {
		params.Resolution = s.hfCfg.DefaultResolution
	}
	if params.AspectRatio == "" {
		params.AspectRatio = s.hfCfg.DefaultAspectRatio
	}

	jobSetID, err := s.videoGen.Submit(ctx, params)
	if err != nil {
		return nil, submitFailure(err)
	}

	generation, err := s.genRepo.GetByProjectID(ctx, projectID)
	switch {
	case err == nil:
		generation.JobID = jobSetID
		generation.Prompt = req.Prompt
		generation.Status = models.GenerationStatusQueued
		generation.InitialVideoURL = nil
		if err := s.genRepo.Update(ctx, generation); err != nil {
			return nil, err
		}
	case errors.Is(err, services.ErrGenerationNotFound):
		generation = &models.InitialGeneration{
			ProjectID: projectID,
			JobID:     jobSetID,
			Prompt:    req.Prompt,
			Status:    models.GenerationStatusQueued,
		}
		if err := s.genRepo.Create(ctx, generation); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	logger.InfoContext(ctx, "Initial generation submitted",
		"project_id", projectID, "job_set_id", jobSetID)

	return dto.ToGenerationResponse(generation), nil
}

func (s *GenerationServiceImpl) GetByProject(ctx context.Context, projectID uuid.UUID) (*dto.GenerationResponse, error) {
	generation, err := s.genRepo.GetByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return dto.ToGenerationResponse(generation), nil
}

// CheckStatus ถาม provider แล้ว sync ผลลง DB
// เชื่อ artifact มากกว่า status: เจอ video URL = completed เสมอ
// (provider เคยรายงาน processing ทั้งที่ไฟล์เสร็จแล้ว)
func (s *GenerationServiceImpl) CheckStatus(ctx context.Context, projectID uuid.UUID) (*dto.GenerationStatusResponse, error) {
	generation, err := s.genRepo.GetByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	js, err := s.videoGen.GetJobSet(ctx, generation.JobID)
	if err != nil {
		return nil, &services.StatusCheckError{JobSetID: generation.JobID, Err: err}
	}

	if err := s.applyJobSet(ctx, generation, js); err != nil {
		return nil, err
	}

	return &dto.GenerationStatusResponse{
		Generation: dto.ToGenerationResponse(generation),
		Provider:   dto.ToJobSetResponse(js),
	}, nil
}

// SweepPending background job: ไล่เช็ค generation ที่ยังไม่จบ
// project ไหนพังข้ามไป ไม่ให้ project เดียวค้างทั้ง sweep
func (s *GenerationServiceImpl) SweepPending(ctx context.Context) error {
	pending, err := s.genRepo.ListNonTerminal(ctx, sweepBatchSize)
	if err != nil {
		return err
	}

	for _, generation := range pending {
		js, err := s.videoGen.GetJobSet(ctx, generation.JobID)
		if err != nil {
			logger.WarnContext(ctx, "Status sweep failed for generation",
				"generation_id", generation.ID, "job_set_id", generation.JobID, "error", err)
			continue
		}
		if err := s.applyJobSet(ctx, generation, js); err != nil {
			logger.WarnContext(ctx, "Failed to persist generation status",
				"generation_id", generation.ID, "error", err)
		}
	}

	if len(pending) > 0 {
		logger.DebugContext(ctx, "Generation status sweep finished", "checked", len(pending))
	}
	return nil
}

func (s *GenerationServiceImpl) applyJobSet(ctx context.Context, generation *models.InitialGeneration, js *ports.JobSet) error {
	status := js.AggregateStatus()
	videoURL := js.FirstResultURL()

	switch {
	case videoURL != "":
		generation.Status = models.GenerationStatusCompleted
		generation.InitialVideoURL = &videoURL
	case status == ports.AggregateFailed:
		generation.Status = models.GenerationStatusFailed
		generation.InitialVideoURL = nil
	case status == ports.AggregateProcessing:
		generation.Status = models.GenerationStatusInProgress
	default:
		generation.Status = models.GenerationStatusQueued
	}

	if err := s.genRepo.Update(ctx, generation); err != nil {
		return err
	}

	logger.DebugContext(ctx, "Generation status synced",
		"generation_id", generation.ID,
		"status", generation.Status,
		"has_video", videoURL != "")
	return nil
}
