package serviceimpl

import (
	"context"

	"github.com/google/uuid"

	"storyreel/domain/dto"
	"storyreel/domain/models"
	"storyreel/domain/ports"
	"storyreel/domain/repositories"
	"storyreel/domain/services"
	"storyreel/pkg/config"
	"storyreel/pkg/logger"
)

type ProjectServiceImpl struct {
	projectRepo repositories.ProjectRepository
	genRepo     repositories.GenerationRepository
	videoGen    ports.VideoGenPort
	hfCfg       config.HiggsfieldConfig
}

func NewProjectService(
	projectRepo repositories.ProjectRepository,
	genRepo repositories.GenerationRepository,
	videoGen ports.VideoGenPort,
	hfCfg config.HiggsfieldConfig,
) services.ProjectService {
	return &ProjectServiceImpl{
		projectRepo: projectRepo,
		genRepo:     genRepo,
		videoGen:    videoGen,
		hfCfg:       hfCfg,
	}
}

// Create สร้าง project แล้ว submit initial generation ทันที
// submit ล้มเหลว → ไม่สร้าง project (ไม่ทิ้ง project เปล่าไว้)
func (s *ProjectServiceImpl) Create(ctx context.Context, req *dto.CreateProjectRequest) (*dto.ProjectDetailResponse, error) {
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

	project := &models.Project{Name: req.Name}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	generation := &models.InitialGeneration{
		ProjectID: project.ID,
		JobID:     jobSetID,
		Prompt:    req.Prompt,
		Status:    models.GenerationStatusQueued,
	}
	if err := s.genRepo.Create(ctx, generation); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Project created",
		"project_id", project.ID, "job_set_id", jobSetID)

	project.InitialGeneration = generation
	return s.toDetailResponse(project), nil
}

func (s *ProjectServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProjectDetailResponse, error) {
	project, err := s.projectRepo.GetByIDWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toDetailResponse(project), nil
}

func (s *ProjectServiceImpl) List(ctx context.Context, req *dto.PaginationRequest) (*dto.ProjectListResponse, error) {
	req.Normalize()

	projects, total, err := s.projectRepo.List(ctx, req.Offset(), req.Limit)
	if err != nil {
		return nil, err
	}

	return &dto.ProjectListResponse{
		Projects:   dto.ToProjectResponses(projects),
		Pagination: dto.NewPaginationResponse(req, total),
	}, nil
}

func (s *ProjectServiceImpl) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	project.Name = req.Name
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	return dto.ToProjectResponse(project), nil
}

func (s *ProjectServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.InfoContext(ctx, "Project deleted", "project_id", id)
	return nil
}

// toDetailResponse ประกอบ detail payload: full prompt + last video จาก ledger
func (s *ProjectServiceImpl) toDetailResponse(project *models.Project) *dto.ProjectDetailResponse {
	var tail *models.StorySegment
	if n := len(project.Segments); n > 0 {
		tail = project.Segments[n-1]
	}
	state := computeCurrentState(project.InitialGeneration, tail)

	return &dto.ProjectDetailResponse{
		ID:                project.ID,
		Name:              project.Name,
		FullPrompt:        state.Prompt,
		LastVideoURL:      state.VideoURL,
		InitialGeneration: dto.ToGenerationResponse(project.InitialGeneration),
		Segments:          dto.ToSegmentResponses(project.Segments),
		CreatedAt:         project.CreatedAt,
		UpdatedAt:         project.UpdatedAt,
	}
}
