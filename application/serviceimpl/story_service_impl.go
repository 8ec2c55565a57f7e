package serviceimpl

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"storyreel/domain/dto"
	"storyreel/domain/models"
	"storyreel/domain/ports"
	"storyreel/domain/repositories"
	"storyreel/domain/services"
	"storyreel/pkg/config"
	"storyreel/pkg/logger"
	"storyreel/pkg/utils"
)

type StoryServiceImpl struct {
	projectRepo repositories.ProjectRepository
	genRepo     repositories.GenerationRepository
	segmentRepo repositories.SegmentRepository
	pipeline    *PipelineServiceImpl
	media       ports.MediaToolPort
	storage     ports.StoragePort
	lock        ports.ProjectLockPort
	progress    ports.ProgressPublisherPort
	fetcher     *videoFetcher
	pipeCfg     config.PipelineConfig
}

func NewStoryService(
	projectRepo repositories.ProjectRepository,
	genRepo repositories.GenerationRepository,
	segmentRepo repositories.SegmentRepository,
	pipeline *PipelineServiceImpl,
	media ports.MediaToolPort,
	storage ports.StoragePort,
	lock ports.ProjectLockPort,
	progress ports.ProgressPublisherPort,
	pipeCfg config.PipelineConfig,
) services.StoryService {
	return &StoryServiceImpl{
		projectRepo: projectRepo,
		genRepo:     genRepo,
		segmentRepo: segmentRepo,
		pipeline:    pipeline,
		media:       media,
		storage:     storage,
		lock:        lock,
		progress:    progress,
		fetcher:     newVideoFetcher(pipeCfg.PreflightTimeout),
		pipeCfg:     pipeCfg,
	}
}

// Continue ต่อเรื่องหนึ่ง segment
// ถือ lock ราย project ตลอดงาน กันสอง request อ่าน state เดียวกันแล้ว
// append ทับกัน (read-compute-append ต้องเป็น atomic ต่อ project)
func (s *StoryServiceImpl) Continue(ctx context.Context, projectID uuid.UUID, req *dto.ContinueStoryRequest) (*dto.ContinueStoryResponse, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	release, err := s.lock.Acquire(ctx, projectID, s.pipeCfg.LockTTL)
	if err != nil {
		return nil, err
	}
	defer release()

	state, err := s.currentState(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if state.VideoURL == "" {
		return nil, services.ErrNoBaseState
	}

	cumulative := ComposeCumulativePrompt(state.Prompt, req.NextPrompt)

	result, err := s.pipeline.runFromVideo(ctx, &dto.GenerateFromVideoRequest{
		VideoURL:       state.VideoURL,
		PreviousPrompt: state.Prompt,
		NextPrompt:     req.NextPrompt,
		Model:          req.Model,
		Duration:       req.Duration,
		Resolution:     req.Resolution,
		AspectRatio:    req.AspectRatio,
		Seed:           req.Seed,
	}, projectID, true)
	if err != nil {
		s.publishStage(ctx, projectID, ports.StageFailed, err.Error())
		return nil, err
	}

	segment := &models.StorySegment{
		ProjectID:        projectID,
		PreviousVideoURL: state.VideoURL,
		PreviousPrompt:   state.Prompt,
		UsedPrompt:       result.UsedPrompt,
		NewVideoURL:      result.VideoURL,
		CumulativePrompt: cumulative,
		JobSetID:         result.JobSetID,
		FrameImageURL:    result.FrameImageURL,
		Meta:             segmentMeta(result),
	}

	if err := s.segmentRepo.AppendToTail(ctx, segment); err != nil {
		s.publishStage(ctx, projectID, ports.StageFailed, err.Error())
		return nil, err
	}

	s.publishStage(ctx, projectID, ports.StageCompleted, result.VideoURL)

	logger.InfoContext(ctx, "Story segment appended",
		"project_id", projectID,
		"segment_id", segment.ID,
		"position", segment.Position,
		"job_set_id", result.JobSetID)

	return &dto.ContinueStoryResponse{
		Segment:          dto.ToSegmentResponse(segment),
		CumulativePrompt: cumulative,
		VideoURL:         result.VideoURL,
	}, nil
}

func (s *StoryServiceImpl) ListSegments(ctx context.Context, projectID uuid.UUID) ([]*dto.SegmentResponse, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	segments, err := s.segmentRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return dto.ToSegmentResponses(segments), nil
}

// DeleteLast ลบ segment ท้ายสุด (undo หนึ่งก้าว)
// ledger เป็น append-only ลบกลางเรื่องไม่ได้ เพราะ segment ถัดไป
// อ้าง video ของตัวก่อนหน้าเป็นฐาน
func (s *StoryServiceImpl) DeleteLast(ctx context.Context, projectID uuid.UUID, segmentID uuid.UUID) error {
	release, err := s.lock.Acquire(ctx, projectID, s.pipeCfg.LockTTL)
	if err != nil {
		return err
	}
	defer release()

	segment, err := s.segmentRepo.GetByID(ctx, segmentID)
	if err != nil {
		return err
	}
	if segment.ProjectID != projectID {
		return services.ErrSegmentNotFound
	}

	// เงื่อนไข tail ผูกอยู่ใน DELETE statement เอง ไม่พึ่ง lock อย่างเดียว
	if err := s.segmentRepo.DeleteTail(ctx, projectID, segment.ID); err != nil {
		return err
	}

	logger.InfoContext(ctx, "Tail segment deleted",
		"project_id", projectID, "segment_id", segmentID, "position", segment.Position)
	return nil
}

// Assemble รวม video ทั้งเรื่อง (initial + ทุก segment) เป็นไฟล์เดียว
func (s *StoryServiceImpl) Assemble(ctx context.Context, projectID uuid.UUID) (*dto.AssembleStoryResponse, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	urls, err := s.collectVideoURLs(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		return nil, services.ErrNoSegmentsToAssemble
	}

	scratch, err := newScratchSpace(s.pipeCfg.WorkDir)
	if err != nil {
		return nil, err
	}
	defer scratch.Cleanup()

	localPaths := make([]string, 0, len(urls))
	for i, u := range urls {
		path := scratch.Path(fmt.Sprintf("part_%03d.mp4", i))
		if err := s.fetcher.Download(ctx, u, path, 0); err != nil {
			return nil, err
		}
		localPaths = append(localPaths, path)
	}

	outName := fmt.Sprintf("%s-%s.mp4", slug.Make(project.Name), utils.GenerateRandomString(6))
	outPath := scratch.Path(outName)

	if err := s.media.Concat(ctx, localPaths, outPath); err != nil {
		return nil, &services.ExtractError{Path: outPath, Err: err}
	}

	videoURL, err := s.storage.UploadLocalFile(ctx, outPath, "assemblies")
	if err != nil {
		return nil, &services.UploadError{Key: outName, Err: err}
	}

	logger.InfoContext(ctx, "Story assembled",
		"project_id", projectID, "parts", len(localPaths), "video_url", videoURL)

	return &dto.AssembleStoryResponse{
		ProjectID:    projectID,
		VideoURL:     videoURL,
		SegmentCount: len(localPaths),
	}, nil
}

// currentState โหลด generation + tail แล้วคำนวณ base state
func (s *StoryServiceImpl) currentState(ctx context.Context, projectID uuid.UUID) (storyState, error) {
	generation, err := s.genRepo.GetByProjectID(ctx, projectID)
	if err != nil && !errors.Is(err, services.ErrGenerationNotFound) {
		return storyState{}, err
	}

	tail, err := s.segmentRepo.GetTail(ctx, projectID)
	if err != nil {
		return storyState{}, err
	}

	return computeCurrentState(generation, tail), nil
}

// collectVideoURLs รวบรวม URL ตามลำดับเรื่อง: initial ก่อน แล้วไล่ตาม position
func (s *StoryServiceImpl) collectVideoURLs(ctx context.Context, projectID uuid.UUID) ([]string, error) {
	var urls []string

	generation, err := s.genRepo.GetByProjectID(ctx, projectID)
	if err != nil && !errors.Is(err, services.ErrGenerationNotFound) {
		return nil, err
	}
	if generation != nil && generation.HasVideo() {
		urls = append(urls, *generation.InitialVideoURL)
	}

	segments, err := s.segmentRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for _, seg := range segments {
		if seg.NewVideoURL != "" {
			urls = append(urls, seg.NewVideoURL)
		}
	}
	return urls, nil
}

func segmentMeta(result *pipelineResult) models.Meta {
	meta := models.Meta{
		"frame_timestamp": result.FrameTimestamp,
	}
	if result.Meta != nil {
		meta["source_width"] = result.Meta.Width
		meta["source_height"] = result.Meta.Height
		meta["source_duration"] = result.Meta.Duration
		meta["source_fps"] = result.Meta.FPS
	}
	return meta
}

func (s *StoryServiceImpl) publishStage(ctx context.Context, projectID uuid.UUID, stage ports.PipelineStage, detail string) {
	if s.progress == nil {
		return
	}
	s.progress.PublishStage(ctx, projectID, stage, detail)
}
