package serviceimpl

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"storyreel/domain/dto"
	"storyreel/domain/ports"
	"storyreel/domain/services"
	"storyreel/pkg/config"
	"storyreel/pkg/logger"
)

type PipelineServiceImpl struct {
	videoGen ports.VideoGenPort
	media    ports.MediaToolPort
	storage  ports.StoragePort
	progress ports.ProgressPublisherPort
	fetcher  *videoFetcher
	hfCfg    config.HiggsfieldConfig
	pipeCfg  config.PipelineConfig
}

func NewPipelineService(
	videoGen ports.VideoGenPort,
	media ports.MediaToolPort,
	storage ports.StoragePort,
	progress ports.ProgressPublisherPort,
	hfCfg config.HiggsfieldConfig,
	pipeCfg config.PipelineConfig,
) *PipelineServiceImpl {
	return &PipelineServiceImpl{
		videoGen: videoGen,
		media:    media,
		storage:  storage,
		progress: progress,
		fetcher:  newVideoFetcher(pipeCfg.PreflightTimeout),
		hfCfg:    hfCfg,
		pipeCfg:  pipeCfg,
	}
}

// GenerateVideo submit text-to-video แล้วคืนทันที ไม่รอผล
func (s *PipelineServiceImpl) GenerateVideo(ctx context.Context, req *dto.GenerateVideoRequest) (*dto.SubmitJobResponse, error) {
	params := s.submitDefaults(ports.SubmitParams{
		Prompt:      req.Prompt,
		Model:       req.Model,
		Duration:    req.Duration,
		Resolution:  req.Resolution,
		AspectRatio: req.AspectRatio,
		Seed:        req.Seed,
	})

	jobSetID, err := s.videoGen.Submit(ctx, params)
	if err != nil {
		return nil, submitFailure(err)
	}

	return &dto.SubmitJobResponse{
		JobSetID: jobSetID,
		Status:   string(ports.AggregateQueued),
	}, nil
}

// GenerateFromImage submit image-to-video ตรงๆ ข้ามขั้น download/extract
// สำหรับ caller ที่มี frame image อยู่แล้ว
func (s *PipelineServiceImpl) GenerateFromImage(ctx context.Context, req *dto.GenerateFromImageRequest) (*dto.SubmitJobResponse, error) {
	params := s.submitDefaults(ports.SubmitParams{
		Prompt:        req.Prompt,
		Duration:      req.Duration,
		Resolution:    req.Resolution,
		Seed:          req.Seed,
		InputImageURL: req.ImageURL,
	})

	jobSetID, err := s.videoGen.Submit(ctx, params)
	if err != nil {
		return nil, submitFailure(err)
	}

	return &dto.SubmitJobResponse{
		JobSetID: jobSetID,
		Status:   string(ports.AggregateQueued),
	}, nil
}

// ExtractFrame ครึ่งแรกของ pipeline: preflight → download → probe →
// ดึง frame สุดท้าย → อัปโหลด คืน image URL + meta โดยไม่ submit งานอะไร
func (s *PipelineServiceImpl) ExtractFrame(ctx context.Context, req *dto.ExtractFrameRequest) (*dto.ExtractFrameResponse, error) {
	pf, err := s.fetcher.Preflight(ctx, req.VideoURL)
	if err != nil {
		return nil, err
	}

	scratch, err := newScratchSpace(s.pipeCfg.WorkDir)
	if err != nil {
		return nil, err
	}
	defer scratch.Cleanup()

	videoPath := scratch.Path("source.mp4")
	if err := s.fetcher.Download(ctx, req.VideoURL, videoPath, pf.ContentLength); err != nil {
		return nil, err
	}

	meta, err := s.media.Probe(ctx, videoPath)
	if err != nil {
		return nil, &services.ProbeError{Path: videoPath, Err: err}
	}

	framePath := scratch.Path("last_frame.jpg")
	frameTS, err := s.media.ExtractLastFrame(ctx, videoPath, framePath)
	if err != nil {
		return nil, &services.ExtractError{Path: videoPath, Err: err}
	}

	imageURL, err := s.storage.UploadLocalFile(ctx, framePath, "frames")
	if err != nil {
		return nil, &services.UploadError{Key: framePath, Err: err}
	}

	logger.InfoContext(ctx, "Last frame extracted and uploaded",
		"video_url", req.VideoURL, "image_url", imageURL, "frame_ts", frameTS)

	return &dto.ExtractFrameResponse{
		VideoURL:       req.VideoURL,
		ImageURL:       imageURL,
		FrameTimestamp: frameTS,
		Width:          meta.Width,
		Height:         meta.Height,
		Duration:       meta.Duration,
		FPS:            meta.FPS,
	}, nil
}

// GenerateFromVideo รัน pipeline เต็มแล้วรอจนงานจบ
func (s *PipelineServiceImpl) GenerateFromVideo(ctx context.Context, req *dto.GenerateFromVideoRequest) (*dto.GenerateFromVideoResponse, error) {
	result, err := s.runFromVideo(ctx, req, uuid.Nil, true)
	if err != nil {
		return nil, err
	}
	return result.toResponse(), nil
}

// SubmitFromVideo รัน pipeline ถึงขั้น submit แล้วคืนเลย
func (s *PipelineServiceImpl) SubmitFromVideo(ctx context.Context, req *dto.GenerateFromVideoRequest) (*dto.GenerateFromVideoResponse, error) {
	result, err := s.runFromVideo(ctx, req, uuid.Nil, false)
	if err != nil {
		return nil, err
	}
	return result.toResponse(), nil
}

// GetJobStatus ถามสถานะ job set จาก provider
func (s *PipelineServiceImpl) GetJobStatus(ctx context.Context, jobSetID string) (*dto.JobSetResponse, error) {
	js, err := s.videoGen.GetJobSet(ctx, jobSetID)
	if err != nil {
		return nil, &services.StatusCheckError{JobSetID: jobSetID, Err: err}
	}
	return dto.ToJobSetResponse(js), nil
}

// pipelineResult ผลจาก runFromVideo ทั้งแบบรอและไม่รอ
type pipelineResult struct {
	JobSetID       string
	Status         ports.AggregateStatus
	VideoURL       string
	FrameImageURL  string
	UsedPrompt     string
	FrameTimestamp float64
	Meta           *ports.VideoMeta
}

func (r *pipelineResult) toResponse() *dto.GenerateFromVideoResponse {
	return &dto.GenerateFromVideoResponse{
		JobSetID:      r.JobSetID,
		Status:        string(r.Status),
		VideoURL:      r.VideoURL,
		FrameImageURL: r.FrameImageURL,
		UsedPrompt:    r.UsedPrompt,
	}
}

// runFromVideo pipeline หลักของการต่อเรื่อง
// ลำดับตายตัว: preflight → download → probe+extract → upload frame →
// submit i2v → (poll จนจบถ้า wait) ขั้นไหนพังถือว่างานพังทั้งก้อน ไม่มี partial
// scratch ถูกลบเสมอผ่าน defer
func (s *PipelineServiceImpl) runFromVideo(ctx context.Context, req *dto.GenerateFromVideoRequest, projectID uuid.UUID, wait bool) (*pipelineResult, error) {
	s.publishStage(ctx, projectID, ports.StageValidating, req.VideoURL)

	pf, err := s.fetcher.Preflight(ctx, req.VideoURL)
	if err != nil {
		return nil, err
	}

	scratch, err := newScratchSpace(s.pipeCfg.WorkDir)
	if err != nil {
		return nil, err
	}
	defer scratch.Cleanup()

	s.publishStage(ctx, projectID, ports.StageDownloading, req.VideoURL)

	videoPath := scratch.Path("source.mp4")
	if err := s.fetcher.Download(ctx, req.VideoURL, videoPath, pf.ContentLength); err != nil {
		return nil, err
	}

	s.publishStage(ctx, projectID, ports.StageExtractingFrame, "")

	meta, err := s.media.Probe(ctx, videoPath)
	if err != nil {
		return nil, &services.ProbeError{Path: videoPath, Err: err}
	}

	framePath := scratch.Path("last_frame.jpg")
	frameTS, err := s.media.ExtractLastFrame(ctx, videoPath, framePath)
	if err != nil {
		return nil, &services.ExtractError{Path: videoPath, Err: err}
	}

	s.publishStage(ctx, projectID, ports.StageUploadingFrame, "")

	frameURL, err := s.storage.UploadLocalFile(ctx, framePath, "frames")
	if err != nil {
		return nil, &services.UploadError{Key: framePath, Err: err}
	}

	usedPrompt := ComposeGenerationPrompt(req.PreviousPrompt, req.NextPrompt)

	s.publishStage(ctx, projectID, ports.StageSubmitting, "")

	params := s.submitDefaults(ports.SubmitParams{
		Prompt:        usedPrompt,
		Model:         req.Model,
		Duration:      req.Duration,
		Resolution:    req.Resolution,
		AspectRatio:   req.AspectRatio,
		Seed:          req.Seed,
		InputImageURL: frameURL,
	})

	jobSetID, err := s.videoGen.Submit(ctx, params)
	if err != nil {
		return nil, submitFailure(err)
	}

	result := &pipelineResult{
		JobSetID:       jobSetID,
		Status:         ports.AggregateQueued,
		FrameImageURL:  frameURL,
		UsedPrompt:     usedPrompt,
		FrameTimestamp: frameTS,
		Meta:           meta,
	}

	if !wait {
		return result, nil
	}

	s.publishStage(ctx, projectID, ports.StagePolling, jobSetID)

	pollCtx := ctx
	if s.pipeCfg.PollTimeout > 0 {
		var cancel context.CancelFunc
		pollCtx, cancel = context.WithTimeout(ctx, s.pipeCfg.PollTimeout)
		defer cancel()
	}

	js, err := s.videoGen.PollUntilTerminal(pollCtx, jobSetID, s.pipeCfg.PollInterval)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &services.PollTimeoutError{JobSetID: jobSetID, Err: err}
		}
		return nil, fmt.Errorf("poll failed for job set %s: %w", jobSetID, err)
	}

	result.Status = js.AggregateStatus()
	result.VideoURL = js.FirstResultURL()

	if result.Status == ports.AggregateFailed {
		return nil, &services.JobError{JobSetID: jobSetID, Status: string(result.Status)}
	}
	if result.VideoURL == "" {
		return nil, &services.JobError{JobSetID: jobSetID, Status: "completed_without_result"}
	}

	logger.InfoContext(ctx, "Continuation pipeline finished",
		"job_set_id", jobSetID, "video_url", result.VideoURL)

	return result, nil
}

// submitFailure คง SubmitError จาก provider client ไว้ (มี status code ติดมา)
// wrap เฉพาะ error ดิบเช่น network failure
func submitFailure(err error) error {
	var se *services.SubmitError
	if errors.As(err, &se) {
		return se
	}
	return &services.SubmitError{Err: err}
}

func (s *PipelineServiceImpl) submitDefaults(p ports.SubmitParams) ports.SubmitParams {
	if p.Model == "" {
		p.Model = s.hfCfg.DefaultModel
	}
	if p.Duration <= 0 {
		p.Duration = s.hfCfg.DefaultDuration
	}
	if p.Resolution == "" {
		p.Resolution = s.hfCfg.DefaultResolution
	}
	if p.AspectRatio == "" {
		p.AspectRatio = s.hfCfg.DefaultAspectRatio
	}
	p.EnhancePrompt = true
	return p
}

func (s *PipelineServiceImpl) publishStage(ctx context.Context, projectID uuid.UUID, stage ports.PipelineStage, detail string) {
	if s.progress == nil || projectID == uuid.Nil {
		return
	}
	s.progress.PublishStage(ctx, projectID, stage, detail)
}
