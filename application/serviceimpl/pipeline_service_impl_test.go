package serviceimpl

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"storyreel/domain/dto"
	"storyreel/domain/models"
	"storyreel/domain/ports"
	"storyreel/domain/services"
	"storyreel/pkg/config"
)

// --- pipeline fakes ---

type fakeVideoGen struct {
	jobSet     *ports.JobSet
	lastParams ports.SubmitParams
}

func (f *fakeVideoGen) Submit(ctx context.Context, params ports.SubmitParams) (string, error) {
	f.lastParams = params
	return f.jobSet.ID, nil
}
func (f *fakeVideoGen) GetJobSet(ctx context.Context, jobSetID string) (*ports.JobSet, error) {
	return f.jobSet, nil
}
func (f *fakeVideoGen) PollUntilTerminal(ctx context.Context, jobSetID string, interval time.Duration) (*ports.JobSet, error) {
	return f.jobSet, nil
}

type fakeMediaTool struct{}

func (fakeMediaTool) Probe(ctx context.Context, videoPath string) (*ports.VideoMeta, error) {
	return &ports.VideoMeta{Width: 1280, Height: 720, Duration: 10.0, FPS: 30}, nil
}
func (fakeMediaTool) ExtractLastFrame(ctx context.Context, videoPath string, outputPath string) (float64, error) {
	if err := os.WriteFile(outputPath, []byte("jpg"), 0644); err != nil {
		return 0, err
	}
	return 9.9, nil
}
func (fakeMediaTool) Concat(ctx context.Context, inputPaths []string, outputPath string) error {
	return os.WriteFile(outputPath, []byte("mp4"), 0644)
}
func (fakeMediaTool) IsAvailable() bool { return true }

type fakeStorage struct {
	uploaded []string
}

func (f *fakeStorage) UploadFile(ctx context.Context, file io.Reader, key, contentType string, size int64) (string, error) {
	return "https://cdn.example.com/" + key, nil
}
func (f *fakeStorage) UploadLocalFile(ctx context.Context, localPath, prefix string) (string, error) {
	f.uploaded = append(f.uploaded, localPath)
	return "https://cdn.example.com/" + prefix + "/frame.jpg", nil
}
func (f *fakeStorage) DeleteFile(ctx context.Context, key string) error { return nil }
func (f *fakeStorage) GetFileURL(key string) string                     { return "https://cdn.example.com/" + key }
func (f *fakeStorage) GetProviderName() string                          { return "s3" }

// videoServer แจกไฟล์ปลอมที่ผ่าน preflight (video/mp4, >1KB)
func videoServer(t *testing.T) *httptest.Server {
	t.Helper()
	body := bytes.Repeat([]byte("x"), 4096)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "video/mp4")
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func testPipeline(t *testing.T, videoGen ports.VideoGenPort, storage ports.StoragePort) *PipelineServiceImpl {
	t.Helper()
	return &PipelineServiceImpl{
		videoGen: videoGen,
		media:    fakeMediaTool{},
		storage:  storage,
		fetcher:  newVideoFetcher(5 * time.Second),
		hfCfg: config.HiggsfieldConfig{
			DefaultModel:       "minimax-t2v",
			DefaultDuration:    10,
			DefaultResolution:  "768",
			DefaultAspectRatio: "16:9",
		},
		pipeCfg: config.PipelineConfig{
			WorkDir:      t.TempDir(),
			PollInterval: time.Millisecond,
			PollTimeout:  5 * time.Second,
		},
	}
}

func TestGenerateFromVideoEndToEnd(t *testing.T) {
	server := videoServer(t)

	videoGen := &fakeVideoGen{jobSet: &ports.JobSet{
		ID: "js-e2e",
		Jobs: []ports.Job{{
			ID:      "j1",
			Status:  "completed",
			Results: ports.JobResults{Raw: &ports.ResultURL{URL: "https://cdn.example.com/result.mp4"}},
		}},
	}}
	storage := &fakeStorage{}
	pipeline := testPipeline(t, videoGen, storage)

	resp, err := pipeline.GenerateFromVideo(context.Background(), &dto.GenerateFromVideoRequest{
		VideoURL:       server.URL + "/source.mp4",
		PreviousPrompt: "a cat walks in",
		NextPrompt:     "it starts to rain",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.JobSetID != "js-e2e" {
		t.Errorf("expected job set js-e2e, got %q", resp.JobSetID)
	}
	if resp.VideoURL != "https://cdn.example.com/result.mp4" {
		t.Errorf("unexpected video url: %q", resp.VideoURL)
	}
	if resp.UsedPrompt != "In first part of video was a cat walks in, generate new part with it starts to rain" {
		t.Errorf("unexpected used prompt: %q", resp.UsedPrompt)
	}

	// submit ต้องเป็น image-to-video ด้วย frame ที่เพิ่งอัปโหลด
	if videoGen.lastParams.InputImageURL != resp.FrameImageURL {
		t.Errorf("submit used %q, uploaded frame was %q",
			videoGen.lastParams.InputImageURL, resp.FrameImageURL)
	}
	if !videoGen.lastParams.EnhancePrompt {
		t.Error("expected EnhancePrompt to be set")
	}
	if len(storage.uploaded) != 1 {
		t.Errorf("expected exactly one frame upload, got %d", len(storage.uploaded))
	}
}

func TestContinueAppendsTail(t *testing.T) {
	server := videoServer(t)

	fx := newStoryFixture()
	baseURL := server.URL + "/initial.mp4"
	fx.gens.gens[fx.projectID] = &models.InitialGeneration{
		ProjectID:       fx.projectID,
		Prompt:          "a cat walks in",
		Status:          models.GenerationStatusCompleted,
		InitialVideoURL: &baseURL,
	}

	// ผลลัพธ์ชี้กลับไป test server เพราะตอนต่อครั้งถัดไปต้องโหลดไฟล์นี้จริง
	segURL := server.URL + "/seg.mp4"
	videoGen := &fakeVideoGen{jobSet: &ports.JobSet{
		ID: "js-cont",
		Jobs: []ports.Job{{
			ID:      "j1",
			Status:  "completed",
			Results: ports.JobResults{Raw: &ports.ResultURL{URL: segURL}},
		}},
	}}
	pipeline := testPipeline(t, videoGen, &fakeStorage{})

	svc := NewStoryService(
		fx.projects, fx.gens, fx.segments,
		pipeline, fakeMediaTool{}, &fakeStorage{},
		fx.lock, nil,
		config.PipelineConfig{LockTTL: time.Minute, WorkDir: t.TempDir()},
	)

	resp, err := svc.Continue(context.Background(), fx.projectID, &dto.ContinueStoryRequest{NextPrompt: "it starts to rain"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.CumulativePrompt != "a cat walks in. it starts to rain" {
		t.Errorf("unexpected cumulative prompt: %q", resp.CumulativePrompt)
	}
	if resp.Segment.Position != 0 {
		t.Errorf("first segment must take position 0, got %d", resp.Segment.Position)
	}
	if resp.Segment.PreviousVideoURL != baseURL {
		t.Errorf("segment must snapshot the base video, got %q", resp.Segment.PreviousVideoURL)
	}
	if resp.VideoURL != segURL {
		t.Errorf("unexpected video url: %q", resp.VideoURL)
	}

	// ต่ออีกตอน → tail ขยับทีละหนึ่ง และ state ต่อจาก segment เดิม
	resp2, err := svc.Continue(context.Background(), fx.projectID, &dto.ContinueStoryRequest{NextPrompt: "thunder rolls"})
	if err != nil {
		t.Fatalf("unexpected error on second continue: %v", err)
	}
	if resp2.Segment.Position != 1 {
		t.Errorf("second segment must take position 1, got %d", resp2.Segment.Position)
	}
	if resp2.Segment.PreviousPrompt != resp.CumulativePrompt {
		t.Errorf("second segment must build on first cumulative prompt, got %q", resp2.Segment.PreviousPrompt)
	}
}

func TestSubmitFailureKeepsProviderStatus(t *testing.T) {
	// SubmitError จาก client ต้องทะลุออกไปทั้งก้อนพร้อม status code
	typed := &services.SubmitError{StatusCode: 422, Err: errors.New("rejected")}
	var se *services.SubmitError
	if !errors.As(submitFailure(typed), &se) || se.StatusCode != 422 {
		t.Errorf("typed submit error must pass through, got %v", submitFailure(typed))
	}

	// error ดิบ (network) ถูก wrap โดยไม่มี status
	plain := errors.New("connection refused")
	se = nil
	if !errors.As(submitFailure(plain), &se) || se.StatusCode != 0 {
		t.Errorf("plain error must be wrapped without status, got %v", submitFailure(plain))
	}
}
