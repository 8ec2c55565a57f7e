package serviceimpl

import (
	"context"
	"testing"

	"storyreel/domain/models"
	"storyreel/domain/ports"
)

type recordingGenRepo struct {
	fakeGenRepo
	updated *models.InitialGeneration
}

func (r *recordingGenRepo) Update(ctx context.Context, g *models.InitialGeneration) error {
	r.updated = g
	return nil
}

func TestApplyJobSet(t *testing.T) {
	resultURL := "https://cdn/v.mp4"

	tests := []struct {
		name       string
		jobSet     *ports.JobSet
		wantStatus models.GenerationStatus
		wantURL    *string
	}{
		{
			// มี video URL = เสร็จ ไม่สน status ที่ provider รายงาน
			// (provider เคยตอบ processing ทั้งที่ไฟล์เสร็จแล้ว)
			name: "video url wins over reported status",
			jobSet: &ports.JobSet{Jobs: []ports.Job{{
				Status:  "processing",
				Results: ports.JobResults{Raw: &ports.ResultURL{URL: resultURL}},
			}}},
			wantStatus: models.GenerationStatusCompleted,
			wantURL:    &resultURL,
		},
		{
			name:       "failed clears url",
			jobSet:     &ports.JobSet{Jobs: []ports.Job{{Status: "failed"}}},
			wantStatus: models.GenerationStatusFailed,
			wantURL:    nil,
		},
		{
			name:       "processing without result",
			jobSet:     &ports.JobSet{Jobs: []ports.Job{{Status: "running"}}},
			wantStatus: models.GenerationStatusInProgress,
			wantURL:    nil,
		},
		{
			name:       "empty job set stays queued",
			jobSet:     &ports.JobSet{},
			wantStatus: models.GenerationStatusQueued,
			wantURL:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &recordingGenRepo{}
			svc := &GenerationServiceImpl{genRepo: repo}
			generation := &models.InitialGeneration{JobID: "js-1", Status: models.GenerationStatusQueued}

			if err := svc.applyJobSet(context.Background(), generation, tt.jobSet); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if generation.Status != tt.wantStatus {
				t.Errorf("expected status %q, got %q", tt.wantStatus, generation.Status)
			}
			if (tt.wantURL == nil) != (generation.InitialVideoURL == nil) {
				t.Errorf("expected url %v, got %v", tt.wantURL, generation.InitialVideoURL)
			} else if tt.wantURL != nil && *generation.InitialVideoURL != *tt.wantURL {
				t.Errorf("expected url %q, got %q", *tt.wantURL, *generation.InitialVideoURL)
			}
			if repo.updated != generation {
				t.Error("expected repo.Update to be called with the generation")
			}
		})
	}
}
