package dto

import (
	"time"

	"github.com/google/uuid"
)

// ContinueStoryRequest คำขอต่อเรื่องจาก video ล่าสุดของ project
type ContinueStoryRequest struct {
	NextPrompt string `json:"nextPrompt" validate:"required,min=1"`

	Model       string `json:"model" validate:"omitempty,max=100"`
	Duration    int    `json:"duration" validate:"omitempty,min=1,max=60"`
	Resolution  string `json:"resolution" validate:"omitempty,max=20"`
	AspectRatio string `json:"aspectRatio" validate:"omitempty,max=20"`
	Seed        *int   `json:"seed" validate:"omitempty,min=0"`
}

// SegmentResponse segment หนึ่งตัวใน story ledger
type SegmentResponse struct {
	ID               uuid.UUID      `json:"id"`
	ProjectID        uuid.UUID      `json:"projectId"`
	Position         int            `json:"position"`
	PreviousVideoURL string         `json:"previousVideoUrl"`
	PreviousPrompt   string         `json:"previousPrompt"`
	UsedPrompt       string         `json:"usedPrompt"`
	NewVideoURL      string         `json:"newVideoUrl"`
	CumulativePrompt string         `json:"cumulativePrompt"`
	JobSetID         string         `json:"jobSetId,omitempty"`
	FrameImageURL    string         `json:"frameImageUrl,omitempty"`
	Meta             map[string]any `json:"meta,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
}

// ContinueStoryResponse ผลลัพธ์ของ continuation ที่สำเร็จ
type ContinueStoryResponse struct {
	Segment          *SegmentResponse `json:"segment"`
	CumulativePrompt string           `json:"cumulativePrompt"`
	VideoURL         string           `json:"videoUrl"`
}

// AssembleStoryResponse ผลการรวม video ทั้งเรื่องเป็นไฟล์เดียว
type AssembleStoryResponse struct {
	ProjectID    uuid.UUID `json:"projectId"`
	VideoURL     string    `json:"videoUrl"`
	SegmentCount int       `json:"segmentCount"`
}
