package dto

import (
	"time"

	"github.com/google/uuid"
)

// GenerateInitialRequest ขอ generate (หรือ generate ใหม่) วิดีโอตั้งต้น
type GenerateInitialRequest struct {
	Prompt      string `json:"prompt" validate:"required,min=1"`
	Model       string `json:"model" validate:"omitempty,max=100"`
	Duration    int    `json:"duration" validate:"omitempty,min=1,max=60"`
	Resolution  string `json:"resolution" validate:"omitempty,max=20"`
	AspectRatio string `json:"aspectRatio" validate:"omitempty,max=20"`
	Seed        *int   `json:"seed" validate:"omitempty,min=0"`
}

// GenerationResponse สถานะ initial generation ของ project
type GenerationResponse struct {
	ID              uuid.UUID `json:"id"`
	ProjectID       uuid.UUID `json:"projectId"`
	JobID           string    `json:"jobId"`
	Prompt          string    `json:"prompt"`
	Status          string    `json:"status"`
	InitialVideoURL string    `json:"initialVideoUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// GenerationStatusResponse ผลการเช็คสถานะกับ provider
type GenerationStatusResponse struct {
	Generation *GenerationResponse `json:"generation"`
	Provider   *JobSetResponse     `json:"provider,omitempty"`
}
