package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateProjectRequest คำขอสร้าง project ใหม่พร้อม generate video แรก
type CreateProjectRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=255"`
	Prompt string `json:"prompt" validate:"required,min=1"`

	// พารามิเตอร์ generation (optional ใช้ default จาก config)
	Model       string `json:"model" validate:"omitempty,max=100"`
	Duration    int    `json:"duration" validate:"omitempty,min=1,max=60"`
	Resolution  string `json:"resolution" validate:"omitempty,max=20"`
	AspectRatio string `json:"aspectRatio" validate:"omitempty,max=20"`
	Seed        *int   `json:"seed" validate:"omitempty,min=0"`
}

// UpdateProjectRequest คำขอแก้ไขชื่อ project
type UpdateProjectRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

// ProjectResponse ข้อมูล project แบบย่อ (สำหรับ list)
type ProjectResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	SegmentCount int       `json:"segmentCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ProjectDetailResponse ข้อมูล project แบบเต็ม
// FullPrompt = prompt สะสมล่าสุด, LastVideoURL = video ปลายทางของเรื่อง
type ProjectDetailResponse struct {
	ID                uuid.UUID          `json:"id"`
	Name              string             `json:"name"`
	FullPrompt        string             `json:"fullPrompt"`
	LastVideoURL      string             `json:"lastVideoUrl"`
	InitialGeneration *GenerationResponse `json:"initialGeneration,omitempty"`
	Segments          []*SegmentResponse  `json:"segments"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

// ProjectListResponse รายการ project พร้อม pagination
type ProjectListResponse struct {
	Projects   []*ProjectResponse  `json:"projects"`
	Pagination *PaginationResponse `json:"pagination"`
}
