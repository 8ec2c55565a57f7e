package services

import (
	"context"

	"github.com/google/uuid"

	"storyreel/domain/dto"
)

// GenerationService จัดการ initial generation ของ project
type GenerationService interface {
	// Generate submit วิดีโอตั้งต้นของ project
	// มี generation อยู่แล้ว = generate ใหม่ทับ (job ใหม่ ล้าง URL เดิม)
	Generate(ctx context.Context, projectID uuid.UUID, req *dto.GenerateInitialRequest) (*dto.GenerationResponse, error)

	// GetByProject ดึงสถานะ generation ตามที่บันทึกไว้
	GetByProject(ctx context.Context, projectID uuid.UUID) (*dto.GenerationResponse, error)

	// CheckStatus ถาม provider แล้ว sync สถานะล่าสุดลง DB
	// ถ้าเจอ video URL ถือว่า completed ไม่ว่า provider จะรายงานสถานะอะไร
	CheckStatus(ctx context.Context, projectID uuid.UUID) (*dto.GenerationStatusResponse, error)

	// SweepPending เช็คสถานะ generation ที่ยังไม่จบทั้งหมด (background job)
	SweepPending(ctx context.Context) error
}
