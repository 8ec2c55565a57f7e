package repositories

import (
	"context"

	"github.com/google/uuid"

	"storyreel/domain/models"
)

// SegmentRepository interface สำหรับ story ledger
// append-only: เพิ่มได้เฉพาะท้าย ลบได้เฉพาะตัวท้ายสุด
type SegmentRepository interface {
	// AppendToTail เพิ่ม segment ต่อท้ายใน transaction เดียว
	// lock แถว tail แล้วเซ็ต position = tail+1 ก่อน insert (0 เมื่อยังว่าง)
	AppendToTail(ctx context.Context, segment *models.StorySegment) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.StorySegment, error)

	// GetTail ดึง segment ตัวท้ายสุดของ project (nil ถ้ายังไม่มี)
	GetTail(ctx context.Context, projectID uuid.UUID) (*models.StorySegment, error)

	// ListByProject ดึง segment ทั้งหมดเรียงตาม position
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.StorySegment, error)

	CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error)

	// DeleteTail ลบ segment เฉพาะเมื่อยังเป็น tail อยู่ ใน statement เดียว
	// คืน ErrNotTail เมื่อเงื่อนไขไม่ผ่าน
	DeleteTail(ctx context.Context, projectID, segmentID uuid.UUID) error
}
