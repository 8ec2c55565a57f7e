package services

import (
	"context"

	"github.com/google/uuid"

	"storyreel/domain/dto"
)

// StoryService จัดการ ledger การต่อเรื่องของ project
type StoryService interface {
	// Continue ต่อเรื่องหนึ่ง segment: หา state ปัจจุบัน รัน pipeline
	// แล้ว append segment ใหม่ต่อท้าย (ถือ lock ราย project ตลอดงาน)
	Continue(ctx context.Context, projectID uuid.UUID, req *dto.ContinueStoryRequest) (*dto.ContinueStoryResponse, error)

	// ListSegments ดึง segment ทั้งหมดเรียงตาม position
	ListSegments(ctx context.Context, projectID uuid.UUID) ([]*dto.SegmentResponse, error)

	// DeleteLast ลบ segment ตัวท้ายสุด (undo หนึ่งก้าว)
	// คืน ErrNotTail ถ้า id ที่ส่งมาไม่ใช่ตัวท้าย
	DeleteLast(ctx context.Context, projectID uuid.UUID, segmentID uuid.UUID) error

	// Assemble รวม video ทุก segment (รวม initial) เป็นไฟล์เดียวแล้วอัปโหลด
	Assemble(ctx context.Context, projectID uuid.UUID) (*dto.AssembleStoryResponse, error)
}
