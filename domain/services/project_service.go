package services

import (
	"context"

	"github.com/google/uuid"

	"storyreel/domain/dto"
)

// ProjectService จัดการ story project
type ProjectService interface {
	// Create สร้าง project พร้อม submit initial generation
	Create(ctx context.Context, req *dto.CreateProjectRequest) (*dto.ProjectDetailResponse, error)

	// GetByID ดึง project แบบเต็ม (full prompt + last video คำนวณจาก ledger)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProjectDetailResponse, error)

	List(ctx context.Context, req *dto.PaginationRequest) (*dto.ProjectListResponse, error)

	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)

	// Delete ลบ project พร้อม generation และ segments ทั้งหมด (cascade)
	Delete(ctx context.Context, id uuid.UUID) error
}
