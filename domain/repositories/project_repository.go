package repositories

import (
	"context"

	"github.com/google/uuid"

	"storyreel/domain/models"
)

// ProjectRepository interface สำหรับจัดการ project
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	// GetByIDWithRelations โหลด project พร้อม initial generation + segments เรียงตาม position
	GetByIDWithRelations(ctx context.Context, id uuid.UUID) (*models.Project, error)
	List(ctx context.Context, offset, limit int) ([]*models.Project, int64, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}
