package repositories

import (
	"context"

	"github.com/google/uuid"

	"storyreel/domain/models"
)

// GenerationRepository interface สำหรับ initial generation
type GenerationRepository interface {
	Create(ctx context.Context, generation *models.InitialGeneration) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.InitialGeneration, error)
	GetByProjectID(ctx context.Context, projectID uuid.UUID) (*models.InitialGeneration, error)
	Update(ctx context.Context, generation *models.InitialGeneration) error
	// ListNonTerminal ดึง generation ที่ยังไม่จบ (สำหรับ background sweep)
	ListNonTerminal(ctx context.Context, limit int) ([]*models.InitialGeneration, error)
}
