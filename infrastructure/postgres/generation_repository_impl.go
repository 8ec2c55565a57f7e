package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storyreel/domain/models"
	"storyreel/domain/repositories"
	"storyreel/domain/services"
)

type GenerationRepositoryImpl struct {
	db *gorm.DB
}

func NewGenerationRepository(db *gorm.DB) repositories.GenerationRepository {
	return &GenerationRepositoryImpl{db: db}
}

func (r *GenerationRepositoryImpl) Create(ctx context.Context, generation *models.InitialGeneration) error {
	return r.db.WithContext(ctx).Create(generation).Error
}

func (r *GenerationRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.InitialGeneration, error) {
	var generation models.InitialGeneration
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&generation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrGenerationNotFound
		}
		return nil, err
	}
	return &generation, nil
}

func (r *GenerationRepositoryImpl) GetByProjectID(ctx context.Context, projectID uuid.UUID) (*models.InitialGeneration, error) {
	var generation models.InitialGeneration
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		First(&generation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrGenerationNotFound
		}
		return nil, err
	}
	return &generation, nil
}

func (r *GenerationRepositoryImpl) Update(ctx context.Context, generation *models.InitialGeneration) error {
	return r.db.WithContext(ctx).Save(generation).Error
}

func (r *GenerationRepositoryImpl) ListNonTerminal(ctx context.Context, limit int) ([]*models.InitialGeneration, error) {
	var generations []*models.InitialGeneration
	err := r.db.WithContext(ctx).
		Where("status NOT IN ?", []models.GenerationStatus{
			models.GenerationStatusCompleted,
			models.GenerationStatusFailed,
		}).
		Order("created_at ASC").
		Limit(limit).
		Find(&generations).Error
	return generations, err
}
