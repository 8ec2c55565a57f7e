package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storyreel/domain/models"
	"storyreel/domain/repositories"
	"storyreel/domain/services"
)

type SegmentRepositoryImpl struct {
	db *gorm.DB
}

func NewSegmentRepository(db *gorm.DB) repositories.SegmentRepository {
	return &SegmentRepositoryImpl{db: db}
}

// AppendToTail อ่าน position ของ tail แล้ว insert tail+1 ใน transaction เดียว
// postgres ไม่ยอมให้ FOR UPDATE อยู่กับ aggregate เลย lock แถว tail ตรงๆ แทน
// ledger ว่าง = ไม่มีแถวให้ lock ปล่อยให้ unique (project_id, position) จับแทน
func (r *SegmentRepositoryImpl) AppendToTail(ctx context.Context, segment *models.StorySegment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tail models.StorySegment
		result := r.tailForUpdate(tx, segment.ProjectID, &tail)
		if result.Error != nil {
			return result.Error
		}

		segment.Position = 0
		if result.RowsAffected > 0 {
			segment.Position = tail.Position + 1
		}

		return tx.Create(segment).Error
	})
}

// tailForUpdate ดึง segment ตัวท้ายสุดพร้อม row lock (SELECT ... FOR UPDATE)
func (r *SegmentRepositoryImpl) tailForUpdate(tx *gorm.DB, projectID uuid.UUID, dest *models.StorySegment) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("project_id = ?", projectID).
		Order("position DESC").
		Limit(1).
		Find(dest)
}

func (r *SegmentRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.StorySegment, error) {
	var segment models.StorySegment
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&segment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrSegmentNotFound
		}
		return nil, err
	}
	return &segment, nil
}

func (r *SegmentRepositoryImpl) GetTail(ctx context.Context, projectID uuid.UUID) (*models.StorySegment, error) {
	var segment models.StorySegment
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("position DESC").
		First(&segment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &segment, nil
}

func (r *SegmentRepositoryImpl) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.StorySegment, error) {
	var segments []*models.StorySegment
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("position ASC").
		Find(&segments).Error
	return segments, err
}

func (r *SegmentRepositoryImpl) CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.StorySegment{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

// DeleteTail ลบ segment ก็ต่อเมื่อมันยังเป็นตัวท้ายสุดของ project
// เงื่อนไข MAX(position) อยู่ใน statement เดียวกับ DELETE กันเคส tail
// ขยับหลังจากที่ service เช็คไปแล้ว (เช่นตอน Redis lock ใช้ไม่ได้ข้าม instance)
func (r *SegmentRepositoryImpl) DeleteTail(ctx context.Context, projectID, segmentID uuid.UUID) error {
	result := r.deleteTail(r.db.WithContext(ctx), projectID, segmentID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return services.ErrNotTail
	}
	return nil
}

func (r *SegmentRepositoryImpl) deleteTail(tx *gorm.DB, projectID, segmentID uuid.UUID) *gorm.DB {
	tailPosition := tx.Session(&gorm.Session{NewDB: true}).
		Model(&models.StorySegment{}).
		Select("MAX(position)").
		Where("project_id = ?", projectID)

	return tx.
		Where("id = ? AND project_id = ? AND position = (?)", segmentID, projectID, tailPosition).
		Delete(&models.StorySegment{})
}
