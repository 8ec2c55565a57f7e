package models

import (
	"time"

	"github.com/google/uuid"
)

// GenerationStatus สถานะของ initial generation
type GenerationStatus string

const (
	GenerationStatusQueued     GenerationStatus = "queued"
	GenerationStatusInProgress GenerationStatus = "in_progress"
	GenerationStatusCompleted  GenerationStatus = "completed"
	GenerationStatusFailed     GenerationStatus = "failed"
)

// InitialGeneration วิดีโอตั้งต้นของ project (มีได้ตัวเดียวต่อ project)
// status ถูกอัปเดตจากการ poll provider เท่านั้น
type InitialGeneration struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ProjectID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	JobID           string           `gorm:"size:255;uniqueIndex"` // job-set id จาก provider
	Prompt          string           `gorm:"type:text;not null"`
	InitialVideoURL *string          `gorm:"size:1024"` // set ครั้งเดียวเมื่อเจอ URL ผลลัพธ์
	Status          GenerationStatus `gorm:"size:50;default:'queued'"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Project *Project `gorm:"foreignKey:ProjectID"`
}

func (InitialGeneration) TableName() string {
	return "initial_generations"
}

// IsTerminal ตรวจสอบว่า status ไม่เปลี่ยนอีกแล้ว
func (g *InitialGeneration) IsTerminal() bool {
	return g.Status == GenerationStatusCompleted || g.Status == GenerationStatusFailed
}

// HasVideo ตรวจสอบว่ามีวิดีโอตั้งต้นพร้อมใช้ต่อยอด
func (g *InitialGeneration) HasVideo() bool {
	return g.InitialVideoURL != nil && *g.InitialVideoURL != ""
}
