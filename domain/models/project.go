package models

import (
	"time"

	"github.com/google/uuid"
)

// Project โปรเจกต์หนึ่งเรื่อง ถือ initial generation หนึ่งตัว
// และ story segments ต่อกันเป็นลูกโซ่ตาม position
type Project struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name      string    `gorm:"size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Relations - ลบ project แล้ว cascade ทั้งสองตาราง
	InitialGeneration *InitialGeneration `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Segments          []*StorySegment    `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

func (Project) TableName() string {
	return "projects"
}
