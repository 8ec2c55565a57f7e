package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Meta เก็บ provenance ของ segment (video meta, frame time, provider params)
// เป็น JSONB - invariants ของ ledger ไม่สนใจเนื้อหาข้างใน
type Meta map[string]any

// Scan implements sql.Scanner for Meta
func (m *Meta) Scan(value interface{}) error {
	if value == nil {
		*m = Meta{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, m)
}

// Value implements driver.Valuer for Meta
func (m Meta) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	return json.Marshal(m)
}

// StorySegment หนึ่ง "ตอน" ของเรื่องใน project
// ลำดับกำหนดด้วย position (0,1,2,...) ต่อเนื่องไม่มีช่องว่าง
// append ได้เฉพาะท้ายลิสต์ และลบได้เฉพาะตัวท้ายสุด (tail)
type StorySegment struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_segments_project_position,priority:1;index:idx_segments_project_position_scan,priority:1"`
	Position  int       `gorm:"not null;uniqueIndex:idx_segments_project_position,priority:2;index:idx_segments_project_position_scan,priority:2"`

	// snapshot ของสถานะที่ segment นี้ถูก generate ออกมา
	PreviousVideoURL string `gorm:"size:1024;not null"`
	PreviousPrompt   string `gorm:"type:text;not null"`
	UsedPrompt       string `gorm:"type:text;not null"`
	NewVideoURL      string `gorm:"size:1024;not null"`

	// full prompt ณ ตอนนี้ (previous + used ตามกติกาเว้นวรรค/จุด)
	CumulativePrompt string `gorm:"type:text;not null"`

	JobSetID      string `gorm:"size:255"`
	FrameImageURL string `gorm:"size:1024"`
	Meta          Meta   `gorm:"type:jsonb;default:'{}'"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Project *Project `gorm:"foreignKey:ProjectID"`
}

func (StorySegment) TableName() string {
	return "story_segments"
}
