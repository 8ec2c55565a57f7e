package services

import (
	"context"

	"storyreel/domain/dto"
)

// SuggestionService สร้างไอเดียต่อเรื่องสั้นๆ จาก LLM
type SuggestionService interface {
	// Suggest คืน action phrase สั้นๆ (ไม่เกิน 20 ตัวอักษรต่อข้อ)
	// คืนเฉพาะสิ่งที่ model ตอบจริง ไม่แต่ง fallback เอง LLM ล่ม → error
	Suggest(ctx context.Context, req *dto.SuggestRequest) (*dto.SuggestResponse, error)
}
