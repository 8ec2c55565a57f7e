package dto

// PaginationRequest พารามิเตอร์แบ่งหน้า
type PaginationRequest struct {
	Page  int `query:"page" validate:"omitempty,min=1"`
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// Normalize เติมค่า default
func (p *PaginationRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
}

// Offset คำนวณ offset สำหรับ query
func (p *PaginationRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PaginationResponse ข้อมูลแบ่งหน้าใน response
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPaginationResponse สร้าง PaginationResponse จาก request + total
func NewPaginationResponse(req *PaginationRequest, total int64) *PaginationResponse {
	totalPages := int(total) / req.Limit
	if int(total)%req.Limit > 0 {
		totalPages++
	}
	return &PaginationResponse{
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
