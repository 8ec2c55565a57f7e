package dto

// SuggestRequest คำขอ suggestion สำหรับต่อเรื่อง
type SuggestRequest struct {
	Prompt string `json:"prompt" validate:"required,min=1"`
	Count  int    `json:"count" validate:"omitempty,min=1,max=10"`
}

// SuggestResponse รายการ suggestion สั้นๆ
type SuggestResponse struct {
	Suggestions []string `json:"suggestions"`
}
