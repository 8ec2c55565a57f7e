package dto

// GenerateVideoRequest คำขอ generate video ตรงๆ (text-to-video)
type GenerateVideoRequest struct {
	Prompt      string `json:"prompt" validate:"required,min=1"`
	Model       string `json:"model" validate:"omitempty,max=100"`
	Duration    int    `json:"duration" validate:"omitempty,min=1,max=60"`
	Resolution  string `json:"resolution" validate:"omitempty,max=20"`
	AspectRatio string `json:"aspectRatio" validate:"omitempty,max=20"`
	Seed        *int   `json:"seed" validate:"omitempty,min=0"`
}

// GenerateFromVideoRequest คำขอ generate ต่อจาก video ที่มีอยู่
// ดึง frame สุดท้าย อัปโหลด แล้ว submit แบบ image-to-video
type GenerateFromVideoRequest struct {
	VideoURL       string `json:"videoUrl" validate:"required,url"`
	PreviousPrompt string `json:"previousPrompt" validate:"omitempty"`
	NextPrompt     string `json:"nextPrompt" validate:"required,min=1"`

	Model       string `json:"model" validate:"omitempty,max=100"`
	Duration    int    `json:"duration" validate:"omitempty,min=1,max=60"`
	Resolution  string `json:"resolution" validate:"omitempty,max=20"`
	AspectRatio string `json:"aspectRatio" validate:"omitempty,max=20"`
	Seed        *int   `json:"seed" validate:"omitempty,min=0"`
}

// ExtractFrameRequest คำขอดึง frame สุดท้ายจาก video URL
type ExtractFrameRequest struct {
	VideoURL string `json:"videoUrl" validate:"required,url"`
}

// ExtractFrameResponse frame ที่อัปโหลดแล้ว + meta ของ video ต้นทาง
type ExtractFrameResponse struct {
	VideoURL       string  `json:"videoUrl"`
	ImageURL       string  `json:"imageUrl"`
	FrameTimestamp float64 `json:"frameTimestamp"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Duration       float64 `json:"duration"`
	FPS            int     `json:"fps"`
}

// GenerateFromImageRequest submit image-to-video ตรงๆ จาก image URL ที่มีอยู่แล้ว
type GenerateFromImageRequest struct {
	ImageURL string `json:"imageUrl" validate:"required,url"`
	Prompt   string `json:"prompt" validate:"required,min=1"`

	Duration   int    `json:"duration" validate:"omitempty,min=1,max=60"`
	Resolution string `json:"resolution" validate:"omitempty,max=20"`
	Seed       *int   `json:"seed" validate:"omitempty,min=0"`
}

// GenerateFromVideoResponse ผลลัพธ์ของ pipeline image-to-video
type GenerateFromVideoResponse struct {
	JobSetID      string `json:"jobSetId"`
	Status        string `json:"status"`
	VideoURL      string `json:"videoUrl,omitempty"`
	FrameImageURL string `json:"frameImageUrl"`
	UsedPrompt    string `json:"usedPrompt"`
}

// SubmitJobResponse ผลการ submit งานอย่างเดียว (ไม่รอ)
type SubmitJobResponse struct {
	JobSetID string `json:"jobSetId"`
	Status   string `json:"status"`
}

// JobResultResponse สถานะ sub-job หนึ่งตัว
type JobResultResponse struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	VideoURL string `json:"videoUrl,omitempty"`
}

// JobSetResponse สถานะรวมของ job set จาก provider
type JobSetResponse struct {
	JobSetID string              `json:"jobSetId"`
	Status   string              `json:"status"`
	VideoURL string              `json:"videoUrl,omitempty"`
	Jobs     []JobResultResponse `json:"jobs,omitempty"`
}
