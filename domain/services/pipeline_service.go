package services

import (
	"context"

	"storyreel/domain/dto"
)

// PipelineService endpoint ระดับล่างของ generation pipeline
// ใช้ตรงๆ ได้โดยไม่ผูกกับ project
type PipelineService interface {
	// GenerateVideo submit text-to-video แล้วคืน job set id ทันที
	GenerateVideo(ctx context.Context, req *dto.GenerateVideoRequest) (*dto.SubmitJobResponse, error)

	// GenerateFromImage submit image-to-video จาก image URL ที่อัปโหลดไว้แล้ว
	GenerateFromImage(ctx context.Context, req *dto.GenerateFromImageRequest) (*dto.SubmitJobResponse, error)

	// ExtractFrame ดึง frame สุดท้ายของ video แล้วอัปโหลดเป็น image
	// ครึ่งแรกของ pipeline โดยไม่ submit อะไร
	ExtractFrame(ctx context.Context, req *dto.ExtractFrameRequest) (*dto.ExtractFrameResponse, error)

	// GenerateFromVideo รัน pipeline เต็ม: preflight, download, ดึง frame,
	// อัปโหลด, submit image-to-video แล้วรอจนจบ
	GenerateFromVideo(ctx context.Context, req *dto.GenerateFromVideoRequest) (*dto.GenerateFromVideoResponse, error)

	// SubmitFromVideo เหมือน GenerateFromVideo แต่ไม่รอ poll
	SubmitFromVideo(ctx context.Context, req *dto.GenerateFromVideoRequest) (*dto.GenerateFromVideoResponse, error)

	// GetJobStatus ถามสถานะ job set จาก provider
	GetJobStatus(ctx context.Context, jobSetID string) (*dto.JobSetResponse, error)
}
