package ports

import (
	"context"

	"github.com/google/uuid"
)

// PipelineStage ขั้นตอนของ continuation pipeline
type PipelineStage string

const (
	StageValidating      PipelineStage = "validating"
	StageDownloading     PipelineStage = "downloading"
	StageExtractingFrame PipelineStage = "extracting_frame"
	StageUploadingFrame  PipelineStage = "uploading_frame"
	StageSubmitting      PipelineStage = "submitting"
	StagePolling         PipelineStage = "polling"
	StageCompleted       PipelineStage = "completed"
	StageFailed          PipelineStage = "failed"
)

// ProgressPublisherPort ส่ง event ความคืบหน้าของ pipeline ออก message bus
// implementation ต้อง fail-soft: publish ไม่ได้ห้ามทำ pipeline ล้ม
type ProgressPublisherPort interface {
	PublishStage(ctx context.Context, projectID uuid.UUID, stage PipelineStage, detail string)
	Close()
}
