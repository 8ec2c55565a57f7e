package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"storyreel/domain/ports"
	"storyreel/pkg/logger"
)

// SubjectPipelineProgress subject ของ progress events แยกราย project
// เช่น storyreel.pipeline.progress.6f1e...
const SubjectPipelineProgress = "storyreel.pipeline.progress.%s"

// NATSProgressPublisher implements ProgressPublisherPort ด้วย core NATS
// events เป็น fire-and-forget ไม่ต้อง persist เลยไม่ใช้ JetStream
type NATSProgressPublisher struct {
	conn *nats.Conn
}

type PublisherConfig struct {
	URL string // nats://localhost:4222
}

// StageEvent payload ของ progress event
type StageEvent struct {
	ProjectID string `json:"projectId"`
	Stage     string `json:"stage"`
	Detail    string `json:"detail,omitempty"`
	At        string `json:"at"` // RFC3339 UTC
}

// NewNATSProgressPublisher เชื่อม NATS สำหรับส่ง progress events
func NewNATSProgressPublisher(cfg PublisherConfig) (*NATSProgressPublisher, error) {
	nc, err := nats.Connect(cfg.URL,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	logger.Info("NATS progress publisher initialized", "url", cfg.URL)
	return &NATSProgressPublisher{conn: nc}, nil
}

// PublishStage ส่ง stage event ออก bus
// publish ล้มเหลวแค่ warn — pipeline ต้องเดินต่อได้เสมอ
func (p *NATSProgressPublisher) PublishStage(ctx context.Context, projectID uuid.UUID, stage ports.PipelineStage, detail string) {
	if p == nil || p.conn == nil {
		return
	}

	event := StageEvent{
		ProjectID: projectID.String(),
		Stage:     string(stage),
		Detail:    detail,
		At:        time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.WarnContext(ctx, "Failed to marshal stage event", "error", err)
		return
	}

	subject := fmt.Sprintf(SubjectPipelineProgress, projectID)
	if err := p.conn.Publish(subject, data); err != nil {
		logger.WarnContext(ctx, "Failed to publish stage event",
			"subject", subject, "stage", stage, "error", err)
	}
}

// Close ปิด connection (flush ก่อนกัน event ค้าง buffer)
func (p *NATSProgressPublisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	_ = p.conn.Flush()
	p.conn.Close()
}

// NoopProgressPublisher ใช้ตอนไม่ได้ config NATS
type NoopProgressPublisher struct{}

func (NoopProgressPublisher) PublishStage(context.Context, uuid.UUID, ports.PipelineStage, string) {}
func (NoopProgressPublisher) Close()                                                              {}
