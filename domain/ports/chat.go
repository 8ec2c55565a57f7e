package ports

import "context"

// ChatRequest คำขอ chat completion หนึ่งรอบ
type ChatRequest struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

// ChatPort interface สำหรับ LLM แบบ OpenAI-compatible
type ChatPort interface {
	// Complete ส่ง prompt คืนข้อความจาก choice แรก
	Complete(ctx context.Context, req ChatRequest) (string, error)
}
