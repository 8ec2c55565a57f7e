package ports

import (
	"context"
	"time"
)

// AggregateStatus สถานะรวมของ job set
type AggregateStatus string

const (
	AggregateQueued     AggregateStatus = "queued"
	AggregateProcessing AggregateStatus = "processing"
	AggregateSucceeded  AggregateStatus = "succeeded"
	AggregateFailed     AggregateStatus = "failed"
)

// SubmitParams พารามิเตอร์สำหรับ submit งาน generate video
type SubmitParams struct {
	Prompt        string
	Model         string
	Duration      int    // seconds
	Resolution    string // เช่น "768"
	AspectRatio   string // เช่น "16:9"
	Seed          *int
	InputImageURL string // ถ้าไม่ว่าง = image-to-video
	EnhancePrompt bool
}

// ResultURL ลิงก์ผลลัพธ์หนึ่งตัวของ sub-job
type ResultURL struct {
	URL string `json:"url"`
}

// JobResults ผลลัพธ์ของ sub-job (raw = คุณภาพเต็ม, min = ย่อ)
type JobResults struct {
	Raw *ResultURL `json:"raw,omitempty"`
	Min *ResultURL `json:"min,omitempty"`
}

// Job sub-job หนึ่งตัวใน job set
type Job struct {
	ID      string     `json:"id"`
	Status  string     `json:"status"`
	Results JobResults `json:"results"`
}

// JobSet งาน generate หนึ่งชุดจาก provider
type JobSet struct {
	ID   string `json:"id"`
	Jobs []Job  `json:"jobs"`
}

// IsTerminal เช็คว่า sub-job จบแล้วหรือยัง
func (j Job) IsTerminal() bool {
	return j.Status == "completed" || j.Status == "failed"
}

// AggregateStatus รวมสถานะ sub-job ทั้งหมดเป็นสถานะเดียว
// failed ชนะทุกอย่าง, succeeded ต้องครบทุกตัว
func (js *JobSet) AggregateStatus() AggregateStatus {
	if js == nil || len(js.Jobs) == 0 {
		return AggregateQueued
	}
	allDone := true
	anyActive := false
	for _, j := range js.Jobs {
		switch j.Status {
		case "failed":
			return AggregateFailed
		case "succeeded", "completed":
			// done
		case "processing", "running", "queued":
			allDone = false
			anyActive = true
		default:
			allDone = false
		}
	}
	if allDone {
		return AggregateSucceeded
	}
	if anyActive {
		return AggregateProcessing
	}
	return AggregateQueued
}

// FirstResultURL หา URL ผลลัพธ์ตัวแรกตามลำดับ sub-job
// เลือก raw ก่อน min เสมอ คืน "" ถ้ายังไม่มี
func (js *JobSet) FirstResultURL() string {
	if js == nil {
		return ""
	}
	for _, j := range js.Jobs {
		if j.Results.Raw != nil && j.Results.Raw.URL != "" {
			return j.Results.Raw.URL
		}
		if j.Results.Min != nil && j.Results.Min.URL != "" {
			return j.Results.Min.URL
		}
	}
	return ""
}

// VideoGenPort interface สำหรับ provider generate video จาก text/image
type VideoGenPort interface {
	// Submit ส่งงาน generate คืน job set id
	// retry อัตโนมัติเมื่อเจอ 5xx (สูงสุด 3 ครั้ง)
	Submit(ctx context.Context, params SubmitParams) (string, error)

	// GetJobSet ดึงสถานะ job set ปัจจุบัน
	GetJobSet(ctx context.Context, jobSetID string) (*JobSet, error)

	// PollUntilTerminal วน poll จนกว่า job แรกจะจบ หรือ ctx หมดเวลา
	PollUntilTerminal(ctx context.Context, jobSetID string, interval time.Duration) (*JobSet, error)
}
