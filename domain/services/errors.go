package services

import (
	"errors"
	"fmt"
)

// Sentinel errors สำหรับ business rule
var (
	// ErrProjectNotFound หา project ไม่เจอ
	ErrProjectNotFound = errors.New("project not found")
	// ErrGenerationNotFound หา initial generation ไม่เจอ
	ErrGenerationNotFound = errors.New("generation not found")
	// ErrSegmentNotFound หา segment ไม่เจอ
	ErrSegmentNotFound = errors.New("segment not found")
	// ErrNoBaseState project ยังไม่มี video ตั้งต้นให้ต่อเรื่อง
	ErrNoBaseState = errors.New("project has no completed base video to continue from")
	// ErrNotTail ลบได้เฉพาะ segment ตัวท้ายสุดเท่านั้น
	ErrNotTail = errors.New("only the last segment can be deleted")
	// ErrNoSegmentsToAssemble ไม่มี video ให้รวม
	ErrNoSegmentsToAssemble = errors.New("project has no videos to assemble")
)

// PreflightError source video เข้าถึงไม่ได้หรือไม่ใช่ video
type PreflightError struct {
	URL    string
	Reason string
}

func (e *PreflightError) Error() string {
	return fmt.Sprintf("preflight failed for %s: %s", e.URL, e.Reason)
}

// DownloadError โหลด source video ไม่สำเร็จ
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download failed for %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// ProbeError อ่าน metadata ของ video ไม่ได้
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe failed for %s: %v", e.Path, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// ExtractError ดึง frame จาก video ไม่ได้
type ExtractError struct {
	Path string
	Err  error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("frame extraction failed for %s: %v", e.Path, e.Err)
}

func (e *ExtractError) Unwrap() error { return e.Err }

// UploadError อัปโหลดขึ้น object storage ไม่สำเร็จ
type UploadError struct {
	Key string
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed for %s: %v", e.Key, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// SubmitError submit งานไปยัง provider ไม่สำเร็จ
type SubmitError struct {
	StatusCode int
	Err        error
}

func (e *SubmitError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("job submit failed (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("job submit failed: %v", e.Err)
}

func (e *SubmitError) Unwrap() error { return e.Err }

// StatusCheckError ถามสถานะจาก provider ไม่ได้
type StatusCheckError struct {
	JobSetID string
	Err      error
}

func (e *StatusCheckError) Error() string {
	return fmt.Sprintf("status check failed for job set %s: %v", e.JobSetID, e.Err)
}

func (e *StatusCheckError) Unwrap() error { return e.Err }

// PollTimeoutError รอ provider นานเกิน deadline
type PollTimeoutError struct {
	JobSetID string
	Err      error
}

func (e *PollTimeoutError) Error() string {
	return fmt.Sprintf("polling timed out for job set %s: %v", e.JobSetID, e.Err)
}

func (e *PollTimeoutError) Unwrap() error { return e.Err }

// JobError provider ตอบว่างานล้มเหลว
type JobError struct {
	JobSetID string
	Status   string
}

func (e *JobError) Error() string {
	return fmt.Sprintf("job set %s ended with status %s", e.JobSetID, e.Status)
}
