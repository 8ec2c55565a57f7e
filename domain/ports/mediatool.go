package ports

import "context"

// VideoMeta metadata ของ video จาก probe
type VideoMeta struct {
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Duration float64 `json:"duration"` // seconds
	FPS      int     `json:"fps"`      // ปัดเศษจาก r_frame_rate
}

// MediaToolPort interface ครอบ ffmpeg/ffprobe subprocess
type MediaToolPort interface {
	// Probe อ่าน metadata ของ video file
	Probe(ctx context.Context, videoPath string) (*VideoMeta, error)

	// ExtractLastFrame ดึง frame ใกล้ท้ายสุดของ video เป็นรูป
	// return timestamp (วินาที) ที่ใช้ seek จริง
	ExtractLastFrame(ctx context.Context, videoPath string, outputPath string) (float64, error)

	// Concat ต่อ video หลายไฟล์เป็นไฟล์เดียว
	// ลอง stream copy ก่อน ถ้า codec ไม่เข้ากันค่อย re-encode
	Concat(ctx context.Context, inputPaths []string, outputPath string) error

	// IsAvailable เช็คว่า ffmpeg/ffprobe อยู่ใน PATH หรือไม่
	IsAvailable() bool
}
