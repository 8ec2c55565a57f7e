package mediatool

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"storyreel/domain/ports"
	"storyreel/pkg/logger"
)

type FFmpegConfig struct {
	FFmpegPath  string // path to ffmpeg binary
	FFprobePath string // path to ffprobe binary
}

type FFmpegTool struct {
	ffmpegPath  string
	ffprobePath string
}

func NewFFmpegTool(config FFmpegConfig) (ports.MediaToolPort, error) {
	ffmpegPath := config.FFmpegPath
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}

	ffprobePath := config.FFprobePath
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}

	tool := &FFmpegTool{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
	}

	if !tool.IsAvailable() {
		return nil, fmt.Errorf("ffmpeg not available at path: %s", ffmpegPath)
	}

	return tool, nil
}

// IsAvailable ตรวจสอบว่า ffmpeg พร้อมใช้งาน
func (t *FFmpegTool) IsAvailable() bool {
	cmd := exec.Command(t.ffmpegPath, "-version")
	return cmd.Run() == nil
}

type ffprobeOutput struct {
	Streams []struct {
		CodecType  string `json:"codec_type"`
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		RFrameRate string `json:"r_frame_rate"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe อ่าน metadata ของ video ด้วย ffprobe
func (t *FFmpegTool) Probe(ctx context.Context, videoPath string) (*ports.VideoMeta, error) {
	args := []string{
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		videoPath,
	}

	cmd := exec.CommandContext(ctx, t.ffprobePath, args...)
	output, err := cmd.Output()
	if err != nil {
		logger.ErrorContext(ctx, "ffprobe failed", "error", err, "path", videoPath)
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probeData ffprobeOutput
	if err := json.Unmarshal(output, &probeData); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	meta := &ports.VideoMeta{}

	if probeData.Format.Duration != "" {
		if duration, err := strconv.ParseFloat(probeData.Format.Duration, 64); err == nil {
			meta.Duration = duration
		}
	}

	for _, stream := range probeData.Streams {
		if stream.CodecType != "video" {
			continue
		}
		meta.Width = stream.Width
		meta.Height = stream.Height
		if stream.RFrameRate != "" {
			meta.FPS = ParseFrameRate(stream.RFrameRate)
		}
		break
	}

	return meta, nil
}

// ParseFrameRate แปลง "30000/1001" เป็น fps แบบปัดเศษ
func ParseFrameRate(raw string) int {
	parts := strings.SplitN(raw, "/", 2)
	num, err := strconv.ParseFloat(parts[0], 64)
	if err != nil || num <= 0 {
		return 0
	}
	den := 1.0
	if len(parts) == 2 {
		den, err = strconv.ParseFloat(parts[1], 64)
		if err != nil || den == 0 {
			return 0
		}
	}
	return int(math.Round(num / den))
}

// LastFrameTimestamp คำนวณจุด seek สำหรับ frame สุดท้าย
// ถอยจากท้าย 0.1s (หรือ 0.05s สำหรับ clip สั้นมาก) กัน seek เลย EOF
func LastFrameTimestamp(duration float64) float64 {
	var ts float64
	if duration > 0.1 {
		ts = duration - 0.1
	} else {
		ts = duration - 0.05
	}
	return math.Max(0, ts)
}

// ExtractLastFrame ดึง frame ใกล้ท้ายสุดของ video เป็น jpg
// คืน timestamp ที่ใช้ seek จริง
func (t *FFmpegTool) ExtractLastFrame(ctx context.Context, videoPath string, outputPath string) (float64, error) {
	meta, err := t.Probe(ctx, videoPath)
	if err != nil {
		return 0, err
	}

	ts := LastFrameTimestamp(meta.Duration)

	args := []string{
		"-ss", strconv.FormatFloat(ts, 'f', 3, 64),
		"-i", videoPath,
		"-frames:v", "1",
		"-q:v", "2",
		"-y",
		outputPath,
	}

	cmd := exec.CommandContext(ctx, t.ffmpegPath, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		logger.ErrorContext(ctx, "ffmpeg frame extraction failed",
			"error", err, "path", videoPath, "output", tail(string(output), 512))
		return 0, fmt.Errorf("frame extraction failed: %w", err)
	}

	if info, err := os.Stat(outputPath); err != nil || info.Size() == 0 {
		return 0, fmt.Errorf("frame extraction produced no output at %s", outputPath)
	}

	logger.DebugContext(ctx, "Last frame extracted",
		"video", videoPath, "timestamp", ts, "frame", outputPath)

	return ts, nil
}

// Concat ต่อ video หลายไฟล์เป็นไฟล์เดียว
// ลอง concat demuxer แบบ stream copy ก่อน (เร็ว ไม่เสียคุณภาพ)
// ถ้า codec ไม่เข้ากันค่อย re-encode ด้วย concat filter
func (t *FFmpegTool) Concat(ctx context.Context, inputPaths []string, outputPath string) error {
	if len(inputPaths) == 0 {
		return fmt.Errorf("no input files to concat")
	}
	if len(inputPaths) == 1 {
		return copyFile(inputPaths[0], outputPath)
	}

	listPath := outputPath + ".list.txt"
	if err := writeConcatList(listPath, inputPaths); err != nil {
		return err
	}
	defer os.Remove(listPath)

	args := []string{
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		"-y",
		outputPath,
	}

	cmd := exec.CommandContext(ctx, t.ffmpegPath, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		logger.WarnContext(ctx, "Stream-copy concat failed, re-encoding",
			"error", err, "output", tail(string(output), 512))
		return t.concatReencode(ctx, inputPaths, outputPath)
	}

	return nil
}

// concatReencode รวมด้วย concat filter (re-encode ทั้งหมด)
func (t *FFmpegTool) concatReencode(ctx context.Context, inputPaths []string, outputPath string) error {
	args := []string{}
	for _, p := range inputPaths {
		args = append(args, "-i", p)
	}

	var filter strings.Builder
	for i := range inputPaths {
		fmt.Fprintf(&filter, "[%d:v:0]", i)
	}
	fmt.Fprintf(&filter, "concat=n=%d:v=1:a=0[outv]", len(inputPaths))

	args = append(args,
		"-filter_complex", filter.String(),
		"-map", "[outv]",
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "20",
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		"-y",
		outputPath,
	)

	cmd := exec.CommandContext(ctx, t.ffmpegPath, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		logger.ErrorContext(ctx, "Re-encode concat failed",
			"error", err, "output", tail(string(output), 512))
		return fmt.Errorf("concat failed: %w", err)
	}

	return nil
}

func writeConcatList(listPath string, inputPaths []string) error {
	var b strings.Builder
	for _, p := range inputPaths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		// escape single quote ตาม concat demuxer syntax
		abs = strings.ReplaceAll(abs, "'", `'\''`)
		fmt.Fprintf(&b, "file '%s'\n", abs)
	}
	return os.WriteFile(listPath, []byte(b.String()), 0o644)
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
