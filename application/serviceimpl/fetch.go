package serviceimpl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"storyreel/domain/services"
	"storyreel/pkg/logger"
	"storyreel/pkg/utils"
)

// ขั้นต่ำที่ scratch disk ต้องว่างก่อนเริ่ม download เมื่อไม่รู้ขนาดไฟล์
const defaultDownloadReserve = 512 << 20 // 512 MiB

// videoFetcher ตรวจและโหลด source video ลง scratch
type videoFetcher struct {
	client           *http.Client
	preflightTimeout time.Duration
}

func newVideoFetcher(preflightTimeout time.Duration) *videoFetcher {
	if preflightTimeout <= 0 {
		preflightTimeout = 30 * time.Second
	}
	return &videoFetcher{
		client:           &http.Client{Timeout: 10 * time.Minute},
		preflightTimeout: preflightTimeout,
	}
}

type preflightResult struct {
	OK            bool
	Reason        string
	ContentLength int64
}

// Preflight เช็คว่า URL เข้าถึงได้และน่าจะเป็น video จริง
// ลอง HEAD ก่อน บาง CDN ไม่รับ HEAD ค่อย fallback เป็น ranged GET
// กันเคสโหลด error page มาเป็น "video" เงียบๆ
func (f *videoFetcher) Preflight(ctx context.Context, videoURL string) (*preflightResult, error) {
	ctx, cancel := context.WithTimeout(ctx, f.preflightTimeout)
	defer cancel()

	resp, err := f.headOrRangedGet(ctx, videoURL)
	if err != nil {
		return nil, &services.PreflightError{URL: videoURL, Reason: err.Error()}
	}
	defer func() {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
	}()

	result := evaluatePreflight(videoURL, resp.StatusCode, resp.Header.Get("Content-Type"), resp.ContentLength)
	if !result.OK {
		return nil, &services.PreflightError{URL: videoURL, Reason: result.Reason}
	}
	return result, nil
}

func (f *videoFetcher) headOrRangedGet(ctx context.Context, videoURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, videoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err == nil && resp.StatusCode < 400 {
		return resp, nil
	}
	if err == nil {
		resp.Body.Close()
	}

	req, err = http.NewRequestWithContext(ctx, http.MethodGet, videoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Range", "bytes=0-1023")
	return f.client.Do(req)
}

// evaluatePreflight ตัดสินจาก status + content type + ขนาด
// ผ่านเมื่อ status < 400 และดูเป็น video (CT มี video/ หรือ path ลงท้าย .mp4)
// และขนาด > 1KB หรือ server ตอบ 206 (แปลว่ารองรับ range = ไฟล์จริง)
func evaluatePreflight(videoURL string, statusCode int, contentType string, contentLength int64) *preflightResult {
	if statusCode >= 400 {
		return &preflightResult{Reason: fmt.Sprintf("status %d", statusCode)}
	}

	looksVideo := strings.Contains(strings.ToLower(contentType), "video/")
	if !looksVideo {
		if u, err := url.Parse(videoURL); err == nil {
			looksVideo = strings.HasSuffix(strings.ToLower(u.Path), ".mp4")
		}
	}
	if !looksVideo {
		return &preflightResult{Reason: fmt.Sprintf("content type %q does not look like a video", contentType)}
	}

	if contentLength <= 1024 && statusCode != http.StatusPartialContent {
		return &preflightResult{Reason: fmt.Sprintf("suspiciously small body (%d bytes)", contentLength)}
	}

	return &preflightResult{OK: true, ContentLength: contentLength}
}

// Download โหลด video ลง destPath แบบ streaming
// เช็คพื้นที่ disk ก่อน ไฟล์ size ไม่รู้ก็กันที่ไว้ขั้นต่ำ
func (f *videoFetcher) Download(ctx context.Context, videoURL string, destPath string, expectedSize int64) error {
	required := expectedSize
	if required <= 0 {
		required = defaultDownloadReserve
	}

	ok, info, err := utils.CheckDiskSpace(destPath, required, 0)
	if err != nil {
		logger.WarnContext(ctx, "Disk space check failed, continuing", "error", err)
	} else if !ok {
		return &services.DownloadError{
			URL: videoURL,
			Err: &utils.DiskSpaceError{Required: required, Available: info.Free},
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, videoURL, nil)
	if err != nil {
		return &services.DownloadError{URL: videoURL, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return &services.DownloadError{URL: videoURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &services.DownloadError{
			URL: videoURL,
			Err: fmt.Errorf("download returned status %d", resp.StatusCode),
		}
	}

	out, err := os.Create(destPath)
	if err != nil {
		return &services.DownloadError{URL: videoURL, Err: err}
	}

	written, err := io.Copy(out, resp.Body)
	closeErr := out.Close()
	if err != nil {
		os.Remove(destPath)
		return &services.DownloadError{URL: videoURL, Err: err}
	}
	if closeErr != nil {
		os.Remove(destPath)
		return &services.DownloadError{URL: videoURL, Err: closeErr}
	}

	logger.DebugContext(ctx, "Video downloaded",
		"url", videoURL, "dest", destPath, "bytes", written)
	return nil
}
