package higgsfield

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storyreel/domain/ports"
	"storyreel/domain/services"
	"storyreel/pkg/logger"
)

const (
	submitMaxAttempts = 3
	statusMaxAttempts = 3
)

// Client implements VideoGenPort สำหรับ Higgsfield API
type Client struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
}

type ClientConfig struct {
	BaseURL   string
	APIKey    string
	APISecret string
	Timeout   time.Duration
}

func NewClient(config ClientConfig) ports.VideoGenPort {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimSuffix(config.BaseURL, "/"),
		apiKey:     config.APIKey,
		apiSecret:  config.APISecret,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type submitResponse struct {
	ID       string `json:"id"`
	JobSetID string `json:"job_set_id"`
}

// Submit ส่งงาน generate ไปยัง provider
// image-to-video ใช้ /v1/image2video/minimax, text-to-video ใช้ /generate/{model}
// 5xx retry สูงสุด 3 ครั้ง หน่วง 3s, 6s แบบ linear
func (c *Client) Submit(ctx context.Context, p ports.SubmitParams) (string, error) {
	params := map[string]any{
		"prompt":     p.Prompt,
		"duration":   p.Duration,
		"resolution": p.Resolution,
	}
	if p.Seed != nil {
		params["seed"] = *p.Seed
	}

	var path string
	if p.InputImageURL != "" {
		path = "/v1/image2video/minimax"
		params["enhance_prompt"] = p.EnhancePrompt
		params["input_image"] = map[string]any{
			"type":      "image_url",
			"image_url": p.InputImageURL,
		}
	} else {
		path = "/generate/" + p.Model
		// API มีทั้งสองสะกด ส่งทั้งคู่
		params["enable_prompt_optimizier"] = p.EnhancePrompt
		params["enable_prompt_optimizer"] = p.EnhancePrompt
		if p.AspectRatio != "" {
			params["aspect_ratio"] = p.AspectRatio
		}
	}

	body, err := json.Marshal(map[string]any{"params": params})
	if err != nil {
		return "", fmt.Errorf("failed to marshal submit payload: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < submitMaxAttempts; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, time.Duration(3*attempt)*time.Second); err != nil {
				return "", err
			}
		}

		status, respBody, err := c.do(ctx, http.MethodPost, path, body)
		if err != nil {
			lastErr = err
			logger.WarnContext(ctx, "Higgsfield submit request failed",
				"attempt", attempt+1, "error", err)
			continue
		}

		if status < 400 {
			var resp submitResponse
			if err := json.Unmarshal(respBody, &resp); err != nil {
				return "", fmt.Errorf("failed to parse submit response: %w", err)
			}
			jobSetID := resp.ID
			if jobSetID == "" {
				jobSetID = resp.JobSetID
			}
			if jobSetID == "" {
				return "", fmt.Errorf("submit accepted but no job set id in response")
			}
			logger.InfoContext(ctx, "Higgsfield job submitted", "job_set_id", jobSetID, "path", path)
			return jobSetID, nil
		}

		lastErr = &services.SubmitError{
			StatusCode: status,
			Err:        fmt.Errorf("provider response: %s", truncate(string(respBody), 512)),
		}
		logger.WarnContext(ctx, "Higgsfield submit rejected",
			"attempt", attempt+1, "status", status)

		// retry เฉพาะ 5xx, client error จบทันที
		if status < 500 || status >= 600 {
			break
		}
	}

	return "", lastErr
}

// GetJobSet ดึงสถานะ job set
// API บาง deployment ไม่มี /v1 prefix เลยลองทั้งสอง path, 404 ข้ามไป path ถัดไป
func (c *Client) GetJobSet(ctx context.Context, jobSetID string) (*ports.JobSet, error) {
	paths := []string{
		"/v1/job-sets/" + jobSetID,
		"/job-sets/" + jobSetID,
	}

	var lastErr error
	for attempt := 0; attempt < statusMaxAttempts; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, time.Duration(attempt)*1500*time.Millisecond); err != nil {
				return nil, err
			}
		}

		for _, path := range paths {
			status, respBody, err := c.do(ctx, http.MethodGet, path, nil)
			if err != nil {
				lastErr = err
				continue
			}
			if status == http.StatusNotFound {
				continue
			}
			if status >= 400 {
				lastErr = fmt.Errorf("status endpoint returned %d: %s", status, truncate(string(respBody), 512))
				continue
			}

			var js ports.JobSet
			if err := json.Unmarshal(respBody, &js); err != nil {
				return nil, fmt.Errorf("failed to parse job set response: %w", err)
			}
			if js.ID == "" {
				js.ID = jobSetID
			}
			return &js, nil
		}
	}

	return nil, fmt.Errorf("all status paths failed for job set %s: %w", jobSetID, lastErr)
}

// PollUntilTerminal วน poll ทุก interval จนกว่า job แรกจะ completed/failed
// หน่วงก่อนเช็คครั้งแรกเสมอ เพราะ submit เสร็จใหม่ๆ job set ยังไม่พร้อม
func (c *Client) PollUntilTerminal(ctx context.Context, jobSetID string, interval time.Duration) (*ports.JobSet, error) {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	for {
		if err := sleepCtx(ctx, interval); err != nil {
			return nil, err
		}

		js, err := c.GetJobSet(ctx, jobSetID)
		if err != nil {
			return nil, err
		}

		if len(js.Jobs) > 0 && js.Jobs[0].IsTerminal() {
			logger.InfoContext(ctx, "Higgsfield job set reached terminal state",
				"job_set_id", jobSetID, "status", js.Jobs[0].Status)
			return js, nil
		}

		logger.DebugContext(ctx, "Higgsfield job set still running",
			"job_set_id", jobSetID, "status", string(js.AggregateStatus()))
	}
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("hf-api-key", c.apiKey)
	req.Header.Set("hf-secret", c.apiSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, respBody, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
