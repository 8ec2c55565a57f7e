package higgsfield

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"storyreel/domain/ports"
	"storyreel/domain/services"
)

func newTestClient(serverURL string) *Client {
	return NewClient(ClientConfig{
		BaseURL:   serverURL,
		APIKey:    "test-key",
		APISecret: "test-secret",
		Timeout:   10 * time.Second,
	}).(*Client)
}

func TestSubmitTextToVideo(t *testing.T) {
	var gotPath string
	var gotPayload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.Header.Get("hf-api-key") != "test-key" || r.Header.Get("hf-secret") != "test-secret" {
			t.Errorf("missing auth headers")
		}
		json.NewDecoder(r.Body).Decode(&gotPayload)
		json.NewEncoder(w).Encode(map[string]string{"id": "js-123"})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	id, err := client.Submit(context.Background(), ports.SubmitParams{
		Prompt:        "a cat walks in",
		Model:         "minimax-t2v",
		Duration:      10,
		Resolution:    "768",
		AspectRatio:   "16:9",
		EnhancePrompt: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "js-123" {
		t.Errorf("expected job set id js-123, got %q", id)
	}
	if gotPath != "/generate/minimax-t2v" {
		t.Errorf("expected /generate/minimax-t2v, got %q", gotPath)
	}

	params, _ := gotPayload["params"].(map[string]any)
	if params == nil {
		t.Fatalf("payload missing params wrapper: %v", gotPayload)
	}
	// ต้องส่ง optimizer ทั้งสองสะกด
	if params["enable_prompt_optimizier"] != true || params["enable_prompt_optimizer"] != true {
		t.Errorf("missing optimizer flags: %v", params)
	}
	if params["aspect_ratio"] != "16:9" {
		t.Errorf("missing aspect_ratio: %v", params)
	}
	if _, has := params["input_image"]; has {
		t.Errorf("text-to-video must not carry input_image")
	}
}

func TestSubmitImageToVideo(t *testing.T) {
	var gotPath string
	var gotPayload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotPayload)
		// บาง deployment ตอบ job_set_id แทน id
		json.NewEncoder(w).Encode(map[string]string{"job_set_id": "js-456"})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	id, err := client.Submit(context.Background(), ports.SubmitParams{
		Prompt:        "continue the story",
		Duration:      10,
		Resolution:    "768",
		InputImageURL: "https://cdn.example.com/frame.jpg",
		EnhancePrompt: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "js-456" {
		t.Errorf("expected job set id js-456, got %q", id)
	}
	if gotPath != "/v1/image2video/minimax" {
		t.Errorf("expected /v1/image2video/minimax, got %q", gotPath)
	}

	params, _ := gotPayload["params"].(map[string]any)
	img, _ := params["input_image"].(map[string]any)
	if img == nil || img["type"] != "image_url" || img["image_url"] != "https://cdn.example.com/frame.jpg" {
		t.Errorf("unexpected input_image: %v", params["input_image"])
	}
	if params["enhance_prompt"] != true {
		t.Errorf("missing enhance_prompt: %v", params)
	}
}

func TestSubmitRetriesServerErrors(t *testing.T) {
	if testing.Short() {
		t.Skip("retry backoff sleeps several seconds")
	}

	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "js-retry"})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	id, err := client.Submit(context.Background(), ports.SubmitParams{
		Prompt: "a cat", Model: "minimax-t2v", Duration: 10, Resolution: "768",
	})
	if err != nil {
		t.Fatalf("unexpected error after retries: %v", err)
	}
	if id != "js-retry" {
		t.Errorf("expected js-retry, got %q", id)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}

func TestSubmitDoesNotRetryClientErrors(t *testing.T) {
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Submit(context.Background(), ports.SubmitParams{
		Prompt: "a cat", Model: "minimax-t2v", Duration: 10, Resolution: "768",
	})
	if err == nil {
		t.Fatal("expected error for 422 response")
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("422 must not retry, got %d attempts", calls)
	}

	// error ต้องพก HTTP status กลับมาด้วย
	var se *services.SubmitError
	if !errors.As(err, &se) {
		t.Fatalf("expected *services.SubmitError, got %T: %v", err, err)
	}
	if se.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("expected status code 422, got %d", se.StatusCode)
	}
}

func TestGetJobSetPathFallback(t *testing.T) {
	// /v1 path ไม่มี → ต้อง fallback ไป path ไม่มี prefix
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/job-sets/js-1":
			w.WriteHeader(http.StatusNotFound)
		case "/job-sets/js-1":
			json.NewEncoder(w).Encode(map[string]any{
				"id": "js-1",
				"jobs": []map[string]any{
					{"id": "j1", "status": "completed", "results": map[string]any{
						"raw": map[string]string{"url": "https://cdn/v.mp4"},
					}},
				},
			})
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	js, err := client.GetJobSet(context.Background(), "js-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if js.ID != "js-1" || len(js.Jobs) != 1 || js.Jobs[0].Status != "completed" {
		t.Errorf("unexpected job set: %+v", js)
	}
	if js.FirstResultURL() != "https://cdn/v.mp4" {
		t.Errorf("unexpected result url: %q", js.FirstResultURL())
	}
}

func TestPollUntilTerminal(t *testing.T) {
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		status := "processing"
		if n >= 2 {
			status = "completed"
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":   "js-poll",
			"jobs": []map[string]any{{"id": "j1", "status": status}},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	js, err := client.PollUntilTerminal(context.Background(), "js-poll", 10*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if js.Jobs[0].Status != "completed" {
		t.Errorf("expected completed, got %q", js.Jobs[0].Status)
	}
	if atomic.LoadInt32(&calls) < 2 {
		t.Errorf("expected at least 2 polls, got %d", calls)
	}
}

func TestPollUntilTerminalRespectsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id":   "js-never",
			"jobs": []map[string]any{{"id": "j1", "status": "processing"}},
		})
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := newTestClient(server.URL)
	_, err := client.PollUntilTerminal(ctx, "js-never", 10*time.Millisecond)
	if err == nil {
		t.Fatal("expected context deadline error")
	}
}
