package serviceimpl

import (
	"net/http"
	"testing"
)

func TestEvaluatePreflight(t *testing.T) {
	tests := []struct {
		name          string
		url           string
		status        int
		contentType   string
		contentLength int64
		wantOK        bool
	}{
		{"video content type, big file", "https://cdn.example.com/v/abc", 200, "video/mp4", 5_000_000, true},
		{"mp4 suffix without content type", "https://cdn.example.com/v/abc.mp4", 200, "application/octet-stream", 5_000_000, true},
		{"partial content accepts unknown size", "https://cdn.example.com/v/abc.mp4", http.StatusPartialContent, "video/mp4", 1024, true},

		// status >= 400 คือไฟล์ไม่มีหรือเข้าไม่ได้
		{"not found", "https://cdn.example.com/v/abc.mp4", 404, "video/mp4", 5_000_000, false},
		{"forbidden", "https://cdn.example.com/v/abc.mp4", 403, "", 0, false},

		// HTML error page ปลอมตัวเป็น 200
		{"html page", "https://cdn.example.com/v/abc", 200, "text/html; charset=utf-8", 5_000_000, false},

		// ไฟล์เล็กผิดปกติโดยไม่มี range support
		{"tiny body without 206", "https://cdn.example.com/v/abc.mp4", 200, "video/mp4", 512, false},
		{"exactly 1KB without 206", "https://cdn.example.com/v/abc.mp4", 200, "video/mp4", 1024, false},
		{"just over 1KB", "https://cdn.example.com/v/abc.mp4", 200, "video/mp4", 1025, true},

		// case insensitive
		{"uppercase extension", "https://cdn.example.com/v/ABC.MP4", 200, "", 5_000_000, true},
		{"uppercase content type", "https://cdn.example.com/v/abc", 200, "VIDEO/MP4", 5_000_000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := evaluatePreflight(tt.url, tt.status, tt.contentType, tt.contentLength)
			if result.OK != tt.wantOK {
				t.Errorf("\nURL:    %q\nStatus: %d CT: %q CL: %d\nExpected OK=%v, got OK=%v (reason: %s)",
					tt.url, tt.status, tt.contentType, tt.contentLength, tt.wantOK, result.OK, result.Reason)
			}
		})
	}
}
