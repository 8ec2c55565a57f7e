package storage

import (
	"regexp"
	"strings"
	"testing"
)

func TestObjectKey(t *testing.T) {
	// รูปแบบ: prefix/20060102T150405_basename
	keyPattern := regexp.MustCompile(`^frames/\d{8}T\d{6}_last_frame\.jpg$`)

	key := ObjectKey("frames", "/tmp/work/job_abc/last_frame.jpg")
	if !keyPattern.MatchString(key) {
		t.Errorf("unexpected key format: %q", key)
	}

	t.Run("trims prefix slashes", func(t *testing.T) {
		key := ObjectKey("/assemblies/", "/tmp/out.mp4")
		if !strings.HasPrefix(key, "assemblies/") {
			t.Errorf("expected assemblies/ prefix, got %q", key)
		}
		if strings.Contains(key, "//") {
			t.Errorf("double slash in key: %q", key)
		}
	})

	t.Run("empty prefix", func(t *testing.T) {
		key := ObjectKey("", "/tmp/out.mp4")
		if strings.HasPrefix(key, "/") {
			t.Errorf("key must not start with slash: %q", key)
		}
		if !strings.HasSuffix(key, "_out.mp4") {
			t.Errorf("expected basename suffix, got %q", key)
		}
	})
}

func TestContentTypeForFile(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"video.mp4", "video/mp4"},
		{"video.MP4", "video/mp4"},
		{"clip.webm", "video/webm"},
		{"clip.mov", "video/quicktime"},
		{"frame.jpg", "image/jpeg"},
		{"frame.jpeg", "image/jpeg"},
		{"frame.png", "image/png"},
		{"frame.webp", "image/webp"},
		{"data.bin", "application/octet-stream"},
		{"noext", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			result := ContentTypeForFile(tt.path)
			if result != tt.expected {
				t.Errorf("ContentTypeForFile(%q): expected %q, got %q", tt.path, tt.expected, result)
			}
		})
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/frames/a.jpg", "frames/a.jpg"},
		{`frames\a.jpg`, "frames/a.jpg"},
		{"frames/a.jpg", "frames/a.jpg"},
	}

	for _, tt := range tests {
		if got := normalizeKey(tt.input); got != tt.expected {
			t.Errorf("normalizeKey(%q): expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}
