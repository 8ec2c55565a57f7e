package mediatool

import (
	"math"
	"testing"
)

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"30000/1001", 30}, // NTSC
		{"24000/1001", 24},
		{"25/1", 25},
		{"30/1", 30},
		{"60/1", 60},
		{"24", 24}, // ไม่มีตัวหาร
		{"0/0", 0},
		{"abc", 0},
		{"", 0},
		{"-30/1", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseFrameRate(tt.input)
			if result != tt.expected {
				t.Errorf("ParseFrameRate(%q): expected %d, got %d", tt.input, tt.expected, result)
			}
		})
	}
}

func TestLastFrameTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		expected float64
	}{
		{"normal clip", 12.0, 11.9},
		{"ten seconds", 10.0, 9.9},
		{"just over threshold", 0.2, 0.1},
		// clip สั้นมากถอยแค่ 0.05s
		{"very short clip", 0.08, 0.03},
		// ไม่มีทางติดลบ
		{"near zero", 0.02, 0},
		{"zero duration", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := LastFrameTimestamp(tt.duration)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("LastFrameTimestamp(%v): expected %v, got %v", tt.duration, tt.expected, result)
			}
		})
	}
}
