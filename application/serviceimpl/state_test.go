package serviceimpl

import (
	"testing"

	"storyreel/domain/models"
)

func TestComputeCurrentState(t *testing.T) {
	videoURL := "https://cdn.example.com/initial.mp4"

	tests := []struct {
		name     string
		gen      *models.InitialGeneration
		tail     *models.StorySegment
		expected storyState
	}{
		{
			name:     "nothing yet",
			expected: storyState{},
		},
		{
			// segment ท้ายสุดชนะเสมอ
			name: "tail segment wins over generation",
			gen: &models.InitialGeneration{
				Prompt:          "a cat walks in",
				InitialVideoURL: &videoURL,
			},
			tail: &models.StorySegment{
				CumulativePrompt: "a cat walks in. it rains",
				NewVideoURL:      "https://cdn.example.com/seg2.mp4",
			},
			expected: storyState{
				Prompt:   "a cat walks in. it rains",
				VideoURL: "https://cdn.example.com/seg2.mp4",
			},
		},
		{
			name: "initial video only",
			gen: &models.InitialGeneration{
				Prompt:          "a cat walks in",
				InitialVideoURL: &videoURL,
			},
			expected: storyState{
				Prompt:   "a cat walks in",
				VideoURL: videoURL,
			},
		},
		{
			// generation ยังไม่เสร็จ → มี prompt แต่ไม่มี video ให้ต่อ
			name: "generation pending",
			gen: &models.InitialGeneration{
				Prompt: "a cat walks in",
				Status: models.GenerationStatusQueued,
			},
			expected: storyState{Prompt: "a cat walks in"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := computeCurrentState(tt.gen, tt.tail)
			if result != tt.expected {
				t.Errorf("\nExpected: %+v\nGot:      %+v", tt.expected, result)
			}
		})
	}
}
