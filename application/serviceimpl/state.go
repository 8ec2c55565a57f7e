package serviceimpl

import (
	"storyreel/domain/models"
)

// storyState base state ปัจจุบันของ project: prompt สะสม + video ปลายเรื่อง
type storyState struct {
	Prompt   string
	VideoURL string
}

// computeCurrentState หา state จาก segment ท้ายสุดก่อน
// ไม่มี segment ค่อย fallback ไป initial generation ที่มี video แล้ว
// คืน zero state ถ้า project ยังไม่มีอะไรให้ต่อ
func computeCurrentState(gen *models.InitialGeneration, tail *models.StorySegment) storyState {
	if tail != nil {
		return storyState{
			Prompt:   tail.CumulativePrompt,
			VideoURL: tail.NewVideoURL,
		}
	}
	if gen != nil && gen.HasVideo() {
		return storyState{
			Prompt:   gen.Prompt,
			VideoURL: *gen.InitialVideoURL,
		}
	}
	if gen != nil {
		// ยังไม่มี video แต่ prompt มีแล้ว ใช้แสดงผลได้
		return storyState{Prompt: gen.Prompt}
	}
	return storyState{}
}
