package serviceimpl

import (
	"fmt"
	"strings"
)

// ComposeCumulativePrompt ต่อ prompt ใหม่เข้ากับ prompt สะสม
// ถ้าอันเก่าจบด้วยเครื่องหมายจบประโยคแล้ว คั่นด้วย space เฉยๆ
// ไม่งั้นคั่นด้วย ". " ให้เป็นประโยคใหม่
func ComposeCumulativePrompt(previous, next string) string {
	previous = strings.TrimSpace(previous)
	next = strings.TrimSpace(next)

	if previous == "" {
		return next
	}
	if next == "" {
		return previous
	}

	if endsWithSentenceMark(previous) {
		return previous + " " + next
	}
	return previous + ". " + next
}

func endsWithSentenceMark(s string) bool {
	runes := []rune(s)
	last := runes[len(runes)-1]
	switch last {
	case '.', '!', '?', '…':
		return true
	}
	return false
}

// ComposeGenerationPrompt สร้าง prompt ที่ส่งให้ provider ตอนต่อเรื่อง
// บอก model ว่าส่วนแรกคืออะไร แล้วให้ generate ส่วนใหม่
func ComposeGenerationPrompt(previousPrompt, nextPrompt string) string {
	return fmt.Sprintf("In first part of video was %s, generate new part with %s",
		previousPrompt, nextPrompt)
}
