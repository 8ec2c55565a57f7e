package serviceimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"storyreel/domain/dto"
	"storyreel/domain/ports"
	"storyreel/domain/services"
	"storyreel/pkg/logger"
)

const (
	defaultSuggestionCount = 3
	suggestionCharLimit    = 20
)

type SuggestionServiceImpl struct {
	chat ports.ChatPort
}

func NewSuggestionService(chat ports.ChatPort) services.SuggestionService {
	return &SuggestionServiceImpl{chat: chat}
}

// Suggest ขอ continuation สั้นๆ จาก LLM หนึ่งรอบ
// คืนเฉพาะสิ่งที่ model ตอบจริงหลัง parse + ตัดความยาว ไม่แต่งเพิ่มเอง
func (s *SuggestionServiceImpl) Suggest(ctx context.Context, req *dto.SuggestRequest) (*dto.SuggestResponse, error) {
	count := req.Count
	if count <= 0 {
		count = defaultSuggestionCount
	}

	system := fmt.Sprintf(
		"You are a concise screenwriter assistant. "+
			"Output MUST be a pure JSON array (no markdown, no prefix/suffix). "+
			"Return exactly %d short ON-TOPIC continuations in English. "+
			"Each string must be <= %d characters. "+
			"No numbering, no quotes, no trailing punctuation, no explanations.",
		count, suggestionCharLimit)

	user := fmt.Sprintf(
		"Story:\n%s\n\nRespond with a JSON array of exactly %d strings. "+
			`Example: ["First option", "Second option", "Third option"]`,
		req.Prompt, count)

	content, err := s.chat.Complete(ctx, ports.ChatRequest{
		System:      system,
		User:        user,
		MaxTokens:   128,
		Temperature: 0.8,
	})
	if err != nil {
		return nil, err
	}

	items := extractStringArray(content)
	cleaned := cleanupAndShorten(items, suggestionCharLimit)
	if len(cleaned) > count {
		cleaned = cleaned[:count]
	}

	logger.DebugContext(ctx, "Suggestions generated", "count", len(cleaned))

	return &dto.SuggestResponse{Suggestions: cleaned}, nil
}

var (
	jsonArrayPattern = regexp.MustCompile(`\[[\s\S]*\]`)
	bulletPattern    = regexp.MustCompile(`^[\-\*\x{2022}]\s*`)
	sentenceEndSplit = regexp.MustCompile(`[.!?\n]`)
)

// extractStringArray ดึง array of strings จากข้อความที่ model ตอบ
// ลองตามลำดับ: parse ตรงๆ → หา [...] ก้อนแรก → แตกเป็นบรรทัด (ตัด bullet)
func extractStringArray(text string) []string {
	text = strings.TrimSpace(text)

	if items, ok := parseJSONStrings(text); ok {
		return items
	}

	if m := jsonArrayPattern.FindString(text); m != "" {
		if items, ok := parseJSONStrings(m); ok {
			return items
		}
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = bulletPattern.ReplaceAllString(line, "")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func parseJSONStrings(text string) ([]string, bool) {
	var raw []any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, false
	}
	items := make([]string, 0, len(raw))
	for _, v := range raw {
		items = append(items, fmt.Sprint(v))
	}
	return items, true
}

// cleanupAndShorten เอาเฉพาะประโยคแรก ตัด quote/dash รอบๆ จำกัดความยาว
// และตัดตัวซ้ำ
func cleanupAndShorten(items []string, limit int) []string {
	var cleaned []string
	seen := make(map[string]struct{})

	for _, v := range items {
		first := strings.TrimSpace(strings.SplitN(v, "\n", 2)[0])
		first = strings.TrimSpace(sentenceEndSplit.Split(first, 2)[0])
		first = strings.Trim(first, ` "'—-`)

		runes := []rune(first)
		if len(runes) > limit {
			first = string(runes[:limit])
		}
		first = strings.TrimSpace(first)

		if first == "" {
			continue
		}
		if _, dup := seen[first]; dup {
			continue
		}
		seen[first] = struct{}{}
		cleaned = append(cleaned, first)
	}
	return cleaned
}
