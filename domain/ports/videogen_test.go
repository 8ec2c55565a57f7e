package ports

import "testing"

func TestJobSetAggregateStatus(t *testing.T) {
	tests := []struct {
		name     string
		jobSet   *JobSet
		expected AggregateStatus
	}{
		{"nil job set", nil, AggregateQueued},
		{"empty jobs", &JobSet{ID: "js1"}, AggregateQueued},

		// failed ชนะทุกอย่าง
		{"any failed wins", js("failed", "succeeded"), AggregateFailed},
		{"failed after completed", js("completed", "failed"), AggregateFailed},

		// succeeded ต้องจบครบทุกตัว (completed นับเป็นจบด้วย)
		{"all succeeded", js("succeeded", "succeeded"), AggregateSucceeded},
		{"mixed succeeded and completed", js("succeeded", "completed"), AggregateSucceeded},

		{"any processing", js("succeeded", "processing"), AggregateProcessing},
		{"any running", js("running"), AggregateProcessing},
		{"any queued counts as active", js("succeeded", "queued"), AggregateProcessing},

		// สถานะแปลกๆ จาก provider ถือว่ายังไม่เริ่ม
		{"unknown status", js("succeeded", "initializing"), AggregateQueued},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.jobSet.AggregateStatus()
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func js(statuses ...string) *JobSet {
	set := &JobSet{ID: "js1"}
	for i, s := range statuses {
		set.Jobs = append(set.Jobs, Job{ID: string(rune('a' + i)), Status: s})
	}
	return set
}

func TestJobSetFirstResultURL(t *testing.T) {
	tests := []struct {
		name     string
		jobSet   *JobSet
		expected string
	}{
		{"nil job set", nil, ""},
		{"no results", js("processing"), ""},
		{
			name: "raw preferred over min",
			jobSet: &JobSet{Jobs: []Job{{
				Status: "completed",
				Results: JobResults{
					Raw: &ResultURL{URL: "https://cdn/raw.mp4"},
					Min: &ResultURL{URL: "https://cdn/min.mp4"},
				},
			}}},
			expected: "https://cdn/raw.mp4",
		},
		{
			name: "min used when raw missing",
			jobSet: &JobSet{Jobs: []Job{{
				Status:  "completed",
				Results: JobResults{Min: &ResultURL{URL: "https://cdn/min.mp4"}},
			}}},
			expected: "https://cdn/min.mp4",
		},
		{
			// เอาตามลำดับ sub-job: ตัวแรกที่มี URL ชนะ
			name: "sub-job order",
			jobSet: &JobSet{Jobs: []Job{
				{Status: "processing"},
				{Status: "completed", Results: JobResults{Raw: &ResultURL{URL: "https://cdn/second.mp4"}}},
				{Status: "completed", Results: JobResults{Raw: &ResultURL{URL: "https://cdn/third.mp4"}}},
			}},
			expected: "https://cdn/second.mp4",
		},
		{
			name: "empty raw url falls through to min",
			jobSet: &JobSet{Jobs: []Job{{
				Status: "completed",
				Results: JobResults{
					Raw: &ResultURL{URL: ""},
					Min: &ResultURL{URL: "https://cdn/min.mp4"},
				},
			}}},
			expected: "https://cdn/min.mp4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.jobSet.FirstResultURL()
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestJobIsTerminal(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{"completed", true},
		{"failed", true},
		{"succeeded", false}, // sub-job terminal ใช้ completed เท่านั้น
		{"processing", false},
		{"queued", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			j := Job{Status: tt.status}
			if j.IsTerminal() != tt.expected {
				t.Errorf("IsTerminal(%q): expected %v", tt.status, tt.expected)
			}
		})
	}
}
