package dto

import (
	"storyreel/domain/models"
	"storyreel/domain/ports"
)

// ToProjectResponse แปลง model เป็น response แบบย่อ
func ToProjectResponse(p *models.Project) *ProjectResponse {
	if p == nil {
		return nil
	}
	return &ProjectResponse{
		ID:           p.ID,
		Name:         p.Name,
		SegmentCount: len(p.Segments),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToProjectResponses แปลงหลายตัว
func ToProjectResponses(projects []*models.Project) []*ProjectResponse {
	responses := make([]*ProjectResponse, len(projects))
	for i, p := range projects {
		responses[i] = ToProjectResponse(p)
	}
	return responses
}

// ToGenerationResponse แปลง initial generation
func ToGenerationResponse(g *models.InitialGeneration) *GenerationResponse {
	if g == nil {
		return nil
	}
	resp := &GenerationResponse{
		ID:        g.ID,
		ProjectID: g.ProjectID,
		JobID:     g.JobID,
		Prompt:    g.Prompt,
		Status:    string(g.Status),
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
	if g.InitialVideoURL != nil {
		resp.InitialVideoURL = *g.InitialVideoURL
	}
	return resp
}

// ToSegmentResponse แปลง segment
func ToSegmentResponse(s *models.StorySegment) *SegmentResponse {
	if s == nil {
		return nil
	}
	return &SegmentResponse{
		ID:               s.ID,
		ProjectID:        s.ProjectID,
		Position:         s.Position,
		PreviousVideoURL: s.PreviousVideoURL,
		PreviousPrompt:   s.PreviousPrompt,
		UsedPrompt:       s.UsedPrompt,
		NewVideoURL:      s.NewVideoURL,
		CumulativePrompt: s.CumulativePrompt,
		JobSetID:         s.JobSetID,
		FrameImageURL:    s.FrameImageURL,
		Meta:             s.Meta,
		CreatedAt:        s.CreatedAt,
	}
}

// ToSegmentResponses แปลงหลายตัว
func ToSegmentResponses(segments []*models.StorySegment) []*SegmentResponse {
	responses := make([]*SegmentResponse, len(segments))
	for i, s := range segments {
		responses[i] = ToSegmentResponse(s)
	}
	return responses
}

// ToJobSetResponse แปลง job set จาก provider เป็น response
func ToJobSetResponse(js *ports.JobSet) *JobSetResponse {
	if js == nil {
		return nil
	}
	resp := &JobSetResponse{
		JobSetID: js.ID,
		Status:   string(js.AggregateStatus()),
		VideoURL: js.FirstResultURL(),
	}
	for _, j := range js.Jobs {
		jr := JobResultResponse{ID: j.ID, Status: j.Status}
		if j.Results.Raw != nil {
			jr.VideoURL = j.Results.Raw.URL
		} else if j.Results.Min != nil {
			jr.VideoURL = j.Results.Min.URL
		}
		resp.Jobs = append(resp.Jobs, jr)
	}
	return resp
}
