package serviceimpl

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"storyreel/domain/dto"
	"storyreel/domain/models"
	"storyreel/domain/ports"
	"storyreel/domain/services"
	"storyreel/pkg/config"
)

// --- fakes ---

type fakeProjectRepo struct {
	projects map[uuid.UUID]*models.Project
}

func (f *fakeProjectRepo) Create(ctx context.Context, p *models.Project) error { return nil }
func (f *fakeProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	if p, ok := f.projects[id]; ok {
		return p, nil
	}
	return nil, services.ErrProjectNotFound
}
func (f *fakeProjectRepo) GetByIDWithRelations(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return f.GetByID(ctx, id)
}
func (f *fakeProjectRepo) List(ctx context.Context, offset, limit int) ([]*models.Project, int64, error) {
	return nil, 0, nil
}
func (f *fakeProjectRepo) Update(ctx context.Context, p *models.Project) error { return nil }
func (f *fakeProjectRepo) Delete(ctx context.Context, id uuid.UUID) error      { return nil }

type fakeGenRepo struct {
	gens map[uuid.UUID]*models.InitialGeneration // key = project id
}

func (f *fakeGenRepo) Create(ctx context.Context, g *models.InitialGeneration) error { return nil }
func (f *fakeGenRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.InitialGeneration, error) {
	return nil, services.ErrGenerationNotFound
}
func (f *fakeGenRepo) GetByProjectID(ctx context.Context, projectID uuid.UUID) (*models.InitialGeneration, error) {
	if g, ok := f.gens[projectID]; ok {
		return g, nil
	}
	return nil, services.ErrGenerationNotFound
}
func (f *fakeGenRepo) Update(ctx context.Context, g *models.InitialGeneration) error { return nil }
func (f *fakeGenRepo) ListNonTerminal(ctx context.Context, limit int) ([]*models.InitialGeneration, error) {
	return nil, nil
}

type fakeSegmentRepo struct {
	segments map[uuid.UUID]*models.StorySegment
}

func newFakeSegmentRepo() *fakeSegmentRepo {
	return &fakeSegmentRepo{segments: make(map[uuid.UUID]*models.StorySegment)}
}

func (f *fakeSegmentRepo) AppendToTail(ctx context.Context, segment *models.StorySegment) error {
	max := -1
	for _, s := range f.segments {
		if s.ProjectID == segment.ProjectID && s.Position > max {
			max = s.Position
		}
	}
	segment.ID = uuid.New()
	segment.Position = max + 1
	f.segments[segment.ID] = segment
	return nil
}
func (f *fakeSegmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.StorySegment, error) {
	if s, ok := f.segments[id]; ok {
		return s, nil
	}
	return nil, services.ErrSegmentNotFound
}
func (f *fakeSegmentRepo) GetTail(ctx context.Context, projectID uuid.UUID) (*models.StorySegment, error) {
	var tail *models.StorySegment
	for _, s := range f.segments {
		if s.ProjectID != projectID {
			continue
		}
		if tail == nil || s.Position > tail.Position {
			tail = s
		}
	}
	return tail, nil
}
func (f *fakeSegmentRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.StorySegment, error) {
	var out []*models.StorySegment
	for _, s := range f.segments {
		if s.ProjectID == projectID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}
func (f *fakeSegmentRepo) CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	count, _ := f.ListByProject(ctx, projectID)
	return int64(len(count)), nil
}
func (f *fakeSegmentRepo) DeleteTail(ctx context.Context, projectID, segmentID uuid.UUID) error {
	// เงื่อนไข tail เช็คในตัวเหมือน conditional DELETE ของจริง
	s, ok := f.segments[segmentID]
	if !ok || s.ProjectID != projectID {
		return services.ErrNotTail
	}
	tail, _ := f.GetTail(ctx, projectID)
	if tail == nil || tail.ID != segmentID {
		return services.ErrNotTail
	}
	delete(f.segments, segmentID)
	return nil
}

type fakeLock struct {
	held bool
}

func (f *fakeLock) Acquire(ctx context.Context, projectID uuid.UUID, ttl time.Duration) (func(), error) {
	if f.held {
		return nil, ports.ErrLockHeld
	}
	return func() {}, nil
}

// --- helpers ---

type storyFixture struct {
	projectID uuid.UUID
	projects  *fakeProjectRepo
	gens      *fakeGenRepo
	segments  *fakeSegmentRepo
	lock      *fakeLock
}

func newStoryFixture() *storyFixture {
	projectID := uuid.New()
	return &storyFixture{
		projectID: projectID,
		projects: &fakeProjectRepo{projects: map[uuid.UUID]*models.Project{
			projectID: {ID: projectID, Name: "Test Story"},
		}},
		gens:     &fakeGenRepo{gens: make(map[uuid.UUID]*models.InitialGeneration)},
		segments: newFakeSegmentRepo(),
		lock:     &fakeLock{},
	}
}

func (fx *storyFixture) service() services.StoryService {
	return NewStoryService(
		fx.projects, fx.gens, fx.segments,
		&PipelineServiceImpl{}, nil, nil,
		fx.lock, nil,
		config.PipelineConfig{LockTTL: time.Minute},
	)
}

// --- tests ---

func TestContinueRequiresBaseState(t *testing.T) {
	fx := newStoryFixture()
	// generation มีแต่ยังไม่มี video
	fx.gens.gens[fx.projectID] = &models.InitialGeneration{
		ProjectID: fx.projectID,
		Prompt:    "a cat walks in",
		Status:    models.GenerationStatusQueued,
	}

	_, err := fx.service().Continue(context.Background(), fx.projectID, &dto.ContinueStoryRequest{NextPrompt: "it rains"})
	if !errors.Is(err, services.ErrNoBaseState) {
		t.Errorf("expected ErrNoBaseState, got %v", err)
	}
}

func TestContinueUnknownProject(t *testing.T) {
	fx := newStoryFixture()

	_, err := fx.service().Continue(context.Background(), uuid.New(), &dto.ContinueStoryRequest{NextPrompt: "it rains"})
	if !errors.Is(err, services.ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestContinueLockHeld(t *testing.T) {
	fx := newStoryFixture()
	fx.lock.held = true

	_, err := fx.service().Continue(context.Background(), fx.projectID, &dto.ContinueStoryRequest{NextPrompt: "it rains"})
	if !errors.Is(err, ports.ErrLockHeld) {
		t.Errorf("expected ErrLockHeld, got %v", err)
	}
}

func TestDeleteLast(t *testing.T) {
	fx := newStoryFixture()
	svc := fx.service()
	ctx := context.Background()

	first := &models.StorySegment{ProjectID: fx.projectID, NewVideoURL: "https://cdn/s1.mp4"}
	second := &models.StorySegment{ProjectID: fx.projectID, NewVideoURL: "https://cdn/s2.mp4"}
	fx.segments.AppendToTail(ctx, first)
	fx.segments.AppendToTail(ctx, second)

	// ลบกลางเรื่องไม่ได้
	if err := svc.DeleteLast(ctx, fx.projectID, first.ID); !errors.Is(err, services.ErrNotTail) {
		t.Errorf("deleting non-tail: expected ErrNotTail, got %v", err)
	}

	// segment ของ project อื่นมองไม่เห็น
	otherProject := uuid.New()
	if err := svc.DeleteLast(ctx, otherProject, second.ID); !errors.Is(err, services.ErrSegmentNotFound) {
		t.Errorf("cross-project delete: expected ErrSegmentNotFound, got %v", err)
	}

	// ลบ tail ได้ แล้วตัวก่อนหน้ากลายเป็น tail ใหม่
	if err := svc.DeleteLast(ctx, fx.projectID, second.ID); err != nil {
		t.Fatalf("deleting tail: unexpected error %v", err)
	}
	tail, _ := fx.segments.GetTail(ctx, fx.projectID)
	if tail == nil || tail.ID != first.ID {
		t.Errorf("expected first segment to become tail, got %+v", tail)
	}

	// ลบซ้ำได้เรื่อยๆ จนหมด
	if err := svc.DeleteLast(ctx, fx.projectID, first.ID); err != nil {
		t.Fatalf("deleting last remaining segment: unexpected error %v", err)
	}

	// ไม่เหลืออะไรให้ลบ
	if err := svc.DeleteLast(ctx, fx.projectID, first.ID); !errors.Is(err, services.ErrSegmentNotFound) {
		t.Errorf("expected ErrSegmentNotFound on empty ledger, got %v", err)
	}
}

func TestDeleteLastLockHeld(t *testing.T) {
	fx := newStoryFixture()
	fx.lock.held = true

	err := fx.service().DeleteLast(context.Background(), fx.projectID, uuid.New())
	if !errors.Is(err, ports.ErrLockHeld) {
		t.Errorf("expected ErrLockHeld, got %v", err)
	}
}

func TestAssembleNothingToAssemble(t *testing.T) {
	fx := newStoryFixture()
	// generation ยังไม่มี video และไม่มี segment
	fx.gens.gens[fx.projectID] = &models.InitialGeneration{
		ProjectID: fx.projectID,
		Prompt:    "a cat walks in",
		Status:    models.GenerationStatusQueued,
	}

	_, err := fx.service().Assemble(context.Background(), fx.projectID)
	if !errors.Is(err, services.ErrNoSegmentsToAssemble) {
		t.Errorf("expected ErrNoSegmentsToAssemble, got %v", err)
	}
}

func TestListSegmentsOrder(t *testing.T) {
	fx := newStoryFixture()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		fx.segments.AppendToTail(ctx, &models.StorySegment{ProjectID: fx.projectID})
	}

	list, err := fx.service().ListSegments(ctx, fx.projectID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(list))
	}
	// position ต่อเนื่องจาก 0
	for i, seg := range list {
		if seg.Position != i {
			t.Errorf("segment %d: expected position %d, got %d", i, i, seg.Position)
		}
	}
}
