package redis

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"storyreel/domain/ports"
	"storyreel/pkg/logger"
)

const lockKeyPrefix = "storyreel:lock:project:"

// ProjectLock implements ProjectLockPort ด้วย Redis SetNX
// ถ้าไม่มี Redis ใช้ in-process mutex แทน (ครอบคลุมแค่ instance เดียว)
type ProjectLock struct {
	client *Client // nil = in-process mode

	mu   sync.Mutex
	held map[uuid.UUID]struct{}
}

func NewProjectLock(client *Client) ports.ProjectLockPort {
	if client == nil {
		logger.Warn("Redis unavailable, project locks are per-instance only")
	}
	return &ProjectLock{
		client: client,
		held:   make(map[uuid.UUID]struct{}),
	}
}

// Acquire ขอ lock แบบ non-blocking คืน ErrLockHeld ถ้ามีคนถืออยู่
func (l *ProjectLock) Acquire(ctx context.Context, projectID uuid.UUID, ttl time.Duration) (func(), error) {
	if l.client == nil {
		return l.acquireLocal(projectID)
	}

	key := lockKeyPrefix + projectID.String()
	ok, err := l.client.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), ttl)
	if err != nil {
		// Redis ล่มกลางทาง ยอม degrade เป็น local lock ดีกว่าปฏิเสธงาน
		logger.WarnContext(ctx, "Redis lock failed, falling back to local lock",
			"project_id", projectID, "error", err)
		return l.acquireLocal(projectID)
	}
	if !ok {
		return nil, ports.ErrLockHeld
	}

	release := func() {
		// ใช้ context ใหม่ เพราะ release ต้องทำแม้ request ctx ถูก cancel
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := l.client.Del(cleanupCtx, key); err != nil {
			logger.Warn("Failed to release project lock", "key", key, "error", err)
		}
	}
	return release, nil
}

func (l *ProjectLock) acquireLocal(projectID uuid.UUID) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, taken := l.held[projectID]; taken {
		return nil, ports.ErrLockHeld
	}
	l.held[projectID] = struct{}{}

	release := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, projectID)
	}
	return release, nil
}
