package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"storyreel/domain/ports"
)

func TestProjectLockLocalMode(t *testing.T) {
	lock := NewProjectLock(nil) // ไม่มี Redis → in-process
	ctx := context.Background()
	projectID := uuid.New()

	release, err := lock.Acquire(ctx, projectID, time.Minute)
	if err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}

	// ถือซ้ำไม่ได้
	if _, err := lock.Acquire(ctx, projectID, time.Minute); !errors.Is(err, ports.ErrLockHeld) {
		t.Errorf("second acquire: expected ErrLockHeld, got %v", err)
	}

	// project อื่นไม่เกี่ยวกัน
	otherRelease, err := lock.Acquire(ctx, uuid.New(), time.Minute)
	if err != nil {
		t.Errorf("different project must acquire independently: %v", err)
	} else {
		otherRelease()
	}

	// ปล่อยแล้วถือใหม่ได้
	release()
	release2, err := lock.Acquire(ctx, projectID, time.Minute)
	if err != nil {
		t.Fatalf("acquire after release failed: %v", err)
	}
	release2()
}
