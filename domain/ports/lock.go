package ports

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrLockHeld มีงานอื่นถือ lock ของ project นี้อยู่
var ErrLockHeld = errors.New("project lock is held by another operation")

// ProjectLockPort mutual exclusion ราย project
// กัน continuation สองงานแข่งกัน append segment พร้อมกัน
type ProjectLockPort interface {
	// Acquire ขอ lock ของ project คืน release function
	// คืน ErrLockHeld ทันทีถ้ามีคนถืออยู่ (ไม่รอ)
	Acquire(ctx context.Context, projectID uuid.UUID, ttl time.Duration) (func(), error)
}
