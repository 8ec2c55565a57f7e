package serviceimpl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"storyreel/pkg/logger"
)

// scratchSpace scratch directory แยกราย request
// กันไฟล์ชั่วคราวของ request ที่รันพร้อมกันชนกัน
type scratchSpace struct {
	root string
	dir  string
}

// newScratchSpace สร้าง directory ใหม่ใต้ workDir ชื่อ unique ต่อ request
func newScratchSpace(workDir string) (*scratchSpace, error) {
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create work dir: %w", err)
	}

	dir := filepath.Join(workDir, fmt.Sprintf("job_%s", uuid.New().String()))
	if err := os.Mkdir(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scratch dir: %w", err)
	}
	return &scratchSpace{root: workDir, dir: dir}, nil
}

// Path สร้าง path ของไฟล์ใน scratch dir
func (s *scratchSpace) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Cleanup ลบ scratch dir ทั้งก้อน เรียกใน defer เสมอไม่ว่า pipeline จะจบแบบไหน
func (s *scratchSpace) Cleanup() {
	if err := os.RemoveAll(s.dir); err != nil {
		logger.Warn("Failed to remove scratch dir", "dir", s.dir, "error", err)
	}
}

// CleanupStaleScratch ลบ scratch dir ที่ค้างนานเกิน maxAge
// งานที่ crash กลางทางทิ้ง dir ไว้ background job นี้เก็บกวาด
func CleanupStaleScratch(ctx context.Context, workDir string, maxAge time.Duration) error {
	entries, err := os.ReadDir(workDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(workDir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			logger.WarnContext(ctx, "Failed to remove stale scratch dir", "dir", path, "error", err)
			continue
		}
		removed++
	}

	if removed > 0 {
		logger.InfoContext(ctx, "Stale scratch dirs removed", "count", removed, "work_dir", workDir)
	}
	return nil
}
