package postgres

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"storyreel/domain/models"
)

// dryRunDB เปิด gorm แบบ DryRun เพื่อดู SQL ที่ generate จริงโดยไม่ต้องต่อ DB
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=storyreel dbname=storyreel",
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open dry-run db: %v", err)
	}
	return db
}

// postgres ไม่ยอมให้ FOR UPDATE อยู่กับ aggregate
// query หา tail ต้อง lock แถวจริง (ORDER BY position DESC LIMIT 1) ไม่ใช่ MAX(position)
func TestTailLockQuerySQL(t *testing.T) {
	db := dryRunDB(t)
	repo := &SegmentRepositoryImpl{db: db}

	var tail models.StorySegment
	result := repo.tailForUpdate(db, uuid.New(), &tail)
	if result.Error != nil {
		t.Fatalf("unexpected error building tail query: %v", result.Error)
	}

	sql := result.Statement.SQL.String()
	if !strings.Contains(sql, "FOR UPDATE") {
		t.Errorf("tail query must lock the row, got: %s", sql)
	}
	if !strings.Contains(sql, "ORDER BY position DESC") {
		t.Errorf("tail query must order by position descending, got: %s", sql)
	}
	if !strings.Contains(sql, "LIMIT") {
		t.Errorf("tail query must fetch a single row, got: %s", sql)
	}
	if strings.Contains(strings.ToUpper(sql), "MAX(") {
		t.Errorf("tail query must not aggregate under a locking clause, got: %s", sql)
	}
}

// DELETE ของ tail ต้องมีเงื่อนไข position = (SELECT MAX...) ในตัว
// จะได้ไม่ลบตัวกลางเรื่องแม้เช็คก่อนหน้าจะ stale ไปแล้ว
func TestDeleteTailSQL(t *testing.T) {
	db := dryRunDB(t)
	repo := &SegmentRepositoryImpl{db: db}

	result := repo.deleteTail(db, uuid.New(), uuid.New())
	if result.Error != nil {
		t.Fatalf("unexpected error building delete statement: %v", result.Error)
	}

	sql := result.Statement.SQL.String()
	if !strings.HasPrefix(sql, "DELETE") {
		t.Fatalf("expected a DELETE statement, got: %s", sql)
	}
	if !strings.Contains(strings.ToUpper(sql), "MAX(POSITION)") {
		t.Errorf("delete must guard on the current max position, got: %s", sql)
	}
	if !strings.Contains(sql, "project_id") || !strings.Contains(sql, "id = ") {
		t.Errorf("delete must scope to the segment and its project, got: %s", sql)
	}
}
