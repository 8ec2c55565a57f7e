package ports

import (
	"context"
	"io"
)

// StoragePort interface สำหรับ object storage (Port/Adapter pattern)
// ทำให้เปลี่ยน provider ได้ง่าย (MinIO, DO Spaces, R2)
type StoragePort interface {
	// UploadFile อัปโหลด stream ไปยัง storage ตรงๆ ที่ key ที่กำหนด
	// size = -1 ให้ provider อ่านจนจบ (streaming)
	// return: URL สาธารณะของ object
	UploadFile(ctx context.Context, file io.Reader, key string, contentType string, size int64) (string, error)

	// UploadLocalFile อัปโหลดไฟล์จาก disk
	// key ถูก generate เป็น {prefix}/{UTC timestamp}_{basename} กันชนกัน
	// ensure bucket + public-read policy ก่อนทุกครั้ง (idempotent)
	UploadLocalFile(ctx context.Context, localPath string, prefix string) (string, error)

	// DeleteFile ลบ object ตาม key
	DeleteFile(ctx context.Context, key string) error

	// GetFileURL สร้าง URL สาธารณะจาก key
	GetFileURL(key string) string

	// GetProviderName ชื่อ provider (s3)
	GetProviderName() string
}
