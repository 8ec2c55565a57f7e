package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"storyreel/domain/ports"
	"storyreel/pkg/logger"
)

// S3Storage implements StoragePort สำหรับ S3-Compatible Storage (MinIO / DO Spaces / R2)
type S3Storage struct {
	client    *minio.Client
	bucket    string
	region    string
	publicURL string // URL สำหรับเข้าถึงไฟล์ public (ถ้ามี)
	endpoint  string
	useSSL    bool
}

type S3StorageConfig struct {
	Endpoint  string // minio:9000 หรือ nyc3.digitaloceanspaces.com
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
	PublicURL string // CDN/public base URL (optional)
}

// NewS3Storage สร้าง S3Storage instance พร้อม ensure bucket
func NewS3Storage(config S3StorageConfig) (ports.StoragePort, error) {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 50,
		MaxConnsPerHost:     100,
	}

	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure:    config.UseSSL,
		Region:    config.Region,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	s := &S3Storage{
		client:    client,
		bucket:    config.Bucket,
		region:    config.Region,
		publicURL: strings.TrimSuffix(config.PublicURL, "/"),
		endpoint:  config.Endpoint,
		useSSL:    config.UseSSL,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}

	logger.Info("S3 storage initialized",
		"endpoint", config.Endpoint,
		"bucket", config.Bucket,
		"ssl", config.UseSSL,
	)

	return s, nil
}

// ensureBucket สร้าง bucket ถ้ายังไม่มี แล้วพยายามตั้ง public-read policy
// ตั้ง policy ไม่สำเร็จ (เช่น R2 ไม่รองรับ) แค่ warn ไม่ถือเป็น error
func (s *S3Storage) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{
			Region: s.region,
		})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		logger.Info("S3 bucket created", "bucket", s.bucket)
	}

	policy := fmt.Sprintf(`{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Effect": "Allow",
      "Principal": {"AWS": ["*"]},
      "Action": ["s3:GetObject"],
      "Resource": ["arn:aws:s3:::%s/*"]
    }
  ]
}`, s.bucket)

	if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
		logger.Warn("Failed to set public-read bucket policy", "bucket", s.bucket, "error", err)
	}

	return nil
}

// UploadFile อัปโหลด stream ไปยัง S3 ที่ key ที่กำหนด
func (s *S3Storage) UploadFile(ctx context.Context, file io.Reader, key string, contentType string, size int64) (string, error) {
	key = normalizeKey(key)

	// size = -1 ให้ MinIO อ่านจนจบ (streaming)
	_, err := s.client.PutObject(ctx, s.bucket, key, file, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	logger.Debug("File uploaded to S3", "key", key, "content_type", contentType)

	return s.GetFileURL(key), nil
}

// UploadLocalFile อัปโหลดไฟล์จาก disk
// key = {prefix}/{UTC timestamp}_{basename} กันชื่อชนกันข้าม request
func (s *S3Storage) UploadLocalFile(ctx context.Context, localPath string, prefix string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open local file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat local file: %w", err)
	}

	// bucket อาจถูกลบระหว่างรัน ensure ซ้ำได้ idempotent
	if err := s.ensureBucket(ctx); err != nil {
		return "", err
	}

	key := ObjectKey(prefix, localPath)
	return s.UploadFile(ctx, f, key, ContentTypeForFile(localPath), info.Size())
}

// DeleteFile ลบ object จาก S3
func (s *S3Storage) DeleteFile(ctx context.Context, key string) error {
	key = normalizeKey(key)

	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Debug("File deleted from S3", "key", key)
	return nil
}

// GetFileURL สร้าง URL สาธารณะจาก key
func (s *S3Storage) GetFileURL(key string) string {
	key = normalizeKey(key)

	if s.publicURL != "" {
		return s.publicURL + "/" + key
	}

	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, key)
}

// GetProviderName return ชื่อ provider
func (s *S3Storage) GetProviderName() string {
	return "s3"
}

func normalizeKey(key string) string {
	key = strings.TrimPrefix(key, "/")
	return strings.ReplaceAll(key, "\\", "/")
}

// ObjectKey สร้าง key จาก prefix + UTC timestamp + basename ของไฟล์
func ObjectKey(prefix string, localPath string) string {
	base := filepath.Base(localPath)
	ts := time.Now().UTC().Format("20060102T150405")
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return fmt.Sprintf("%s_%s", ts, base)
	}
	return fmt.Sprintf("%s/%s_%s", prefix, ts, base)
}

// ContentTypeForFile เดา content type จากนามสกุลไฟล์
func ContentTypeForFile(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".mov":
		return "video/quicktime"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
