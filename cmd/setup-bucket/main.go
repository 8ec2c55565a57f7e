package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

func main() {
	// Load .env
	godotenv.Load()

	endpoint := os.Getenv("S3_ENDPOINT")
	accessKey := os.Getenv("S3_ACCESS_KEY")
	secretKey := os.Getenv("S3_SECRET_KEY")
	bucket := os.Getenv("S3_BUCKET")
	useSSL := os.Getenv("S3_USE_SSL") == "true"
	region := os.Getenv("S3_REGION")

	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("  StoryReel Bucket Setup")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("\nEndpoint: %s\n", endpoint)
	fmt.Printf("Bucket: %s\n", bucket)
	fmt.Printf("Region: %s\n", region)

	// Create MinIO client
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	ctx := context.Background()

	// Check bucket exists, create if not
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		log.Fatalf("Failed to check bucket: %v", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			log.Fatalf("Failed to create bucket '%s': %v", bucket, err)
		}
		fmt.Printf("\n✓ Bucket '%s' created\n", bucket)
	} else {
		fmt.Printf("\n✓ Bucket '%s' exists\n", bucket)
	}

	// Set bucket policy
	// - Public read ทั้ง bucket: frames/* ต้องให้ Higgsfield ดึงได้
	//   และ assemblies/* ต้องเปิดให้ client เล่นวิดีโอตรงๆ
	policy := map[string]interface{}{
		"Version": "2012-10-17",
		"Statement": []map[string]interface{}{
			{
				"Sid":       "PublicReadFrames",
				"Effect":    "Allow",
				"Principal": "*",
				"Action":    []string{"s3:GetObject"},
				"Resource":  []string{fmt.Sprintf("arn:aws:s3:::%s/frames/*", bucket)},
			},
			{
				"Sid":       "PublicReadAssemblies",
				"Effect":    "Allow",
				"Principal": "*",
				"Action":    []string{"s3:GetObject"},
				"Resource":  []string{fmt.Sprintf("arn:aws:s3:::%s/assemblies/*", bucket)},
			},
		},
	}

	policyJSON, _ := json.MarshalIndent(policy, "", "  ")

	fmt.Println("\n--- Setting Bucket Policy ---")
	fmt.Println(string(policyJSON))

	err = client.SetBucketPolicy(ctx, bucket, string(policyJSON))
	if err != nil {
		log.Printf("⚠️  Warning: Failed to set policy: %v", err)
	} else {
		fmt.Println("\n✓ Bucket policy set successfully")
	}

	// Test basic operations
	fmt.Println("\n--- Testing Basic Operations ---")

	// Test list (check read permission)
	fmt.Print("Testing ListObjects... ")
	objCh := client.ListObjects(ctx, bucket, minio.ListObjectsOptions{MaxKeys: 1})
	listOK := true
	for obj := range objCh {
		if obj.Err != nil {
			fmt.Printf("❌ Failed: %v\n", obj.Err)
			listOK = false
			break
		}
	}
	if listOK {
		fmt.Println("✓ OK")
	}

	// Test regular PutObject (upload permission)
	fmt.Print("Testing PutObject... ")
	testContent := []byte("test content for upload permission check")
	_, err = client.PutObject(ctx, bucket, "test/upload-test.txt",
		bytes.NewReader(testContent), int64(len(testContent)),
		minio.PutObjectOptions{ContentType: "text/plain"})
	if err != nil {
		fmt.Printf("❌ Failed: %v\n", err)
	} else {
		fmt.Println("✓ OK")
		// Cleanup test file
		client.RemoveObject(ctx, bucket, "test/upload-test.txt", minio.RemoveObjectOptions{})
	}

	fmt.Println("\n═══════════════════════════════════════════════════════════════")
	fmt.Println("  Setup Complete!")
	fmt.Println("═══════════════════════════════════════════════════════════════")
}
