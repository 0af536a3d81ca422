//go:build integration
// +build integration

package connector

// Test object storage endpoint, a local MinIO with its default credentials
const (
	TestS3Endpoint        = "http://127.0.0.1:9000"
	TestS3AccessKeyID     = "minioadmin"
	TestS3SecretAccessKey = "minioadmin"
	TestS3Region          = "us-east-1"
	TestS3Bucket          = "gateway-test-bucket"
)
