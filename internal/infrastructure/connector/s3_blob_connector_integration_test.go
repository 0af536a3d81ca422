//go:build integration
// +build integration

package connector

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/domain/blobs"
	"github.com/eskiturk2021/api-gateway/internal/pkg/config"
	"github.com/eskiturk2021/api-gateway/internal/pkg/testutil"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupS3BlobConnector(t *testing.T) *s3BlobConnector {
	t.Helper()

	settings := &config.StorageSettings{
		AccessKeyID:          TestS3AccessKeyID,
		SecretAccessKey:      TestS3SecretAccessKey,
		Region:               TestS3Region,
		Bucket:               TestS3Bucket,
		Endpoint:             TestS3Endpoint,
		UsePathStyle:         true,
		PresignExpirySeconds: config.DefaultPresignExpirySeconds,
	}

	ctx := context.Background()
	blobConnector, err := NewS3BlobConnector(ctx, settings, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	connector := blobConnector.(*s3BlobConnector)
	_, err = connector.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(TestS3Bucket)})
	var owned *types.BucketAlreadyOwnedByYou
	if err != nil && !errors.As(err, &owned) {
		require.NoError(t, err)
	}

	return connector
}

func TestS3BlobConnector_Lifecycle(t *testing.T) {
	connector := setupS3BlobConnector(t)
	ctx := context.Background()

	prefix := "it/" + uuid.NewString() + "/"
	key := prefix + "files/report.txt"
	content := []byte("This is test file content")

	require.NoError(t, connector.Ping(ctx))
	require.NoError(t, connector.Upload(ctx, key, bytes.NewReader(content), int64(len(content)), "text/plain"))
	require.NoError(t, connector.Upload(ctx, prefix+"contracts/", bytes.NewReader(nil), 0, ""))

	downloaded, err := connector.Download(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, content, downloaded)

	meta, err := connector.Head(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), meta.Size)
	assert.Equal(t, "text/plain", meta.ContentType)
	assert.WithinDuration(t, time.Now(), meta.LastModified, time.Minute)

	objects, err := connector.List(ctx, prefix)
	require.NoError(t, err)
	require.Len(t, objects, 2)
	directories := 0
	for _, object := range objects {
		if object.IsDirectory() {
			directories++
		}
	}
	assert.Equal(t, 1, directories)

	url, err := connector.PresignGetURL(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, TestS3Endpoint))

	require.NoError(t, connector.Delete(ctx, key))
	require.NoError(t, connector.Delete(ctx, prefix+"contracts/"))

	_, err = connector.Head(ctx, key)
	assert.ErrorIs(t, err, blobs.ErrBlobNotFound)

	_, err = connector.Download(ctx, key)
	assert.ErrorIs(t, err, blobs.ErrBlobNotFound)
}
