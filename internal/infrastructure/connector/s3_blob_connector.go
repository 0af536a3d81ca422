package connector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/domain/blobs"
	"github.com/eskiturk2021/api-gateway/internal/pkg/config"
	"github.com/eskiturk2021/api-gateway/internal/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// s3BlobConnector implements blobs.BlobConnector on top of an S3 bucket
type s3BlobConnector struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	endpoint  string
	logger    logger.Logger
}

// NewS3BlobConnector creates a BlobConnector for the configured bucket.
// Static credentials are used when set, otherwise the default AWS credential chain applies.
func NewS3BlobConnector(ctx context.Context, settings *config.StorageSettings, logger logger.Logger) (blobs.BlobConnector, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	options := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(settings.Region),
	}
	if settings.AccessKeyID != "" {
		options = append(options, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(settings.AccessKeyID, settings.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if settings.Endpoint != "" {
			o.BaseEndpoint = aws.String(settings.Endpoint)
		}
		o.UsePathStyle = settings.UsePathStyle
	})

	return &s3BlobConnector{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    settings.Bucket,
		endpoint:  strings.TrimRight(settings.Endpoint, "/"),
		logger:    logger,
	}, nil
}

func (c *s3BlobConnector) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if size >= 0 {
		input.ContentLength = aws.Int64(size)
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := c.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	c.logger.Info("Uploaded object ", key, " to bucket ", c.bucket)
	return nil
}

func (c *s3BlobConnector) Download(ctx context.Context, key string) ([]byte, error) {
	output, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", blobs.ErrBlobNotFound, key)
		}
		return nil, fmt.Errorf("failed to download object %s: %w", key, err)
	}
	defer output.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(output.Body); err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}
	return buf.Bytes(), nil
}

func (c *s3BlobConnector) Head(ctx context.Context, key string) (*blobs.BlobObject, error) {
	output, err := c.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", blobs.ErrBlobNotFound, key)
		}
		return nil, fmt.Errorf("failed to read metadata of %s: %w", key, err)
	}

	return &blobs.BlobObject{
		Key:          key,
		Size:         aws.ToInt64(output.ContentLength),
		ContentType:  aws.ToString(output.ContentType),
		ETag:         strings.Trim(aws.ToString(output.ETag), `"`),
		LastModified: aws.ToTime(output.LastModified),
	}, nil
}

func (c *s3BlobConnector) Delete(ctx context.Context, key string) error {
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}

	c.logger.Info("Deleted object ", key, " from bucket ", c.bucket)
	return nil
}

func (c *s3BlobConnector) List(ctx context.Context, prefix string) ([]*blobs.BlobObject, error) {
	paginator := s3.NewListObjectsV2Paginator(c.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
		Prefix: aws.String(prefix),
	})

	var objects []*blobs.BlobObject
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects under %s: %w", prefix, err)
		}
		for _, item := range page.Contents {
			objects = append(objects, &blobs.BlobObject{
				Key:          aws.ToString(item.Key),
				Size:         aws.ToInt64(item.Size),
				ETag:         strings.Trim(aws.ToString(item.ETag), `"`),
				LastModified: aws.ToTime(item.LastModified),
			})
		}
	}
	return objects, nil
}

func (c *s3BlobConnector) PresignGetURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	request, err := c.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", key, err)
	}
	return request.URL, nil
}

// PublicURL returns https://<bucket>.s3.amazonaws.com/<key>, or <endpoint>/<bucket>/<key>
// when a custom endpoint is configured.
func (c *s3BlobConnector) PublicURL(key string) string {
	escaped := escapeKey(key)
	if c.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", c.endpoint, c.bucket, escaped)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", c.bucket, escaped)
}

func (c *s3BlobConnector) Ping(ctx context.Context) error {
	if _, err := c.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(c.bucket)}); err != nil {
		return fmt.Errorf("bucket %s is not reachable: %w", c.bucket, err)
	}
	return nil
}

func escapeKey(key string) string {
	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
		return true
	}

	var responseErr *awshttp.ResponseError
	return errors.As(err, &responseErr) && responseErr.HTTPStatusCode() == http.StatusNotFound
}
