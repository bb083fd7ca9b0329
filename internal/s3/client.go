// Package s3 implements the remote sentiment tier against AWS S3.
//
// The client maps the SDK's error surface onto the domain error taxonomy so
// the resolver can classify failures without importing AWS types.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/Austin-TB/RxU-backend/internal/domain"
)

// Options configures the remote store client. Credentials are supplied
// out-of-band via environment; the caller decides whether they are present.
type Options struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
}

// Client fetches objects from a single bucket.
type Client struct {
	s3     *awss3.Client
	bucket string
}

var _ domain.ObjectStore = (*Client)(nil)

// NewClient builds an S3 client with static credentials. Construction happens
// once per process; a failure here puts the remote tier permanently out of
// service rather than being retried per request.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Client{
		s3:     awss3.NewFromConfig(cfg),
		bucket: opts.Bucket,
	}, nil
}

// Get returns the raw bytes of an object, translating SDK errors into domain
// sentinels.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := c.s3.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, classify(key, err)
	}
	defer func() { _ = out.Body.Close() }()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body of %q: %w", key, err)
	}
	return data, nil
}

// classify translates an SDK error into the domain taxonomy. Unknown errors
// pass through wrapped; the resolver treats them as a generic remote failure.
func classify(key string, err error) error {
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return fmt.Errorf("object %q: %w", key, domain.ErrObjectNotFound)
	}
	var noBucket *types.NoSuchBucket
	if errors.As(err, &noBucket) {
		return fmt.Errorf("object %q: %w", key, domain.ErrBucketNotFound)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("object %q: %w", key, domain.ErrObjectNotFound)
		case "NoSuchBucket":
			return fmt.Errorf("object %q: %w", key, domain.ErrBucketNotFound)
		case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
			return fmt.Errorf("object %q: %w (%s)", key, domain.ErrAccessDenied, apiErr.ErrorCode())
		}
	}
	return fmt.Errorf("failed to get object %q: %w", key, err)
}
