// Package r2client provides a small client for Cloudflare R2 object storage.
// It wraps the AWS S3 SDK and is used to publish and fetch knowledge table
// bundles (optionally zstd-compressed JSON) so that the FAQ content can be
// updated without rebuilding the server.
package r2client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/klauspost/compress/zstd"
)

var (
	// ErrNotFound is returned when an object does not exist.
	ErrNotFound = errors.New("r2client: object not found")
	// ErrPreconditionFailed is returned when a conditional Put loses to a
	// concurrent writer.
	ErrPreconditionFailed = errors.New("r2client: precondition failed")
)

// Config holds R2 client configuration.
type Config struct {
	Endpoint    string // https://<account-id>.r2.cloudflarestorage.com
	AccessKeyID string
	SecretKey   string
	BucketName  string
}

// objectAPI is the subset of *s3.Client the client calls.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// Client provides R2 object storage operations.
type Client struct {
	api    objectAPI
	bucket string
}

// New creates a new R2 client.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Endpoint == "" || cfg.AccessKeyID == "" || cfg.SecretKey == "" || cfg.BucketName == "" {
		return nil, errors.New("r2client: all config fields are required")
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretKey,
			"",
		)),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("r2client: load aws config: %w", err)
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true // Required for R2
	})
	return &Client{api: api, bucket: cfg.BucketName}, nil
}

// PutOptions controls a Put.
type PutOptions struct {
	ContentType string
	// IfMatch makes the write conditional on the current ETag.
	IfMatch string
	// IfAbsent makes the write conditional on the key not existing yet.
	IfAbsent bool
}

// Put writes an object and returns its new ETag. A conditional write that
// does not hold returns ErrPreconditionFailed.
func (c *Client) Put(ctx context.Context, key string, body io.Reader, opts PutOptions) (string, error) {
	in := &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if opts.ContentType != "" {
		in.ContentType = aws.String(opts.ContentType)
	}
	switch {
	case opts.IfMatch != "":
		in.IfMatch = aws.String(`"` + opts.IfMatch + `"`)
	case opts.IfAbsent:
		in.IfNoneMatch = aws.String("*")
	}

	out, err := c.api.PutObject(ctx, in)
	if err != nil {
		if isPreconditionFailed(err) {
			return "", fmt.Errorf("%w: %q", ErrPreconditionFailed, key)
		}
		return "", fmt.Errorf("r2client: put %q: %w", key, err)
	}
	return trimETag(out.ETag), nil
}

// Object is a fetched object. Body must be closed by the caller.
type Object struct {
	Body io.ReadCloser
	ETag string
	Size int64
}

// Get fetches an object.
func (c *Client) Get(ctx context.Context, key string) (*Object, error) {
	out, err := c.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("r2client: get %q: %w", key, err)
	}
	return &Object{
		Body: out.Body,
		ETag: trimETag(out.ETag),
		Size: aws.ToInt64(out.ContentLength),
	}, nil
}

// Stat returns the ETag of an object without downloading it.
func (c *Client) Stat(ctx context.Context, key string) (string, error) {
	out, err := c.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("r2client: stat %q: %w", key, err)
	}
	return trimETag(out.ETag), nil
}

func trimETag(etag *string) string {
	return strings.Trim(aws.ToString(etag), `"`)
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	var nf *types.NotFound
	if errors.As(err, &nsk) || errors.As(err, &nf) {
		return true
	}
	switch apiErrorCode(err) {
	case "NoSuchKey", "NotFound":
		return true
	}
	return httpStatus(err) == http.StatusNotFound
}

func isPreconditionFailed(err error) bool {
	return apiErrorCode(err) == "PreconditionFailed" || httpStatus(err) == http.StatusPreconditionFailed
}

func apiErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

func httpStatus(err error) int {
	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) {
		return respErr.HTTPStatusCode()
	}
	return 0
}

// Compress writes the zstd-compressed form of src to dst.
func Compress(dst io.Writer, src io.Reader) error {
	encoder, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("compress: create encoder: %w", err)
	}

	if _, err := io.Copy(encoder, src); err != nil {
		_ = encoder.Close()
		return fmt.Errorf("compress: copy: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("compress: close encoder: %w", err)
	}
	return nil
}

// Decompress reads a whole zstd-compressed stream into memory.
// Knowledge bundles are small.
func Decompress(r io.Reader) ([]byte, error) {
	decoder, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("decompress: create decoder: %w", err)
	}
	defer decoder.Close()

	data, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("decompress: read: %w", err)
	}
	return data, nil
}
