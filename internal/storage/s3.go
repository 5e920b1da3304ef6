package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/brand-content-generator/internal/config"
	"github.com/jonathan/brand-content-generator/internal/types"
)

// presignConcurrency bounds parallel presign calls when listing objects.
const presignConcurrency = 4

// PublishError reports an object-store failure. The local artifact is never
// rolled back on publication failure; the caller reports partial success.
type PublishError struct {
	Cause error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("failed to publish artifact: %v", e.Cause)
}

func (e *PublishError) Unwrap() error { return e.Cause }

// Publisher uploads artifacts to an object store and issues time-limited
// access URLs.
type Publisher interface {
	// Publish uploads the content under the namespaced key for artifactID
	// and returns the published object with its presigned access URL.
	Publish(ctx context.Context, artifactID, html string) (*types.PublishedObject, error)
	// List returns up to maxItems object summaries under the configured
	// prefix, each with a presigned read URL.
	List(ctx context.Context, maxItems int) ([]types.ObjectSummary, error)
	// CheckConfig performs a lightweight reachability probe of the bucket.
	CheckConfig(ctx context.Context) (*types.ConfigStatus, error)
}

// s3API is the slice of the S3 client the publisher uses. It exists so tests
// can substitute a fake without AWS credentials.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// s3Presigner is the presigning slice of the S3 client.
type s3Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Publisher publishes artifacts to an S3 bucket under a fixed key prefix
// and issues presigned GET URLs with a configurable expiry.
type S3Publisher struct {
	client    s3API
	presigner s3Presigner
	bucket    string
	region    string
	prefix    string
	expiry    time.Duration
}

// NewS3Publisher builds a publisher from the application configuration.
// Static credentials from the config take precedence; otherwise the default
// AWS credential chain applies.
func NewS3Publisher(ctx context.Context, cfg *config.AppConfig) (*S3Publisher, error) {
	if err := cfg.ValidateS3(); err != nil {
		return nil, err
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &S3Publisher{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.S3Bucket,
		region:    cfg.AWSRegion,
		prefix:    cfg.S3KeyPrefix,
		expiry:    cfg.URLExpiry,
	}, nil
}

// Key returns the object key for an artifact id.
func (p *S3Publisher) Key(artifactID string) string {
	return p.prefix + artifactID + ".html"
}

// Publish uploads the content as text/html and returns the published object
// with a presigned access URL. The signature is read-only and unusable past
// its expiry.
func (p *S3Publisher) Publish(ctx context.Context, artifactID, html string) (*types.PublishedObject, error) {
	key := p.Key(artifactID)

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(html),
		ContentType: aws.String("text/html"),
		Metadata: map[string]string{
			"artifact-id":      artifactID,
			"upload-timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return nil, &PublishError{Cause: err}
	}

	url, err := p.presignGet(ctx, key)
	if err != nil {
		return nil, &PublishError{Cause: err}
	}

	return &types.PublishedObject{
		Bucket:    p.bucket,
		Key:       key,
		Region:    p.region,
		URL:       url,
		URLExpiry: time.Now().UTC().Add(p.expiry),
	}, nil
}

// List returns up to maxItems objects under the prefix. Presigning is a
// network round trip per object, so the URLs are issued concurrently with a
// bounded group.
func (p *S3Publisher) List(ctx context.Context, maxItems int) ([]types.ObjectSummary, error) {
	out, err := p.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(p.bucket),
		Prefix:  aws.String(p.prefix),
		MaxKeys: aws.Int32(int32(maxItems)),
	})
	if err != nil {
		return nil, &PublishError{Cause: err}
	}

	summaries := make([]types.ObjectSummary, len(out.Contents))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(presignConcurrency)

	for i, obj := range out.Contents {
		summaries[i] = types.ObjectSummary{
			Key:  aws.ToString(obj.Key),
			Size: aws.ToInt64(obj.Size),
		}
		if obj.LastModified != nil {
			summaries[i].LastModified = *obj.LastModified
		}

		g.Go(func() error {
			url, err := p.presignGet(gctx, summaries[i].Key)
			if err != nil {
				return err
			}
			summaries[i].URL = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, &PublishError{Cause: err}
	}
	return summaries, nil
}

// CheckConfig probes the bucket with a HeadBucket call. A failed probe is a
// diagnostic result, not an error.
func (p *S3Publisher) CheckConfig(ctx context.Context) (*types.ConfigStatus, error) {
	status := &types.ConfigStatus{
		Bucket: p.bucket,
		Region: p.region,
	}

	_, err := p.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(p.bucket),
	})
	status.BucketReachable = err == nil
	return status, nil
}

func (p *S3Publisher) presignGet(ctx context.Context, key string) (string, error) {
	req, err := p.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:                     aws.String(p.bucket),
		Key:                        aws.String(key),
		ResponseContentDisposition: aws.String("inline"),
	}, s3.WithPresignExpires(p.expiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
