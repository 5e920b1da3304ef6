package storage

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 implements s3API and s3Presigner in memory.
type fakeS3 struct {
	putInputs  []*s3.PutObjectInput
	putErr     error
	headErr    error
	listOutput *s3.ListObjectsV2Output
	listErr    error
	listInputs []*s3.ListObjectsV2Input
	presignErr error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.putInputs = append(f.putInputs, params)
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) HeadBucket(_ context.Context, _ *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.listInputs = append(f.listInputs, params)
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.listOutput != nil {
		return f.listOutput, nil
	}
	return &s3.ListObjectsV2Output{}, nil
}

func (f *fakeS3) PresignGetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	if f.presignErr != nil {
		return nil, f.presignErr
	}
	return &v4.PresignedHTTPRequest{
		URL: "https://signed.example.com/" + aws.ToString(params.Key),
	}, nil
}

func newTestPublisher(fake *fakeS3) *S3Publisher {
	return &S3Publisher{
		client:    fake,
		presigner: fake,
		bucket:    "test-bucket",
		region:    "us-east-1",
		prefix:    "brand-websites/",
		expiry:    7 * 24 * time.Hour,
	}
}

func TestS3Publisher_Publish(t *testing.T) {
	fake := &fakeS3{}
	pub := newTestPublisher(fake)

	obj, err := pub.Publish(context.Background(), "acme_20260115_134502", "<html></html>")
	require.NoError(t, err)

	assert.Equal(t, "test-bucket", obj.Bucket)
	assert.Equal(t, "brand-websites/acme_20260115_134502.html", obj.Key)
	assert.Equal(t, "us-east-1", obj.Region)
	assert.Equal(t, "https://signed.example.com/brand-websites/acme_20260115_134502.html", obj.URL)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), obj.URLExpiry, time.Minute)

	require.Len(t, fake.putInputs, 1)
	put := fake.putInputs[0]
	assert.Equal(t, "test-bucket", aws.ToString(put.Bucket))
	assert.Equal(t, "brand-websites/acme_20260115_134502.html", aws.ToString(put.Key))
	assert.Equal(t, "text/html", aws.ToString(put.ContentType))
	assert.Equal(t, "acme_20260115_134502", put.Metadata["artifact-id"])

	body, err := io.ReadAll(put.Body)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(body))
}

func TestS3Publisher_PublishError(t *testing.T) {
	fake := &fakeS3{putErr: errors.New("access denied")}
	pub := newTestPublisher(fake)

	_, err := pub.Publish(context.Background(), "acme_20260115_134502", "<html></html>")
	require.Error(t, err)

	var perr *PublishError
	require.True(t, errors.As(err, &perr))
	assert.Contains(t, err.Error(), "access denied")
}

func TestS3Publisher_PresignErrorIsPublishError(t *testing.T) {
	fake := &fakeS3{presignErr: errors.New("signing failed")}
	pub := newTestPublisher(fake)

	_, err := pub.Publish(context.Background(), "acme_20260115_134502", "<html></html>")
	require.Error(t, err)

	var perr *PublishError
	assert.True(t, errors.As(err, &perr))
}

func TestS3Publisher_List(t *testing.T) {
	modified := time.Date(2026, 1, 15, 13, 45, 2, 0, time.UTC)
	fake := &fakeS3{
		listOutput: &s3.ListObjectsV2Output{
			Contents: []s3types.Object{
				{Key: aws.String("brand-websites/a.html"), Size: aws.Int64(10), LastModified: aws.Time(modified)},
				{Key: aws.String("brand-websites/b.html"), Size: aws.Int64(20), LastModified: aws.Time(modified)},
			},
		},
	}
	pub := newTestPublisher(fake)

	files, err := pub.List(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "brand-websites/a.html", files[0].Key)
	assert.Equal(t, int64(10), files[0].Size)
	assert.Equal(t, modified, files[0].LastModified)
	assert.Equal(t, "https://signed.example.com/brand-websites/a.html", files[0].URL)
	assert.Equal(t, "https://signed.example.com/brand-websites/b.html", files[1].URL)

	require.Len(t, fake.listInputs, 1)
	assert.Equal(t, int32(50), aws.ToInt32(fake.listInputs[0].MaxKeys))
	assert.Equal(t, "brand-websites/", aws.ToString(fake.listInputs[0].Prefix))
}

func TestS3Publisher_ListError(t *testing.T) {
	fake := &fakeS3{listErr: errors.New("timeout")}
	pub := newTestPublisher(fake)

	_, err := pub.List(context.Background(), 10)
	require.Error(t, err)

	var perr *PublishError
	assert.True(t, errors.As(err, &perr))
}

func TestS3Publisher_CheckConfig(t *testing.T) {
	pub := newTestPublisher(&fakeS3{})

	status, err := pub.CheckConfig(context.Background())
	require.NoError(t, err)
	assert.True(t, status.BucketReachable)
	assert.Equal(t, "test-bucket", status.Bucket)
	assert.Equal(t, "us-east-1", status.Region)
}

func TestS3Publisher_CheckConfig_Unreachable(t *testing.T) {
	pub := newTestPublisher(&fakeS3{headErr: errors.New("403")})

	status, err := pub.CheckConfig(context.Background())
	require.NoError(t, err)
	assert.False(t, status.BucketReachable)
}
