package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/brand-content-generator/internal/llm"
	"github.com/jonathan/brand-content-generator/internal/storage"
	"github.com/jonathan/brand-content-generator/internal/types"
)

const testHTML = "<!DOCTYPE html><html><head><title>Acme</title></head><body><h1>Acme</h1></body></html>"

// fakeLLM implements llm.Client without a network.
type fakeLLM struct {
	html  string
	err   error
	calls int
}

func (f *fakeLLM) GenerateHTML(_ context.Context, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.html, nil
}

func (f *fakeLLM) Close() error { return nil }

// memStore implements storage.Persister in memory.
type memStore struct {
	files map[string]string
	err   error
}

func newMemStore() *memStore {
	return &memStore{files: make(map[string]string)}
}

func (m *memStore) Persist(artifactID, html string) (*types.StoredFile, error) {
	if m.err != nil {
		return nil, m.err
	}
	filename := artifactID + ".html"
	m.files[filename] = html
	return &types.StoredFile{
		Filename: filename,
		Filepath: "/tmp/out/" + filename,
		Size:     int64(len(html)),
	}, nil
}

func (m *memStore) Open(filename string) (io.ReadCloser, error) {
	content, ok := m.files[filename]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, filename)
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

// fakePublisher implements storage.Publisher in memory.
type fakePublisher struct {
	objects map[string]string
	err     error
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{objects: make(map[string]string)}
}

func (f *fakePublisher) Publish(_ context.Context, artifactID, html string) (*types.PublishedObject, error) {
	if f.err != nil {
		return nil, &storage.PublishError{Cause: f.err}
	}
	key := "brand-websites/" + artifactID + ".html"
	f.objects[key] = html
	return &types.PublishedObject{
		Bucket:    "test-bucket",
		Key:       key,
		Region:    "us-east-1",
		URL:       "https://signed.example.com/" + key,
		URLExpiry: time.Now().Add(7 * 24 * time.Hour),
	}, nil
}

func (f *fakePublisher) List(_ context.Context, _ int) ([]types.ObjectSummary, error) {
	return nil, nil
}

func (f *fakePublisher) CheckConfig(_ context.Context) (*types.ConfigStatus, error) {
	return &types.ConfigStatus{BucketReachable: true, Bucket: "test-bucket", Region: "us-east-1"}, nil
}

func validRequest() *types.BrandRequest {
	return &types.BrandRequest{
		CompanyName:   "Acme",
		BrandIdentity: "Widgets for all",
		Tone:          "casual",
		DesignStyle:   "minimalistic",
		PrimaryColor:  "#ABCDEF",
	}
}

func newTestRunner(client llm.Client, store *memStore, pub *fakePublisher) *Runner {
	var runner *Runner
	if pub == nil {
		runner = New(client, store, nil, nil)
	} else {
		runner = New(client, store, pub, nil)
	}
	runner.Now = func() time.Time {
		return time.Date(2026, 1, 15, 13, 45, 2, 0, time.UTC)
	}
	return runner
}

func TestRun_FullSuccess(t *testing.T) {
	store := newMemStore()
	pub := newFakePublisher()
	runner := newTestRunner(&fakeLLM{html: testHTML}, store, pub)

	envelope, err := runner.Run(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, envelope.Success)
	assert.Equal(t, types.StatusComplete, envelope.Status)
	assert.NotEmpty(t, envelope.RunID)
	assert.Equal(t, "Acme", envelope.CompanyName)

	require.NotNil(t, envelope.LocalFile)
	assert.Equal(t, "acme_20260115_134502.html", envelope.LocalFile.Filename)

	require.NotNil(t, envelope.S3)
	assert.Equal(t, "brand-websites/acme_20260115_134502.html", envelope.S3.Key)
	assert.Empty(t, envelope.S3Error)

	assert.Equal(t, testHTML, store.files[envelope.LocalFile.Filename])
	assert.Equal(t, testHTML, pub.objects[envelope.S3.Key])
}

func TestRun_TraceabilityInvariant(t *testing.T) {
	store := newMemStore()
	pub := newFakePublisher()
	runner := newTestRunner(&fakeLLM{html: testHTML}, store, pub)

	envelope, err := runner.Run(context.Background(), validRequest())
	require.NoError(t, err)

	// The local filename and the object key basename must always match.
	assert.Equal(t, envelope.LocalFile.Filename, path.Base(envelope.S3.Key))
}

func TestRun_ValidationFailureShortCircuits(t *testing.T) {
	client := &fakeLLM{html: testHTML}
	store := newMemStore()
	runner := newTestRunner(client, store, newFakePublisher())

	req := validRequest()
	req.Tone = "loud"

	_, err := runner.Run(context.Background(), req)
	require.Error(t, err)

	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, StageValidate, stageErr.Stage)

	var verr *types.ValidationError
	assert.True(t, errors.As(err, &verr))

	assert.Zero(t, client.calls, "generator must not run after validation failure")
	assert.Empty(t, store.files, "nothing may be persisted after validation failure")
}

func TestRun_GenerationFailure(t *testing.T) {
	store := newMemStore()
	genErr := &llm.GenerationError{Cause: errors.New("quota exceeded")}
	runner := newTestRunner(&fakeLLM{err: genErr}, store, newFakePublisher())

	_, err := runner.Run(context.Background(), validRequest())
	require.Error(t, err)

	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, StageGenerate, stageErr.Stage)

	var gerr *llm.GenerationError
	assert.True(t, errors.As(err, &gerr))
	assert.Empty(t, store.files)
}

func TestRun_PersistFailureSkipsPublish(t *testing.T) {
	store := newMemStore()
	store.err = &storage.PersistError{Cause: errors.New("disk full")}
	pub := newFakePublisher()
	runner := newTestRunner(&fakeLLM{html: testHTML}, store, pub)

	_, err := runner.Run(context.Background(), validRequest())
	require.Error(t, err)

	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, StagePersist, stageErr.Stage)
	assert.Empty(t, pub.objects, "publish must not run after persist failure")
}

func TestRun_PublishFailureIsPartialSuccess(t *testing.T) {
	store := newMemStore()
	pub := newFakePublisher()
	pub.err = errors.New("credentials rejected")
	runner := newTestRunner(&fakeLLM{html: testHTML}, store, pub)

	envelope, err := runner.Run(context.Background(), validRequest())
	require.NoError(t, err, "publish failure is a reportable outcome, not a pipeline error")

	assert.False(t, envelope.Success)
	assert.Equal(t, types.StatusPartial, envelope.Status)
	assert.Contains(t, envelope.S3Error, "credentials rejected")
	assert.Nil(t, envelope.S3)

	// The local artifact survives and remains retrievable.
	require.NotNil(t, envelope.LocalFile)
	f, err := store.Open(envelope.LocalFile.Filename)
	require.NoError(t, err)
	defer f.Close()
	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, testHTML, string(content))
}

func TestRun_NoPublisherIsPartialSuccess(t *testing.T) {
	store := newMemStore()
	runner := newTestRunner(&fakeLLM{html: testHTML}, store, nil)

	envelope, err := runner.Run(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, types.StatusPartial, envelope.Status)
	assert.Contains(t, envelope.S3Error, "not configured")
	require.NotNil(t, envelope.LocalFile)
}

func TestPreview_NoSideEffects(t *testing.T) {
	store := newMemStore()
	pub := newFakePublisher()
	runner := newTestRunner(&fakeLLM{html: testHTML}, store, pub)

	html, err := runner.Preview(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, testHTML, html)
	assert.Empty(t, store.files, "preview must not write to the filesystem")
	assert.Empty(t, pub.objects, "preview must not publish")
}

func TestPreview_ValidatesInput(t *testing.T) {
	client := &fakeLLM{html: testHTML}
	runner := newTestRunner(client, newMemStore(), nil)

	req := validRequest()
	req.CompanyName = ""

	_, err := runner.Preview(context.Background(), req)
	require.Error(t, err)
	assert.Zero(t, client.calls)
}

func TestRun_CanceledContextNotPersisted(t *testing.T) {
	store := newMemStore()
	pub := newFakePublisher()

	ctx, cancel := context.WithCancel(context.Background())
	// The fake generator succeeds but the caller is gone by the time it
	// returns; the abandoned artifact must not be persisted or published.
	client := &cancelingLLM{html: testHTML, cancel: cancel}
	runner := newTestRunner(client, store, pub)

	_, err := runner.Run(ctx, validRequest())
	require.Error(t, err)
	assert.Empty(t, store.files)
	assert.Empty(t, pub.objects)
}

type cancelingLLM struct {
	html   string
	cancel context.CancelFunc
}

func (c *cancelingLLM) GenerateHTML(_ context.Context, _ string) (string, error) {
	c.cancel()
	return c.html, nil
}

func (c *cancelingLLM) Close() error { return nil }
