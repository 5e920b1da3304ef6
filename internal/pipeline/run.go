// Package pipeline provides the high-level orchestration for the brand
// content generation process: validate -> compose -> generate -> name ->
// persist -> publish, with strict stage ordering and per-stage failure
// isolation.
package pipeline

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/brand-content-generator/internal/composer"
	"github.com/jonathan/brand-content-generator/internal/llm"
	"github.com/jonathan/brand-content-generator/internal/metrics"
	"github.com/jonathan/brand-content-generator/internal/naming"
	"github.com/jonathan/brand-content-generator/internal/observability"
	"github.com/jonathan/brand-content-generator/internal/rendering"
	"github.com/jonathan/brand-content-generator/internal/storage"
	"github.com/jonathan/brand-content-generator/internal/types"
)

// Runner sequences the pipeline stages. Every entity created during a run is
// owned by that run and discarded when the envelope is returned; the only
// persistence is the Persister's directory and the Publisher's bucket.
type Runner struct {
	LLM       llm.Client
	Store     storage.Persister
	Publisher storage.Publisher
	Recorder  metrics.Recorder
	Printer   *observability.Printer

	// Now is the clock used for artifact naming; injectable for tests.
	Now func() time.Time
}

// New creates a Runner with a real clock and a no-op recorder unless one is
// provided.
func New(client llm.Client, store storage.Persister, publisher storage.Publisher, recorder metrics.Recorder) *Runner {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Runner{
		LLM:       client,
		Store:     store,
		Publisher: publisher,
		Recorder:  recorder,
		Now:       time.Now,
	}
}

// Preview runs validation, composition, and generation only, returning the
// generated HTML without touching the filesystem or the object store.
func (r *Runner) Preview(ctx context.Context, req *types.BrandRequest) (string, error) {
	runID := uuid.New().String()

	if err := r.validate(req); err != nil {
		return "", err
	}
	prompt, err := r.compose(req)
	if err != nil {
		return "", err
	}
	return r.generate(ctx, runID, req, prompt)
}

// Run executes the full pipeline. A publish failure after a successful local
// write is not a pipeline failure: the envelope reports partial success and
// the artifact stays retrievable via the download path.
func (r *Runner) Run(ctx context.Context, req *types.BrandRequest) (*types.ResultEnvelope, error) {
	runID := uuid.New().String()

	if err := r.validate(req); err != nil {
		r.Recorder.IncRunOutcome("validation_failed")
		return nil, err
	}
	if r.Printer != nil {
		r.Printer.PrintBrandRequest(req)
	}

	prompt, err := r.compose(req)
	if err != nil {
		r.Recorder.IncRunOutcome("error")
		return nil, err
	}

	html, err := r.generate(ctx, runID, req, prompt)
	if err != nil {
		r.Recorder.IncRunOutcome("generation_failed")
		return nil, err
	}

	// An abandoned generation must not be persisted or published.
	if ctx.Err() != nil {
		r.Recorder.IncRunOutcome("canceled")
		return nil, &StageError{Stage: StageGenerate, Err: ctx.Err()}
	}

	generatedAt := r.Now()
	artifactID := naming.DeriveName(req.CompanyName, generatedAt)

	stored, err := r.persist(artifactID, html)
	if err != nil {
		r.Recorder.IncRunOutcome("persist_failed")
		return nil, err
	}

	envelope := &types.ResultEnvelope{
		RunID:       runID,
		CompanyName: req.CompanyName,
		GeneratedAt: generatedAt,
		LocalFile:   stored,
	}

	published, err := r.publish(ctx, artifactID, html)
	if err != nil {
		log.Printf("[pipeline] run %s: publish failed, artifact saved locally as %s: %v", runID, stored.Filename, err)
		envelope.Success = false
		envelope.Status = types.StatusPartial
		envelope.S3Error = err.Error()
		r.Recorder.IncRunOutcome("partial")
		if r.Printer != nil {
			r.Printer.PrintEnvelope(envelope)
		}
		return envelope, nil
	}

	envelope.Success = true
	envelope.Status = types.StatusComplete
	envelope.S3 = published
	r.Recorder.IncRunOutcome("complete")
	if r.Printer != nil {
		r.Printer.PrintEnvelope(envelope)
	}
	return envelope, nil
}

func (r *Runner) validate(req *types.BrandRequest) error {
	defer r.timeStage(StageValidate)()
	req.Normalize()
	if err := req.Validate(); err != nil {
		return &StageError{Stage: StageValidate, Err: err}
	}
	return nil
}

func (r *Runner) compose(req *types.BrandRequest) (string, error) {
	defer r.timeStage(StageCompose)()
	prompt, err := composer.Compose(req)
	if err != nil {
		return "", &StageError{Stage: StageCompose, Err: err}
	}
	return prompt, nil
}

func (r *Runner) generate(ctx context.Context, runID string, req *types.BrandRequest, prompt string) (string, error) {
	defer r.timeStage(StageGenerate)()

	html, err := r.LLM.GenerateHTML(ctx, prompt)
	if err != nil {
		return "", &StageError{Stage: StageGenerate, Err: err}
	}

	issues, err := rendering.CheckDocument(html)
	if err != nil {
		return "", &StageError{Stage: StageGenerate, Err: err}
	}
	if len(issues) > 0 {
		log.Printf("[pipeline] run %s: generated page for %q has %d structural warning(s): %v",
			runID, req.CompanyName, len(issues), issues)
		if r.Printer != nil {
			r.Printer.PrintIssues(issues)
		}
	}

	return html, nil
}

func (r *Runner) persist(artifactID, html string) (*types.StoredFile, error) {
	defer r.timeStage(StagePersist)()
	stored, err := r.Store.Persist(artifactID, html)
	if err != nil {
		return nil, &StageError{Stage: StagePersist, Err: err}
	}
	return stored, nil
}

func (r *Runner) publish(ctx context.Context, artifactID, html string) (*types.PublishedObject, error) {
	defer r.timeStage(StagePublish)()
	if r.Publisher == nil {
		return nil, &StageError{
			Stage: StagePublish,
			Err:   &storage.PublishError{Cause: errors.New("object store is not configured")},
		}
	}
	published, err := r.Publisher.Publish(ctx, artifactID, html)
	if err != nil {
		return nil, &StageError{Stage: StagePublish, Err: err}
	}
	return published, nil
}

// timeStage records the duration of a stage on the metrics recorder.
func (r *Runner) timeStage(stage Stage) func() {
	start := time.Now()
	return func() {
		r.Recorder.ObserveStageDuration(string(stage), time.Since(start))
	}
}
