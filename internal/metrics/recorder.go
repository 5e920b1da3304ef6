// Package metrics records pipeline and HTTP metrics.
package metrics

import "time"

// Recorder is the metrics sink used by the pipeline and server. A nil-safe
// no-op implementation keeps tests and CLI runs free of a registry.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	IncRunOutcome(outcome string)
	IncGenerationRetry()
	IncHTTPRequest(method, path string, status int)
}

// NoopRecorder discards all observations.
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) IncRunOutcome(string)                       {}
func (NoopRecorder) IncGenerationRetry()                        {}
func (NoopRecorder) IncHTTPRequest(string, string, int)         {}
