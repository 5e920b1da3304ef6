package metrics

import (
	"strconv"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once          sync.Once
	stageDuration *prom.HistogramVec
	runOutcome    *prom.CounterVec
	genRetries    prom.Counter
	httpRequests  *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "brandgen",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual pipeline stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "brandgen",
			Name:      "run_outcomes_total",
			Help:      "Pipeline run outcomes by final status",
		}, []string{"outcome"})
		pr.genRetries = prom.NewCounter(prom.CounterOpts{
			Namespace: "brandgen",
			Name:      "generation_retries_total",
			Help:      "Rate-limit retries of the content generator",
		})
		pr.httpRequests = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "brandgen",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, path, and status",
		}, []string{"method", "path", "status"})
		reg.MustRegister(pr.stageDuration, pr.runOutcome, pr.genRetries, pr.httpRequests)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(outcome string) {
	if p == nil || p.runOutcome == nil {
		return
	}
	p.runOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) IncGenerationRetry() {
	if p == nil || p.genRetries == nil {
		return
	}
	p.genRetries.Inc()
}

func (p *PrometheusRecorder) IncHTTPRequest(method, path string, status int) {
	if p == nil || p.httpRequests == nil {
		return
	}
	p.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}
