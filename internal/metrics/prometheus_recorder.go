package metrics

import (
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "mdhtml"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration      *prom.HistogramVec
	conversionDuration prom.Histogram
	outcomes           *prom.CounterVec
	renderedBlocks     prom.Counter
	httpRequests       *prom.CounterVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual conversion stages",
			Buckets:   prom.ExponentialBuckets(0.00005, 4, 10),
		}, []string{"stage"}),
		conversionDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "conversion_duration_seconds",
			Help:      "Total markdown to HTML conversion duration",
			Buckets:   prom.ExponentialBuckets(0.0001, 4, 10),
		}),
		outcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Conversions by outcome",
		}, []string{"outcome"}),
		renderedBlocks: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "rendered_blocks_total",
			Help:      "Top-level blocks rendered",
		}),
		httpRequests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"route", "code"}),
	}
	reg.MustRegister(pr.stageDuration, pr.conversionDuration, pr.outcomes, pr.renderedBlocks, pr.httpRequests)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveConversionDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.conversionDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncConversionOutcome(outcome OutcomeLabel) {
	if p == nil {
		return
	}
	p.outcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) AddRenderedBlocks(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.renderedBlocks.Add(float64(n))
}

func (p *PrometheusRecorder) IncHTTPRequest(route string, status int) {
	if p == nil {
		return
	}
	p.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}
