package metrics

import "time"

// OutcomeLabel enumerates conversion outcome categories for counters.
type OutcomeLabel string

const (
	OutcomeSuccess      OutcomeLabel = "success"
	OutcomeParseError   OutcomeLabel = "parse_error"
	OutcomeNestingError OutcomeLabel = "nesting_error"
	OutcomeIOError      OutcomeLabel = "io_error"
)

// Stage names observed by ObserveStageDuration.
const (
	StageMatch  = "match"
	StageBuild  = "build"
	StageRender = "render"
)

// Recorder defines observability hooks for conversions. Implementations may
// forward to Prometheus; NoopRecorder is used when metrics are not configured.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveConversionDuration(d time.Duration)
	IncConversionOutcome(outcome OutcomeLabel)
	AddRenderedBlocks(n int)
	IncHTTPRequest(route string, status int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveConversionDuration(time.Duration)    {}
func (NoopRecorder) IncConversionOutcome(OutcomeLabel)          {}
func (NoopRecorder) AddRenderedBlocks(int)                      {}
func (NoopRecorder) IncHTTPRequest(string, int)                 {}
