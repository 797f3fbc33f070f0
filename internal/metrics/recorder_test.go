package metrics

import "time"

// testRecorder counts calls; convert and server tests use their own copies.
type testRecorder struct {
	stageDurations map[string]int
	conversions    int
	outcomes       map[OutcomeLabel]int
	blocks         int
	requests       map[string]int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{
		stageDurations: map[string]int{},
		outcomes:       map[OutcomeLabel]int{},
		requests:       map[string]int{},
	}
}

func (t *testRecorder) ObserveStageDuration(stage string, _ time.Duration) {
	t.stageDurations[stage]++
}
func (t *testRecorder) ObserveConversionDuration(time.Duration)   { t.conversions++ }
func (t *testRecorder) IncConversionOutcome(outcome OutcomeLabel) { t.outcomes[outcome]++ }
func (t *testRecorder) AddRenderedBlocks(n int)                   { t.blocks += n }
func (t *testRecorder) IncHTTPRequest(route string, _ int)        { t.requests[route]++ }

var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
	_ Recorder = newTestRecorder()
)
