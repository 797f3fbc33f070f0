// Package metrics provides conversion metrics behind a Recorder interface.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics collection needs no nil checks:
//
//	conv := convert.New(opts) // NoopRecorder
//	conv = conv.WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// PrometheusRecorder registers its collectors on the registry it is given;
// HTTPHandler serves that registry for scraping.
package metrics
