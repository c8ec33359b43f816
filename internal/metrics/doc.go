// Package metrics provides build observability for blogbuilder.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics never require nil checks:
//
//	gen := site.NewGenerator(cfg, renderer).WithRecorder(recorder)
//
// PrometheusRecorder is the real implementation. The preview server registers
// it on a private registry and exposes it through HTTPHandler.
package metrics
