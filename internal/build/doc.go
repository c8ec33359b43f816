// Package build provides the canonical blog build pipeline.
//
// Every entry point (the build and discover commands, the preview server and
// tests) runs through BuildService: scan the posts directory, build the model,
// then generate pages. Each run gets a build ID that is attached to its log
// lines, and stage timings are reported to the metrics recorder.
package build
