// Package preview runs a local preview server for a blog.
//
// It builds the site once, serves the output directory over HTTP together
// with a Prometheus /metrics endpoint, and rebuilds whenever files below the
// posts or templates directory change. Rebuilds are debounced and skipped when
// the content fingerprint is unchanged. An optional interval schedules
// periodic rebuilds.
package preview
