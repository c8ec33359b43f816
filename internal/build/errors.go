package build

import "errors"

// Sentinel errors identifying the pipeline stage that failed. They are
// wrapped inside classified errors by the service.
var (
	ErrScan     = errors.New("blogbuilder: scan error")
	ErrModel    = errors.New("blogbuilder: model error")
	ErrGenerate = errors.New("blogbuilder: generate error")
)
