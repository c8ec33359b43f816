// Package errors provides sentinel errors for post discovery and loading.
// They let callers classify scan and load failures without string matching.
package errors

import "errors"

var (
	// ErrPostsDirWalkFailed indicates filesystem traversal of the posts directory failed.
	ErrPostsDirWalkFailed = errors.New("posts directory walk failed")

	// ErrPostReadFailed indicates reading the content of a discovered post failed.
	ErrPostReadFailed = errors.New("post file read failed")

	// ErrFrontmatterInvalid indicates a post's front-matter could not be parsed.
	ErrFrontmatterInvalid = errors.New("post front-matter invalid")

	// ErrIdentifierCollision indicates two source files produced the same post identifier.
	ErrIdentifierCollision = errors.New("post identifier collision")

	// ErrInvalidRelativePath indicates a post path could not be made relative to the posts root.
	ErrInvalidRelativePath = errors.New("invalid relative post path")
)
