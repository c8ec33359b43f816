// Package errors provides the classified error primitives used across blogbuilder.
//
// A ClassifiedError carries a category (scan, load, render, write, ...), a
// severity and optional structured context. The severity decides whether a
// failure aborts a build or only degrades a single post or page.
//
// Example usage:
//
//	err := errors.WrapError(readErr, errors.CategoryLoad, "read post").
//		Warning().
//		WithContext("path", path).
//		Build()
package errors
