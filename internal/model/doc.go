// Package model builds the read-only blog model from scanned post files.
//
// A Model indexes posts by identifier, tag, author and date. It is built once
// per run by Build and never modified afterwards, so it can be shared freely
// between concurrent page renders.
package model
