// Package site turns a built model into output pages.
//
// The Generator lists one page per post, tag and author plus the overview,
// renders each through an injected Renderer and writes the results with a
// bounded pool of workers. The model is only read during generation.
package site
