// Package etlerr defines the error kinds a pipeline run can fail with.
// Stages wrap the underlying cause with one of these so callers can use errors.Is.
package etlerr

import "errors"

var (
	// ErrFileAccess reports a missing input or an output path that cannot be created or written.
	ErrFileAccess = errors.New("file access")
	// ErrParse reports a cell that cannot be parsed, such as a date.
	ErrParse = errors.New("parse")
	// ErrData reports structurally unusable input, such as a missing required column.
	ErrData = errors.New("data")
	// ErrRender reports a chart that could not be drawn or encoded.
	ErrRender = errors.New("render")
)
