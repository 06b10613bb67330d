package hr

import "errors"

// ErrNotFound is returned by get/update/delete for an unknown id. It is the
// only failure the store produces for well-shaped input; dangling foreign
// keys are not an error at this layer.
var ErrNotFound = errors.New("record not found")
