package types

import "errors"

// ErrNotFound is returned by repositories when a lookup matches nothing.
// Callers distinguish it from infrastructure failures via errors.Is.
var ErrNotFound = errors.New("not found")
