package imagefill

import (
	"errors"
	"fmt"
)

// ErrResolverClosed is the cause reported for paints resolved after the
// Resolver was closed.
var ErrResolverClosed = errors.New("imagefill: resolver closed")

// LoadError reports that the image behind a paint could not be loaded.
// It is delivered to the host as the Err of an EventError event; rendering
// falls back to the transparent placeholder.
type LoadError struct {
	URL   string
	Cause error
}

// Error implements error.
func (e *LoadError) Error() string {
	return fmt.Sprintf("imagefill: load %q: %v", e.URL, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error {
	return e.Cause
}
