package volume

import (
	"errors"
	"fmt"
)

// Volume load errors.
var (
	ErrNotFound          = errors.New("volume file not found")
	ErrSizeMismatch      = errors.New("volume payload size does not match metadata")
	ErrUnsupportedFormat = errors.New("unsupported volume format")
	ErrBadMetadata       = errors.New("invalid volume metadata")

	// ErrNoMetadata is returned by a Probe that has nothing to say about a path.
	// The Loader moves on to its next probe.
	ErrNoMetadata = errors.New("no volume metadata")
)

// LoadError describes a failed metadata probe or payload load.
type LoadError struct {
	Op   string // "probe" or "load"
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("volume %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying cause so callers can use errors.Is.
func (e *LoadError) Unwrap() error {
	return e.Err
}
