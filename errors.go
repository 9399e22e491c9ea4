package kasane

import (
	"errors"
	"fmt"
)

// ErrNoLayers is returned when a write targets the default layer but
// no layers are registered.
var ErrNoLayers = errors.New("no layers registered")

// EmptyPathError is returned when a write operation receives a path
// that splits to zero segments (empty, all-separator, or
// whitespace-only input).
type EmptyPathError struct {
	Path string
}

func (e *EmptyPathError) Error() string {
	return fmt.Sprintf("path %q contains no segments", e.Path)
}

// UnknownLayerError is returned when an operation that requires an
// existing layer (such as SaveLayer) names a layer that is not
// registered. Read-side layer restrictions never produce this error;
// unknown names are silently skipped there.
type UnknownLayerError struct {
	Name string
}

func (e *UnknownLayerError) Error() string {
	return fmt.Sprintf("layer %q not found", e.Name)
}

// UnsupportedFormatError is returned when a file's extension is not
// in the recognized allowlist.
type UnsupportedFormatError struct {
	Filename string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported configuration file format: %q", e.Filename)
}
