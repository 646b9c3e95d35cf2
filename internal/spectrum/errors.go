package spectrum

import (
	"fmt"
	"strings"
)

// LookupError reports a group or trial name that does not exist in the
// parsed file. It is recoverable: the caller gets the list of valid
// names to choose from.
type LookupError struct {
	Kind  string // "group" or "trial"
	Name  string
	Valid []string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("spectrum: %s %q not in data provided; choose one of: %s",
		e.Kind, e.Name, strings.Join(e.Valid, ", "))
}

// ConfigError reports an instrument setting from which axis identity
// cannot be inferred. Axis identity is safety-critical for physical
// interpretation, so this is fatal to the trial's reconstruction rather
// than silently defaulted.
type ConfigError struct {
	Setting string
	Value   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("spectrum: unrecognized %s value %q: cannot infer axis identity", e.Setting, e.Value)
}

// ShapeError reports inconsistent record sample counts that prevent
// stacking into a rectangular array.
type ShapeError struct {
	Detail string
}

func (e *ShapeError) Error() string {
	return "spectrum: " + e.Detail
}

// UnsupportedError is returned for trials combining multi-cycle
// stacking with channel-separated acquisition. Reconstructing that
// combination is unimplemented.
type UnsupportedError struct {
	Detail string
}

func (e *UnsupportedError) Error() string {
	return "spectrum: unsupported configuration: " + e.Detail
}
