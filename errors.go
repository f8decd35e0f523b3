// File: lixenwraith/conftree/errors.go
package conftree

import "errors"

// Sentinel errors returned by the package. All failures are synchronous and
// non-retryable; configuration parsing is a one-shot startup operation.
// Wrapped errors carry the offending key and, where relevant, the offending
// value and expected type name. Use errors.Is to classify.
var (
	// ErrMalformedKey indicates a flattened key contains characters outside
	// the literal key charset (letters, digits, underscore, dot, hyphen),
	// or a regex pattern failed to compile.
	ErrMalformedKey = errors.New("malformed key")

	// ErrInvalidValue indicates a value cannot be stored: an empty list, a
	// heterogeneous list, a non-scalar list element, an unrepresentable Go
	// type, or a fractional float offered for an int key.
	ErrInvalidValue = errors.New("invalid value")

	// ErrKeyNotFound indicates a literal lookup miss.
	ErrKeyNotFound = errors.New("key not found")

	// ErrUnknownKey indicates an update target, literal or pattern, matched
	// no existing keys.
	ErrUnknownKey = errors.New("unknown key or pattern")

	// ErrTypeMismatch indicates a value could not be coerced to the type of
	// the existing value at a key, including appending to a non-list key.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrTooManyValues indicates multiple flag values were supplied for a
	// scalar key.
	ErrTooManyValues = errors.New("too many values")

	// ErrAmbiguousKey indicates the target refers to a whole subtree rather
	// than a leaf.
	ErrAmbiguousKey = errors.New("ambiguous key")

	// ErrUnresolvedArguments indicates strict flag resolution left tokens
	// unconsumed.
	ErrUnresolvedArguments = errors.New("unresolved arguments")

	// ErrUnsupportedFormat indicates a Save/Load file extension is not one
	// of .json, .yaml, .yml, or .toml.
	ErrUnsupportedFormat = errors.New("unsupported config format")
)
