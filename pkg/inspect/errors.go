// pkg/inspect/errors.go
package inspect

import "errors"

var (
	// ErrInputRequired is returned when input path is not specified
	ErrInputRequired = errors.New("input path is required")

	// ErrInvalidHeader is returned when the archive cannot be loaded
	ErrInvalidHeader = errors.New("invalid archive header")

	// ErrUnsupportedVersion is returned when the index layout of the archive is unknown
	ErrUnsupportedVersion = errors.New("unsupported archive version")

	// ErrInvalidIndex is returned when an index entry cannot be read
	ErrInvalidIndex = errors.New("invalid index entry")

	// ErrPayloadOutOfBounds is returned when a payload range lies outside the archive
	ErrPayloadOutOfBounds = errors.New("payload outside archive")

	// ErrDuplicateKey is returned when two entries share a resource key
	ErrDuplicateKey = errors.New("duplicate resource key")
)
