// pkg/extract/errors.go
package extract

import "errors"

var (
	// ErrInputRequired is returned when input path is not specified
	ErrInputRequired = errors.New("input archive path is required")

	// ErrUnknownCodec is returned when the output compression is not supported
	ErrUnknownCodec = errors.New("unknown output compression (use none, zstd or xz)")

	// ErrFileExists is returned when output file exists and overwrite is false
	ErrFileExists = errors.New("file exists (use --overwrite to replace)")
)
