// pkg/extract/options.go
package extract

import (
	"fmt"
	"runtime"
	"strings"
)

// Codec selects how extracted payloads are written
type Codec string

const (
	CodecNone Codec = "none"
	CodecZstd Codec = "zstd"
	CodecXz   Codec = "xz"
)

// ParseCodec parses a codec name, case-insensitively. "" means CodecNone.
func ParseCodec(s string) (Codec, error) {
	switch Codec(strings.ToLower(s)) {
	case "", CodecNone:
		return CodecNone, nil
	case CodecZstd:
		return CodecZstd, nil
	case CodecXz:
		return CodecXz, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCodec, s)
	}
}

// Extension returns the file extension appended for the codec
func (c Codec) Extension() string {
	switch c {
	case CodecZstd:
		return ".zst"
	case CodecXz:
		return ".xz"
	default:
		return ""
	}
}

// Options configures the extract behavior
type Options struct {
	// Input archive path
	InputPath string

	// Output directory path
	// Default: "."
	OutputPath string

	// Maximum number of concurrent writer goroutines
	// Default: runtime.NumCPU()
	MaxThreads int

	// Compression applied to the written payloads. Payload bytes are written
	// as stored in the archive; this only wraps them in a zstd or xz stream.
	// Default: CodecNone
	Compression Codec

	// Compression level (zstd: 1-22, default 3; xz: 0-9, default 6)
	Level int

	// Exclude lists gitignore-style patterns matched against resource names
	// such as "0166038C/00000000-1000000000000000.bin"
	Exclude []string

	// Overwrite existing files
	Overwrite bool

	// DryRun computes output sizes without writing anything
	DryRun bool

	// Verbose enables detailed logging
	Verbose bool

	// Quiet suppresses all output except errors
	Quiet bool
}

// DefaultOptions returns options with sensible defaults
func DefaultOptions() *Options {
	return &Options{
		OutputPath:  ".",
		MaxThreads:  runtime.NumCPU(),
		Compression: CodecNone,
	}
}

// Validate checks if options are valid
func (o *Options) Validate() error {
	if o.InputPath == "" {
		return ErrInputRequired
	}
	if o.OutputPath == "" {
		o.OutputPath = "."
	}
	if o.MaxThreads <= 0 {
		o.MaxThreads = runtime.NumCPU()
	}

	codec, err := ParseCodec(string(o.Compression))
	if err != nil {
		return err
	}
	o.Compression = codec

	if o.Level <= 0 {
		switch o.Compression {
		case CodecZstd:
			o.Level = 3
		case CodecXz:
			o.Level = 6
		}
	}
	if o.Compression == CodecXz && o.Level > 9 {
		o.Level = 9
	}
	if o.Compression == CodecZstd && o.Level > 22 {
		o.Level = 22
	}

	if o.Quiet {
		o.Verbose = false
	}
	return nil
}
