// pkg/dbpf/errors.go
package dbpf

import "errors"

// Kind classifies the outcome of an archive operation
type Kind uint8

const (
	KindOK Kind = iota
	KindGeneral
	KindIO
	KindInvalidFormat
	KindInvalidVersion
	KindOutOfRange
)

var kindMessages = map[Kind]string{
	KindOK:             "Success",
	KindGeneral:        "General failure",
	KindIO:             "File input/output operation failed",
	KindInvalidFormat:  "Invalid file format",
	KindInvalidVersion: "Invalid archive or index version",
	KindOutOfRange:     "Argument out of range",
}

// String returns the human-readable message for the kind
func (k Kind) String() string {
	if msg, ok := kindMessages[k]; ok {
		return msg
	}
	return "Invalid status"
}

var (
	// ErrGeneral is returned for invalid arguments or an archive that is not loaded
	ErrGeneral = errors.New("general failure")

	// ErrIO is returned when the archive file cannot be opened or read
	ErrIO = errors.New("file input/output operation failed")

	// ErrInvalidFormat is returned when the data is not a well-formed DBPF archive
	ErrInvalidFormat = errors.New("invalid file format")

	// ErrInvalidVersion is returned when the archive is not in the supported version family
	ErrInvalidVersion = errors.New("invalid archive or index version")

	// ErrOutOfRange is returned when an index position is past the last entry
	ErrOutOfRange = errors.New("argument out of range")
)

// KindOf classifies err. A nil error is KindOK; errors not produced by this
// package are KindGeneral.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindOK
	case errors.Is(err, ErrIO):
		return KindIO
	case errors.Is(err, ErrInvalidFormat):
		return KindInvalidFormat
	case errors.Is(err, ErrInvalidVersion):
		return KindInvalidVersion
	case errors.Is(err, ErrOutOfRange):
		return KindOutOfRange
	default:
		return KindGeneral
	}
}
