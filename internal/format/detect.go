// internal/format/detect.go
package format

import "fmt"

// ArchiveFormat represents the DBPF major version detected from the header.
// It says nothing about whether the index layout is readable.
type ArchiveFormat int

const (
	FormatUnknown ArchiveFormat = iota
	FormatMajor1
	FormatMajor2
	FormatMajor3
	FormatOtherMajor
)

// String returns the string representation of the format
func (f ArchiveFormat) String() string {
	switch f {
	case FormatMajor1:
		return "DBPF major 1"
	case FormatMajor2:
		return "DBPF major 2"
	case FormatMajor3:
		return "DBPF major 3"
	case FormatOtherMajor:
		return "DBPF (other major)"
	default:
		return "UNKNOWN"
	}
}

// DetectFormat detects the version family from the first bytes of a file.
// Requires at least the magic and major version (8 bytes).
func DetectFormat(head []byte) ArchiveFormat {
	if len(head) < OffMinorVersion || !HasMagic(head) {
		return FormatUnknown
	}

	switch Uint32At(head, OffMajorVersion) {
	case 1:
		return FormatMajor1
	case 2:
		return FormatMajor2
	case 3:
		return FormatMajor3
	default:
		return FormatOtherMajor
	}
}

// VersionString formats a major.minor pair
func VersionString(major, minor uint32) string {
	return fmt.Sprintf("%d.%d", major, minor)
}
