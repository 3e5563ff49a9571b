// pkg/dbpf/header.go
package dbpf

import (
	"fmt"
	"time"

	"github.com/creativeyann17/go-dbpf/internal/format"
)

// HeaderSize is the fixed size of the DBPF header in bytes
const HeaderSize = format.HeaderSize

// Family is the DBPF major version detected from the header. FamilyMajor2
// includes 2.x archives that IsVersionValid rejects.
type Family = format.ArchiveFormat

const (
	FamilyUnknown = format.FormatUnknown
	FamilyMajor1  = format.FormatMajor1
	FamilyMajor2  = format.FormatMajor2
	FamilyMajor3  = format.FormatMajor3
	FamilyOther   = format.FormatOtherMajor
)

// Version is a major.minor version pair
type Version struct {
	Major uint32
	Minor uint32
}

// String returns "major.minor"
func (v Version) String() string {
	return format.VersionString(v.Major, v.Minor)
}

// Header is a read-only view over the first HeaderSize bytes of a loaded
// archive. The zero Header reads as all zeroes.
type Header struct {
	raw []byte
}

func (h Header) u32(off int) uint32 {
	if len(h.raw) < format.HeaderSize {
		return 0
	}
	return format.Uint32At(h.raw, off)
}

// Magic returns the 4-byte signature
func (h Header) Magic() string {
	if len(h.raw) < format.MagicSize {
		return ""
	}
	return string(h.raw[format.OffMagic:format.MagicSize])
}

// MajorVersion returns the archive major version
func (h Header) MajorVersion() uint32 { return h.u32(format.OffMajorVersion) }

// MinorVersion returns the archive minor version
func (h Header) MinorVersion() uint32 { return h.u32(format.OffMinorVersion) }

// Unknown1 returns the first unused header field
func (h Header) Unknown1() uint32 { return h.u32(format.OffUnknown1) }

// Unknown2 returns the second unused header field
func (h Header) Unknown2() uint32 { return h.u32(format.OffUnknown2) }

// Unknown3 returns the third unused header field
func (h Header) Unknown3() uint32 { return h.u32(format.OffUnknown3) }

// DateCreated returns the creation time in Unix seconds
func (h Header) DateCreated() uint32 { return h.u32(format.OffDateCreated) }

// DateModified returns the modification time in Unix seconds
func (h Header) DateModified() uint32 { return h.u32(format.OffDateModified) }

// IndexMajorVersion returns the index major version
func (h Header) IndexMajorVersion() uint32 { return h.u32(format.OffIndexMajorVersion) }

// IndexEntryCount returns the number of index entries
func (h Header) IndexEntryCount() uint32 { return h.u32(format.OffIndexEntryCount) }

// IndexFirstEntryOffset returns the offset of the first index entry as recorded in the header
func (h Header) IndexFirstEntryOffset() uint32 { return h.u32(format.OffIndexFirstEntryOffset) }

// IndexSize returns the size of the index in bytes
func (h Header) IndexSize() uint32 { return h.u32(format.OffIndexSize) }

// HoleEntryCount returns the number of hole records
func (h Header) HoleEntryCount() uint32 { return h.u32(format.OffHoleEntryCount) }

// HoleOffset returns the offset of the hole table
func (h Header) HoleOffset() uint32 { return h.u32(format.OffHoleOffset) }

// HoleSize returns the size of the hole table in bytes
func (h Header) HoleSize() uint32 { return h.u32(format.OffHoleSize) }

// IndexMinorVersion returns the index minor version
func (h Header) IndexMinorVersion() uint32 { return h.u32(format.OffIndexMinorVersion) }

// IndexOffset returns the offset of the index, where the index type tag is stored
func (h Header) IndexOffset() uint32 { return h.u32(format.OffIndexOffset) }

// Unknown4 returns the unused field after the index offset
func (h Header) Unknown4() uint32 { return h.u32(format.OffUnknown4) }

// Reserved returns the 24-byte reserved tail
func (h Header) Reserved() []byte {
	if len(h.raw) < format.HeaderSize {
		return nil
	}
	return h.raw[format.OffReserved : format.OffReserved+format.ReservedSize : format.OffReserved+format.ReservedSize]
}

// Created returns DateCreated as a UTC time
func (h Header) Created() time.Time {
	return time.Unix(int64(h.DateCreated()), 0).UTC()
}

// Modified returns DateModified as a UTC time
func (h Header) Modified() time.Time {
	return time.Unix(int64(h.DateModified()), 0).UTC()
}

// Version returns the archive version
func (h Header) Version() Version {
	return Version{Major: h.MajorVersion(), Minor: h.MinorVersion()}
}

// IndexVersion returns the index version
func (h Header) IndexVersion() Version {
	return Version{Major: h.IndexMajorVersion(), Minor: h.IndexMinorVersion()}
}

// IsVersion2x reports whether all four version fields match the 2.x family
func (h Header) IsVersion2x() bool {
	return h.MajorVersion() == format.Version2xMajor &&
		h.MinorVersion() == format.Version2xMinor &&
		h.IndexMajorVersion() == format.Version2xIndexMajor &&
		h.IndexMinorVersion() == format.Version2xIndexMinor
}

// AverageEntrySize returns IndexSize / IndexEntryCount. ok is false when the
// index is empty.
func (h Header) AverageEntrySize() (size uint32, ok bool) {
	count := h.IndexEntryCount()
	if count == 0 {
		return 0, false
	}
	return h.IndexSize() / count, true
}

// String returns a one-line description of the header
func (h Header) String() string {
	return fmt.Sprintf("DBPF %s, index %s, %d entries at 0x%08x",
		h.Version(), h.IndexVersion(), h.IndexEntryCount(), h.IndexOffset())
}
