// internal/format/dbpf.go
package format

import "encoding/binary"

const (
	// Magic signature for DBPF archives
	ArchiveMagic = "DBPF"
	MagicSize    = 4

	// Fixed header size at the start of every archive
	HeaderSize = 96

	// Size of the index type tag stored at the index offset, before the first entry
	IndexTypeSize = 4

	// Index entry size for the 2.x layout
	IndexEntrySize2x = 36
)

// Version family supported for typed index access
const (
	Version2xMajor      = 2
	Version2xMinor      = 1
	Version2xIndexMajor = 0
	Version2xIndexMinor = 3
)

// DBPF Header Structure (96 bytes, little-endian):
//   Magic (4):                 "DBPF"
//   Major Version (4):         uint32
//   Minor Version (4):         uint32
//   Unknown (3 x 4):           uint32, unused
//   Date Created (4):          uint32, Unix time
//   Date Modified (4):         uint32, Unix time
//   Index Major Version (4):   uint32
//   Index Entry Count (4):     uint32
//   Index First Entry (4):     uint32
//   Index Size (4):            uint32
//   Hole Entry Count (4):      uint32
//   Hole Offset (4):           uint32
//   Hole Size (4):             uint32
//   Index Minor Version (4):   uint32
//   Index Offset (4):          uint32
//   Unknown (4):               uint32
//   Reserved (24):             bytes
const (
	OffMagic                 = 0
	OffMajorVersion          = 4
	OffMinorVersion          = 8
	OffUnknown1              = 12
	OffUnknown2              = 16
	OffUnknown3              = 20
	OffDateCreated           = 24
	OffDateModified          = 28
	OffIndexMajorVersion     = 32
	OffIndexEntryCount       = 36
	OffIndexFirstEntryOffset = 40
	OffIndexSize             = 44
	OffHoleEntryCount        = 48
	OffHoleOffset            = 52
	OffHoleSize              = 56
	OffIndexMinorVersion     = 60
	OffIndexOffset           = 64
	OffUnknown4              = 68
	OffReserved              = 72
	ReservedSize             = 24
)

// DBPF 2.x Index Entry Structure (36 bytes, little-endian):
//   Type (4):           uint32
//   Group (4):          uint32
//   Instance High (4):  uint32
//   Instance Low (4):   uint32
//   Offset (4):         uint32, payload position in the archive
//   File Size (4):      uint32, compressed size
//   Mem Size (4):       uint32, uncompressed size
//   Compressed (2):     uint16
//   Unknown (2):        uint16
const (
	EntryOffType         = 0
	EntryOffGroup        = 4
	EntryOffInstanceHigh = 8
	EntryOffInstanceLow  = 12
	EntryOffOffset       = 16
	EntryOffFileSize     = 20
	EntryOffMemSize      = 24
	EntryOffCompressed   = 28
	EntryOffUnknown      = 30
)

// HasMagic reports whether b starts with the DBPF signature
func HasMagic(b []byte) bool {
	return len(b) >= MagicSize && string(b[:MagicSize]) == ArchiveMagic
}

// Uint32At reads a little-endian uint32 at off. The caller guarantees bounds.
func Uint32At(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

// Uint16At reads a little-endian uint16 at off. The caller guarantees bounds.
func Uint16At(b []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(b[off : off+2])
}

// EntryRange returns the byte range [start, end) of the 2.x index entry at
// position, computed in 64-bit so header values cannot overflow.
func EntryRange(indexOffset uint32, position uint32) (start, end uint64) {
	start = uint64(indexOffset) + IndexTypeSize + uint64(position)*IndexEntrySize2x
	return start, start + IndexEntrySize2x
}

// InBounds reports whether [start, end) lies inside a buffer of length size
func InBounds(start, end uint64, size int) bool {
	return start <= end && end <= uint64(size)
}
