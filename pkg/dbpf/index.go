// pkg/dbpf/index.go
package dbpf

import (
	"fmt"

	"github.com/creativeyann17/go-dbpf/internal/format"
)

// IndexEntrySize is the size of a 2.x index entry in bytes
const IndexEntrySize = format.IndexEntrySize2x

// Known resource types
const (
	TypeThumbnail uint32 = 0x3c1af1f2
)

var typeNames = map[uint32]string{
	TypeThumbnail: "thumbnail",
}

// TypeName returns a short name for a known resource type, or "" if unknown
func TypeName(t uint32) string {
	return typeNames[t]
}

// ResourceKey uniquely identifies a resource inside an archive
type ResourceKey struct {
	Type     uint32
	Group    uint32
	Instance uint64
}

// String returns the key as TTTTTTTT-GGGGGGGG-IIIIIIIIIIIIIIII
func (k ResourceKey) String() string {
	return fmt.Sprintf("%08X-%08X-%016X", k.Type, k.Group, k.Instance)
}

// IndexEntry is a 2.x index record. It is a view over the owning archive's
// buffer.
type IndexEntry struct {
	position uint32
	raw      []byte
}

func (e IndexEntry) u32(off int) uint32 {
	if len(e.raw) < IndexEntrySize {
		return 0
	}
	return format.Uint32At(e.raw, off)
}

func (e IndexEntry) u16(off int) uint16 {
	if len(e.raw) < IndexEntrySize {
		return 0
	}
	return format.Uint16At(e.raw, off)
}

// Position returns the zero-based position of the entry in the index
func (e IndexEntry) Position() uint32 { return e.position }

// Type returns the resource type
func (e IndexEntry) Type() uint32 { return e.u32(format.EntryOffType) }

// Group returns the resource group
func (e IndexEntry) Group() uint32 { return e.u32(format.EntryOffGroup) }

// InstanceHigh returns the upper 32 bits of the instance
func (e IndexEntry) InstanceHigh() uint32 { return e.u32(format.EntryOffInstanceHigh) }

// InstanceLow returns the lower 32 bits of the instance
func (e IndexEntry) InstanceLow() uint32 { return e.u32(format.EntryOffInstanceLow) }

// Offset is the byte offset of the payload inside the archive
func (e IndexEntry) Offset() uint32 { return e.u32(format.EntryOffOffset) }

// FileSize is the payload size as stored (compressed)
func (e IndexEntry) FileSize() uint32 { return e.u32(format.EntryOffFileSize) }

// MemSize is the payload size once decompressed
func (e IndexEntry) MemSize() uint32 { return e.u32(format.EntryOffMemSize) }

// Compressed returns the raw compressed flag (0xFFFF when compressed)
func (e IndexEntry) Compressed() uint16 { return e.u16(format.EntryOffCompressed) }

// Unknown returns the trailing unused field
func (e IndexEntry) Unknown() uint16 { return e.u16(format.EntryOffUnknown) }

// Instance combines InstanceHigh and InstanceLow
func (e IndexEntry) Instance() uint64 {
	return uint64(e.InstanceHigh())<<32 | uint64(e.InstanceLow())
}

// Key returns the {type, group, instance} triple
func (e IndexEntry) Key() ResourceKey {
	return ResourceKey{Type: e.Type(), Group: e.Group(), Instance: e.Instance()}
}

// IsCompressed reports whether the compressed flag is set
func (e IndexEntry) IsCompressed() bool {
	return e.Compressed() != 0
}

// Bytes returns the raw 36 bytes of the record
func (e IndexEntry) Bytes() []byte {
	return e.raw
}

// Entry returns the index entry at position.
//
// Checks run in order: the archive must be loaded (ErrGeneral), in the 2.x
// family (ErrInvalidVersion), position must be below the entry count
// (ErrOutOfRange), and the record must lie inside the buffer
// (ErrInvalidFormat).
func (a *Archive) Entry(position uint32) (IndexEntry, error) {
	if !a.IsInitialized() {
		return IndexEntry{}, fmt.Errorf("entry %d: archive not loaded: %w", position, ErrGeneral)
	}
	h := Header{raw: a.header}
	if !h.IsVersion2x() {
		return IndexEntry{}, fmt.Errorf("entry %d: version %s index %s: %w",
			position, h.Version(), h.IndexVersion(), ErrInvalidVersion)
	}
	if count := h.IndexEntryCount(); position >= count {
		return IndexEntry{}, fmt.Errorf("entry %d: index has %d entries: %w", position, count, ErrOutOfRange)
	}

	start, end := format.EntryRange(h.IndexOffset(), position)
	raw, ok := a.slice(start, end)
	if !ok {
		return IndexEntry{}, fmt.Errorf("entry %d: bytes [%d, %d) past end of %d-byte archive: %w",
			position, start, end, len(a.data), ErrInvalidFormat)
	}

	return IndexEntry{position: position, raw: raw}, nil
}

// Entries returns every index entry in order. The first failing entry aborts.
func (a *Archive) Entries() ([]IndexEntry, error) {
	h, err := a.Header()
	if err != nil {
		return nil, err
	}
	if !h.IsVersion2x() {
		return nil, fmt.Errorf("entries: version %s index %s: %w", h.Version(), h.IndexVersion(), ErrInvalidVersion)
	}

	count := h.IndexEntryCount()
	// Do not trust the header count for the allocation
	if count > 0 {
		if _, end := format.EntryRange(h.IndexOffset(), count-1); end > uint64(len(a.data)) {
			return nil, fmt.Errorf("entries: %d entries do not fit in %d-byte archive: %w", count, len(a.data), ErrInvalidFormat)
		}
	}

	entries := make([]IndexEntry, 0, count)
	for i := uint32(0); i < count; i++ {
		e, err := a.Entry(i)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// IndexType returns the raw 32-bit tag stored at the index offset. Only a
// loaded archive is required; the version is not checked.
func (a *Archive) IndexType() (uint32, error) {
	h, err := a.Header()
	if err != nil {
		return 0, fmt.Errorf("index type: %w", err)
	}
	start := uint64(h.IndexOffset())
	raw, ok := a.slice(start, start+format.IndexTypeSize)
	if !ok {
		return 0, fmt.Errorf("index type: offset %d past end of %d-byte archive: %w", start, len(a.data), ErrInvalidFormat)
	}
	return format.Uint32At(raw, 0), nil
}

// Payload returns the raw stored bytes of the resource described by e:
// [Offset, Offset+FileSize). The bytes are not decompressed.
func (a *Archive) Payload(e IndexEntry) ([]byte, error) {
	if !a.IsInitialized() {
		return nil, fmt.Errorf("payload: archive not loaded: %w", ErrGeneral)
	}
	if len(e.raw) < IndexEntrySize {
		return nil, fmt.Errorf("payload: empty index entry: %w", ErrGeneral)
	}
	start := uint64(e.Offset())
	end := start + uint64(e.FileSize())
	raw, ok := a.slice(start, end)
	if !ok {
		return nil, fmt.Errorf("payload %s: bytes [%d, %d) past end of %d-byte archive: %w",
			e.Key(), start, end, len(a.data), ErrInvalidFormat)
	}
	return raw, nil
}
