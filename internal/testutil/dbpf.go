// Package testutil builds synthetic DBPF archives for tests.
package testutil

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/creativeyann17/go-dbpf/internal/format"
)

// TestEntry holds data for one resource of a test archive.
type TestEntry struct {
	Type       uint32
	Group      uint32
	Instance   uint64
	Payload    []byte
	MemSize    uint32
	Compressed uint16
	Unknown    uint16
}

// TestArchive describes a test archive. The zero value has all versions set
// to 0; use Archive2x for a valid 2.x archive.
type TestArchive struct {
	MajorVersion      uint32
	MinorVersion      uint32
	IndexMajorVersion uint32
	IndexMinorVersion uint32
	DateCreated       uint32
	DateModified      uint32
	IndexType         uint32
	Entries           []TestEntry
}

// Archive2x returns a 2.1 archive with index version 0.3 holding entries.
func Archive2x(entries ...TestEntry) TestArchive {
	return TestArchive{
		MajorVersion:      format.Version2xMajor,
		MinorVersion:      format.Version2xMinor,
		IndexMajorVersion: format.Version2xIndexMajor,
		IndexMinorVersion: format.Version2xIndexMinor,
		DateCreated:       1262304000,
		DateModified:      1293840000,
		Entries:           entries,
	}
}

// Build lays the archive out as header, payloads, index type tag, entries.
func Build(tb testing.TB, a TestArchive) []byte {
	tb.Helper()

	payloadSize := 0
	for _, e := range a.Entries {
		payloadSize += len(e.Payload)
	}
	indexOffset := format.HeaderSize + payloadSize
	indexSize := format.IndexTypeSize + len(a.Entries)*format.IndexEntrySize2x

	data := make([]byte, indexOffset+indexSize)
	copy(data, format.ArchiveMagic)
	PutUint32(data, format.OffMajorVersion, a.MajorVersion)
	PutUint32(data, format.OffMinorVersion, a.MinorVersion)
	PutUint32(data, format.OffDateCreated, a.DateCreated)
	PutUint32(data, format.OffDateModified, a.DateModified)
	PutUint32(data, format.OffIndexMajorVersion, a.IndexMajorVersion)
	PutUint32(data, format.OffIndexEntryCount, uint32(len(a.Entries)))
	PutUint32(data, format.OffIndexFirstEntryOffset, uint32(indexOffset+format.IndexTypeSize))
	PutUint32(data, format.OffIndexSize, uint32(len(a.Entries)*format.IndexEntrySize2x))
	PutUint32(data, format.OffIndexMinorVersion, a.IndexMinorVersion)
	PutUint32(data, format.OffIndexOffset, uint32(indexOffset))

	offset := format.HeaderSize
	entryPos := indexOffset + format.IndexTypeSize
	PutUint32(data, indexOffset, a.IndexType)
	for _, e := range a.Entries {
		copy(data[offset:], e.Payload)

		memSize := e.MemSize
		if memSize == 0 {
			memSize = uint32(len(e.Payload))
		}
		PutUint32(data, entryPos+format.EntryOffType, e.Type)
		PutUint32(data, entryPos+format.EntryOffGroup, e.Group)
		PutUint32(data, entryPos+format.EntryOffInstanceHigh, uint32(e.Instance>>32))
		PutUint32(data, entryPos+format.EntryOffInstanceLow, uint32(e.Instance))
		PutUint32(data, entryPos+format.EntryOffOffset, uint32(offset))
		PutUint32(data, entryPos+format.EntryOffFileSize, uint32(len(e.Payload)))
		PutUint32(data, entryPos+format.EntryOffMemSize, memSize)
		binary.LittleEndian.PutUint16(data[entryPos+format.EntryOffCompressed:], e.Compressed)
		binary.LittleEndian.PutUint16(data[entryPos+format.EntryOffUnknown:], e.Unknown)

		offset += len(e.Payload)
		entryPos += format.IndexEntrySize2x
	}

	return data
}

// PutUint32 writes v little-endian at off.
func PutUint32(data []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(data[off:], v)
}

// WriteFile writes data to name inside a fresh temp dir and returns the path.
func WriteFile(tb testing.TB, name string, data []byte) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteArchive builds a and writes it to a temp file.
func WriteArchive(tb testing.TB, a TestArchive) string {
	tb.Helper()
	return WriteFile(tb, "test.package", Build(tb, a))
}

// SampleEntries returns n entries with distinct keys and payloads.
func SampleEntries(n int) []TestEntry {
	entries := make([]TestEntry, n)
	for i := range entries {
		payload := make([]byte, 16+i)
		for j := range payload {
			payload[j] = byte(i*31 + j)
		}
		entries[i] = TestEntry{
			Type:     0x0166038C + uint32(i%3),
			Group:    uint32(i),
			Instance: 0x1000000000000000 | uint64(i),
			Payload:  payload,
		}
	}
	return entries
}
