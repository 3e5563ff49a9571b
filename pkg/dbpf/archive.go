// pkg/dbpf/archive.go
package dbpf

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/creativeyann17/go-dbpf/internal/format"
)

// Archive is a DBPF archive loaded entirely into memory.
//
// An Archive is either loaded (data, header and path are all set) or reset
// (all of them are empty). The buffer is never modified after loading, so any
// number of goroutines may read from a loaded Archive concurrently. Close must
// not run while other calls on the same Archive are in flight.
//
// Headers, index entries and payloads returned by an Archive are sub-slices of
// its buffer and are never copied.
type Archive struct {
	path   string
	data   []byte
	header []byte
}

// Open reads the file at path into memory and validates the DBPF header.
func Open(path string) (*Archive, error) {
	if path == "" {
		return nil, fmt.Errorf("open archive: empty path: %w", ErrGeneral)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w: %w", ErrIO, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat archive: %w: %w", ErrIO, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("open archive: %s is a directory: %w", path, ErrIO)
	}

	data := make([]byte, stat.Size())
	if _, err := io.ReadFull(f, data); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read archive: short read: %w", ErrInvalidFormat)
		}
		return nil, fmt.Errorf("read archive: %w: %w", ErrIO, err)
	}

	return Load(path, data)
}

// Load validates data as a DBPF archive and takes ownership of it. The path is
// only kept for diagnostics and must not be empty.
func Load(path string, data []byte) (*Archive, error) {
	if path == "" {
		return nil, fmt.Errorf("load archive: empty path: %w", ErrGeneral)
	}
	if len(data) < format.HeaderSize {
		return nil, fmt.Errorf("load archive: %d bytes, need at least %d: %w",
			len(data), format.HeaderSize, ErrInvalidFormat)
	}
	if !format.HasMagic(data) {
		return nil, fmt.Errorf("load archive: invalid magic: expected %q, got %q: %w",
			format.ArchiveMagic, data[:format.MagicSize], ErrInvalidFormat)
	}

	return &Archive{
		path:   path,
		data:   data,
		header: data[:format.HeaderSize:format.HeaderSize],
	}, nil
}

// Close releases the buffer and resets the archive. Closing a reset or nil
// archive is a no-op.
func (a *Archive) Close() error {
	if a == nil {
		return nil
	}
	a.path = ""
	a.data = nil
	a.header = nil
	return nil
}

// IsInitialized reports whether the archive is loaded
func (a *Archive) IsInitialized() bool {
	return a != nil && len(a.data) > 0 && a.header != nil && a.path != ""
}

// Path returns the source path, or "" for a reset archive
func (a *Archive) Path() string {
	if !a.IsInitialized() {
		return ""
	}
	return a.path
}

// Size returns the buffer length in bytes, or 0 for a reset archive
func (a *Archive) Size() int {
	if !a.IsInitialized() {
		return 0
	}
	return len(a.data)
}

// Header returns the header view
func (a *Archive) Header() (Header, error) {
	if !a.IsInitialized() {
		return Header{}, fmt.Errorf("header: archive not loaded: %w", ErrGeneral)
	}
	return Header{raw: a.header}, nil
}

// IsVersionValid reports whether the archive is loaded and belongs to the 2.x
// version family, whose index layout Entry understands.
func (a *Archive) IsVersionValid() bool {
	if !a.IsInitialized() {
		return false
	}
	return Header{raw: a.header}.IsVersion2x()
}

// Family returns the detected version family
func (a *Archive) Family() Family {
	if !a.IsInitialized() {
		return FamilyUnknown
	}
	return format.DetectFormat(a.header)
}

// slice returns data[start:end] if the range lies inside the buffer
func (a *Archive) slice(start, end uint64) ([]byte, bool) {
	if !format.InBounds(start, end, len(a.data)) {
		return nil, false
	}
	return a.data[start:end:end], true
}
