// pkg/inspect/inspect.go
package inspect

import (
	"fmt"

	"github.com/creativeyann17/go-dbpf/internal/payloadstore"
	"github.com/creativeyann17/go-dbpf/pkg/dbpf"
)

// ProgressCallback is called for progress updates during verification
type ProgressCallback func(event ProgressEvent)

// ProgressEvent contains progress information
type ProgressEvent struct {
	Type    EventType
	Key     string
	Current int
	Total   int
	Message string
}

// EventType indicates the type of progress event
type EventType int

const (
	EventStart EventType = iota
	EventEntryVerify
	EventComplete
	EventError
)

// Verify loads an archive and checks its index and payload ranges.
//
// A nil Result with an error means the archive could not be read at all.
// Otherwise the Result is always returned and IsValid reports the outcome.
func Verify(opts *Options, progressCb ProgressCallback) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	a, err := dbpf.Open(opts.InputPath)
	if err != nil {
		switch dbpf.KindOf(err) {
		case dbpf.KindInvalidFormat:
			result := &Result{ArchivePath: opts.InputPath}
			result.Errors = append(result.Errors, err)
			return result, ErrInvalidHeader
		default:
			return nil, err
		}
	}
	defer a.Close()

	return VerifyArchive(a, opts.VerifyData, progressCb)
}

// VerifyArchive runs the checks of Verify on an already loaded archive
func VerifyArchive(a *dbpf.Archive, verifyData bool, progressCb ProgressCallback) (*Result, error) {
	h, err := a.Header()
	if err != nil {
		return nil, err
	}

	result := &Result{
		ArchivePath:  a.Path(),
		ArchiveSize:  uint64(a.Size()),
		Family:       a.Family(),
		Version:      h.Version(),
		IndexVersion: h.IndexVersion(),
		EntryCount:   h.IndexEntryCount(),
		HeaderValid:  true,
	}

	if indexType, err := a.IndexType(); err != nil {
		result.IndexTypeUnread = true
		result.Errors = append(result.Errors, err)
	} else {
		result.IndexType = indexType
	}

	if !a.IsVersionValid() {
		result.Errors = append(result.Errors, fmt.Errorf("%w: version %s, index %s",
			ErrUnsupportedVersion, result.Version, result.IndexVersion))
		return result, ErrUnsupportedVersion
	}
	result.VersionValid = true
	result.IndexValid = true
	result.PayloadsValid = true

	if progressCb != nil {
		progressCb(ProgressEvent{
			Type:    EventStart,
			Total:   int(result.EntryCount),
			Message: fmt.Sprintf("Verifying %d entries", result.EntryCount),
		})
	}

	seenKeys := make(map[dbpf.ResourceKey]uint32)
	var store *payloadstore.Store
	if verifyData {
		store = payloadstore.NewStore()
		result.DataVerified = true
	}

	for i := uint32(0); i < result.EntryCount; i++ {
		entry, err := a.Entry(i)
		if err != nil {
			// Later positions lie even further past the end
			result.IndexValid = false
			result.Errors = append(result.Errors, fmt.Errorf("%w: %w", ErrInvalidIndex, err))
			if progressCb != nil {
				progressCb(ProgressEvent{Type: EventError, Current: int(i), Total: int(result.EntryCount)})
			}
			break
		}
		result.EntriesRead++

		key := entry.Key()
		info := EntryInfo{
			Position:    i,
			Key:         key,
			Offset:      entry.Offset(),
			FileSize:    entry.FileSize(),
			MemSize:     entry.MemSize(),
			Compressed:  entry.IsCompressed(),
			DuplicateOf: -1,
		}

		if first, exists := seenKeys[key]; exists {
			result.DuplicateKeys++
			result.Errors = append(result.Errors, fmt.Errorf("%w: %s at positions %d and %d",
				ErrDuplicateKey, key, first, i))
		} else {
			seenKeys[key] = i
		}

		result.TotalFileSize += uint64(info.FileSize)
		result.TotalMemSize += uint64(info.MemSize)
		if info.Compressed {
			result.CompressedEntries++
		} else if info.FileSize != info.MemSize {
			result.SizeMismatches++
		}
		if info.FileSize == 0 {
			result.EmptyEntries++
		}

		payload, err := a.Payload(entry)
		if err != nil {
			info.Error = err
			result.PayloadErrors++
			result.PayloadsValid = false
			result.Errors = append(result.Errors, fmt.Errorf("%w: %w", ErrPayloadOutOfBounds, err))
		} else if store != nil {
			info.Digest = payloadstore.Sum(payload)
			if first, isNew := store.GetOrAdd(info.Digest, i, uint64(len(payload))); !isNew {
				info.DuplicateOf = int(first.Position)
			}
		}

		if progressCb != nil {
			progressCb(ProgressEvent{
				Type:    EventEntryVerify,
				Key:     key.String(),
				Current: int(i) + 1,
				Total:   int(result.EntryCount),
			})
		}

		result.Entries = append(result.Entries, info)
	}

	if store != nil {
		result.Dedup = store.Stats()
	}

	if progressCb != nil {
		progressCb(ProgressEvent{
			Type:    EventComplete,
			Current: result.EntriesRead,
			Total:   int(result.EntryCount),
		})
	}

	return result, nil
}
