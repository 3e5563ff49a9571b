// pkg/extract/extract.go
package extract

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"
	ignore "github.com/sabhiram/go-gitignore"
	"github.com/ulikunitz/xz"
	"golang.org/x/sync/errgroup"

	"github.com/creativeyann17/go-dbpf/pkg/dbpf"
)

// ProgressCallback is called for various progress events
type ProgressCallback func(event ProgressEvent)

// ProgressEvent contains progress information
type ProgressEvent struct {
	Type         EventType
	Name         string
	ResourceType uint32 // DBPF type of the resource, per-resource events only
	Current      int64
	Total        int64
	CurrentBytes uint64
	TotalBytes   uint64
	WrittenSize  uint64

	// Selected resources per DBPF type, EventStart only
	TypeTotals map[uint32]int64
}

// EventType indicates the type of progress event
type EventType int

const (
	EventStart EventType = iota
	EventResourceStart
	EventResourceProgress
	EventResourceComplete
	EventComplete
	EventError
)

// progressStep is the payload slice size between EventResourceProgress events
const progressStep = 64 * 1024

// ResourceName returns the slash-separated output name of an entry, without
// codec extension: TTTTTTTT/GGGGGGGG-IIIIIIIIIIIIIIII.bin
func ResourceName(e dbpf.IndexEntry) string {
	return fmt.Sprintf("%08X/%08X-%016X.bin", e.Type(), e.Group(), e.Instance())
}

// DuplicateName returns the output name used for an entry whose key was
// already taken by an earlier position: TTTTTTTT/GGGGGGGG-IIIIIIIIIIIIIIII-P.bin
func DuplicateName(e dbpf.IndexEntry) string {
	return fmt.Sprintf("%08X/%08X-%016X-%d.bin", e.Type(), e.Group(), e.Instance(), e.Position())
}

// nameTracker records output names already claimed by a resource
type nameTracker map[string]struct{}

// claim marks name as taken and reports whether it was free
func (t nameTracker) claim(name string) bool {
	if _, taken := t[name]; taken {
		return false
	}
	t[name] = struct{}{}
	return true
}

type task struct {
	entry dbpf.IndexEntry
	name  string
}

// Extract writes the raw payload of every index entry of the archive at
// opts.InputPath to its own file under opts.OutputPath.
func Extract(ctx context.Context, opts *Options, progressCb ProgressCallback) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	a, err := dbpf.Open(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer a.Close()

	return ExtractArchive(ctx, a, opts, progressCb)
}

// ExtractArchive extracts from an already loaded archive. opts.InputPath is
// ignored. The archive must not be closed before ExtractArchive returns.
//
// Entries sharing a resource key are all written: the first keeps the
// ResourceName, later ones get DuplicateName.
func ExtractArchive(ctx context.Context, a *dbpf.Archive, opts *Options, progressCb ProgressCallback) (*Result, error) {
	if opts.InputPath == "" {
		opts.InputPath = a.Path()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	entries, err := a.Entries()
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}

	result := &Result{EntriesTotal: len(entries)}

	var matcher *ignore.GitIgnore
	if len(opts.Exclude) > 0 {
		matcher = ignore.CompileIgnoreLines(opts.Exclude...)
	}

	names := nameTracker{}
	typeTotals := make(map[uint32]int64)
	var totalBytes uint64
	selected := make([]task, 0, len(entries))
	for _, e := range entries {
		name := ResourceName(e)
		if matcher != nil && matcher.MatchesPath(name) {
			result.EntriesExcluded++
			continue
		}
		if !names.claim(name) {
			name = DuplicateName(e)
			names.claim(name)
			result.DuplicateKeys++
		}
		typeTotals[e.Type()]++
		totalBytes += uint64(e.FileSize())
		selected = append(selected, task{entry: e, name: name + opts.Compression.Extension()})
	}

	if progressCb != nil {
		progressCb(ProgressEvent{
			Type:       EventStart,
			Total:      int64(len(selected)),
			TotalBytes: totalBytes,
			TypeTotals: typeTotals,
		})
		// Always close the stream so bar renderers can finish
		defer func() {
			progressCb(ProgressEvent{
				Type:        EventComplete,
				Current:     int64(result.EntriesProcessed),
				Total:       int64(len(selected)),
				TotalBytes:  result.StoredSize,
				WrittenSize: result.WrittenSize,
			})
		}()
	}

	if !opts.DryRun {
		if err := os.MkdirAll(opts.OutputPath, 0755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	var mu sync.Mutex
	tasks := make(chan task)
	eg, ctx := errgroup.WithContext(ctx)

	for i := 0; i < opts.MaxThreads; i++ {
		eg.Go(func() error {
			for t := range tasks {
				if err := ctx.Err(); err != nil {
					return err
				}

				e := t.entry
				if progressCb != nil {
					progressCb(ProgressEvent{
						Type:         EventResourceStart,
						Name:         t.name,
						ResourceType: e.Type(),
						Total:        int64(e.FileSize()),
					})
				}

				written, err := extractEntry(a, e, t.name, opts, progressCb)

				mu.Lock()
				if err != nil {
					result.Errors = append(result.Errors, fmt.Errorf("%s: %w", t.name, err))
				} else {
					result.EntriesProcessed++
					result.StoredSize += uint64(e.FileSize())
					result.WrittenSize += written
				}
				mu.Unlock()

				if progressCb != nil {
					event := ProgressEvent{
						Type:         EventResourceComplete,
						Name:         t.name,
						ResourceType: e.Type(),
						Current:      int64(e.FileSize()),
						Total:        int64(e.FileSize()),
						WrittenSize:  written,
					}
					if err != nil {
						event.Type = EventError
						event.Current = 0
					}
					progressCb(event)
				}
			}
			return nil
		})
	}

	eg.Go(func() error {
		defer close(tasks)
		for _, t := range selected {
			select {
			case tasks <- t:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return result, err
	}

	return result, nil
}

// extractEntry writes one payload and returns the number of bytes written
func extractEntry(a *dbpf.Archive, e dbpf.IndexEntry, name string, opts *Options, progressCb ProgressCallback) (uint64, error) {
	payload, err := a.Payload(e)
	if err != nil {
		return 0, err
	}

	if opts.DryRun {
		sink := &sinkWriter{}
		if err := encode(sink, payload, e.Type(), name, opts, progressCb); err != nil {
			return 0, err
		}
		return sink.written, nil
	}

	outPath := filepath.Join(opts.OutputPath, filepath.FromSlash(name))
	if !opts.Overwrite {
		if _, err := os.Stat(outPath); err == nil {
			return 0, ErrFileExists
		}
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return 0, fmt.Errorf("create directories: %w", err)
	}

	outFile, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("create output file: %w", err)
	}

	sink := &sinkWriter{dst: outFile}
	if err := encode(sink, payload, e.Type(), name, opts, progressCb); err != nil {
		outFile.Close()
		return 0, err
	}
	if err := outFile.Close(); err != nil {
		return 0, fmt.Errorf("close output file: %w", err)
	}

	return sink.written, nil
}

// encode writes payload to w through the configured codec, reporting
// progress every progressStep bytes of payload
func encode(w io.Writer, payload []byte, resourceType uint32, name string, opts *Options, progressCb ProgressCallback) error {
	enc, err := newEncoder(w, opts.Compression, opts.Level)
	if err != nil {
		return err
	}

	for off := 0; off < len(payload); {
		end := min(off+progressStep, len(payload))
		if _, err := enc.Write(payload[off:end]); err != nil {
			enc.Close()
			return fmt.Errorf("write payload: %w", err)
		}
		off = end

		if progressCb != nil {
			progressCb(ProgressEvent{
				Type:         EventResourceProgress,
				Name:         name,
				ResourceType: resourceType,
				Current:      int64(off),
				Total:        int64(len(payload)),
				CurrentBytes: uint64(off),
			})
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finish %s stream: %w", opts.Compression, err)
	}
	return nil
}

// newEncoder wraps w with the codec's stream writer
func newEncoder(w io.Writer, codec Codec, level int) (io.WriteCloser, error) {
	switch codec {
	case CodecZstd:
		enc, err := zstd.NewWriter(w,
			zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)),
			zstd.WithEncoderConcurrency(1),
			zstd.WithZeroFrames(true),
		)
		if err != nil {
			return nil, fmt.Errorf("create zstd encoder: %w", err)
		}
		return enc, nil

	case CodecXz:
		xzConfig := xz.WriterConfig{
			DictCap: 1 << (20 + level), // Scale dictionary with level
		}
		if level >= 7 {
			xzConfig.DictCap = 1 << 26 // 64MB for high levels
		}
		enc, err := xzConfig.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("create xz writer: %w", err)
		}
		return enc, nil

	default:
		return nopWriteCloser{w}, nil
	}
}
