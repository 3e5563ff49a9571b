// pkg/extract/progress.go
package extract

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/creativeyann17/go-dbpf/pkg/dbpf"
)

// TypeLabel names a resource type for display: the hex type, followed by its
// short name when the type is known
func TypeLabel(t uint32) string {
	if name := dbpf.TypeName(t); name != "" {
		return fmt.Sprintf("%08X %s", t, name)
	}
	return fmt.Sprintf("%08X", t)
}

// ProgressBarCallback creates a progress callback that displays one bar per
// resource type plus a payload byte bar.
// Returns the callback function and the progress container (call Wait() after extraction)
func ProgressBarCallback() (ProgressCallback, *mpb.Progress) {
	progress := mpb.New(
		mpb.WithWidth(50),
		mpb.WithRefreshRate(100*time.Millisecond),
	)

	// Bars are created on EventStart, before any worker runs, and only read
	// afterwards
	typeBars := make(map[uint32]*mpb.Bar)
	var bytesBar *mpb.Bar

	finish := func(event ProgressEvent) {
		if bar, ok := typeBars[event.ResourceType]; ok {
			bar.Increment()
		}
		if bytesBar != nil {
			bytesBar.IncrInt64(event.Total)
		}
	}

	callback := func(event ProgressEvent) {
		switch event.Type {
		case EventStart:
			types := make([]uint32, 0, len(event.TypeTotals))
			for t := range event.TypeTotals {
				types = append(types, t)
			}
			slices.Sort(types)

			for _, t := range types {
				typeBars[t] = progress.AddBar(event.TypeTotals[t],
					mpb.PrependDecorators(
						decor.Name(TypeLabel(t), decor.WC{C: decor.DindentRight | decor.DextraSpace, W: 20}),
						decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
					),
					mpb.AppendDecorators(
						decor.Percentage(decor.WC{W: 5}),
					),
				)
			}

			// A zero total would never complete
			if event.TotalBytes > 0 {
				bytesBar = progress.AddBar(int64(event.TotalBytes),
					mpb.PrependDecorators(
						decor.Name("Payloads", decor.WC{C: decor.DindentRight | decor.DextraSpace, W: 20}),
						decor.CountersKibiByte("% .1f / % .1f", decor.WCSyncWidth),
					),
					mpb.AppendDecorators(
						decor.Percentage(decor.WC{W: 5}),
					),
					mpb.BarPriority(1000), // High priority = bottom
				)
			}

		case EventResourceComplete, EventError:
			finish(event)

		case EventComplete:
			// Cancelled or failed runs leave bars short of their total.
			// Abort is a no-op on completed bars.
			for _, bar := range typeBars {
				bar.Abort(false)
			}
			if bytesBar != nil {
				bytesBar.Abort(false)
			}
		}
	}

	return callback, progress
}

// FormatSummary formats an extract result into a human-readable summary string
func FormatSummary(result *Result, opts *Options) string {
	var sb strings.Builder

	if len(result.Errors) > 0 {
		fmt.Fprintf(&sb, "Completed with %d errors:\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Fprintf(&sb, "  - %v\n", e)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Summary:\n")
	fmt.Fprintf(&sb, "  Resources extracted: %d / %d\n", result.EntriesProcessed, result.EntriesTotal-result.EntriesExcluded)
	if result.EntriesExcluded > 0 {
		fmt.Fprintf(&sb, "  Resources excluded:  %d\n", result.EntriesExcluded)
	}
	if result.DuplicateKeys > 0 {
		fmt.Fprintf(&sb, "  Duplicate keys:      %d (written with a -<position> suffix)\n", result.DuplicateKeys)
	}
	fmt.Fprintf(&sb, "  Payload size:        %s\n", humanize.IBytes(result.StoredSize))
	if opts.Compression != CodecNone {
		fmt.Fprintf(&sb, "  Written size:        %s (%s, %.1f%%)\n",
			humanize.IBytes(result.WrittenSize), opts.Compression, result.CompressionRatio())
	}

	if opts.DryRun {
		sb.WriteString("\nDry run complete - no data written.\n")
	}

	return sb.String()
}
