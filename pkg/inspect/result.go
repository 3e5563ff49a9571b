// pkg/inspect/result.go
package inspect

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/creativeyann17/go-dbpf/internal/payloadstore"
	"github.com/creativeyann17/go-dbpf/pkg/dbpf"
)

// Result contains comprehensive verification results
type Result struct {
	// Archive metadata
	ArchivePath  string      // Path to the verified archive
	ArchiveSize  uint64      // Total archive size in bytes
	Family       dbpf.Family // Detected version family
	Version      dbpf.Version
	IndexVersion dbpf.Version
	IndexType    uint32

	// Header information
	HeaderValid  bool // Archive loaded and magic matched
	VersionValid bool // Archive is in the supported 2.x family

	// Index statistics
	EntryCount        uint32 // Entries declared by the header
	EntriesRead       int    // Entries successfully read
	TotalFileSize     uint64 // Sum of stored payload sizes
	TotalMemSize      uint64 // Sum of uncompressed payload sizes
	CompressedEntries int    // Entries with the compressed flag set
	EmptyEntries      int    // Entries with a zero-byte payload

	// Structural integrity
	IndexValid      bool // Every declared entry lies inside the archive
	PayloadsValid   bool // Every payload range lies inside the archive
	DuplicateKeys   int  // Entries whose key was already seen
	PayloadErrors   int  // Entries whose payload range is invalid
	SizeMismatches  int  // Uncompressed entries whose stored and memory sizes differ
	IndexTypeUnread bool // Index type tag lies outside the archive

	// Data integrity (only populated when VerifyData=true)
	DataVerified bool
	Dedup        payloadstore.Stats

	// Entry details (populated during verification)
	Entries []EntryInfo

	// Errors encountered during verification
	Errors []error
}

// EntryInfo contains information about a single index entry
type EntryInfo struct {
	Position    uint32
	Key         dbpf.ResourceKey
	Offset      uint32
	FileSize    uint32
	MemSize     uint32
	Compressed  bool
	Digest      payloadstore.Digest // Only set when VerifyData=true
	DuplicateOf int                 // Position of the first identical payload, -1 if unique
	Error       error
}

// CompressionRatio returns stored size over memory size as a percentage
func (r *Result) CompressionRatio() float64 {
	if r.TotalMemSize == 0 {
		return 0
	}
	return float64(r.TotalFileSize) / float64(r.TotalMemSize) * 100
}

// IsValid returns true if the archive passed all validation checks
func (r *Result) IsValid() bool {
	return r.HeaderValid && r.VersionValid && r.IndexValid && r.PayloadsValid &&
		len(r.Errors) == 0
}

// Success returns true if verification completed without critical errors
func (r *Result) Success() bool {
	return r.IsValid()
}

// Summary returns a human-readable summary of the verification result
func (r *Result) Summary() string {
	status := "VALID"
	if !r.IsValid() {
		status = "INVALID"
	}

	s := fmt.Sprintf("Archive: %s [%s]\n", r.ArchivePath, status)
	s += fmt.Sprintf("Format:  %s (version %s, index %s)\n", r.Family, r.Version, r.IndexVersion)
	s += fmt.Sprintf("Size:    %s\n", humanize.IBytes(r.ArchiveSize))
	s += fmt.Sprintf("Entries: %d/%d read\n", r.EntriesRead, r.EntryCount)

	if r.TotalMemSize > 0 {
		s += fmt.Sprintf("Stored:       %s\n", humanize.IBytes(r.TotalFileSize))
		s += fmt.Sprintf("Uncompressed: %s (%.1f%% ratio)\n",
			humanize.IBytes(r.TotalMemSize), r.CompressionRatio())
	}
	if r.CompressedEntries > 0 {
		s += fmt.Sprintf("Compressed entries: %d\n", r.CompressedEntries)
	}
	if r.DuplicateKeys > 0 {
		s += fmt.Sprintf("Duplicate keys:     %d\n", r.DuplicateKeys)
	}
	if r.SizeMismatches > 0 {
		s += fmt.Sprintf("Size mismatches:    %d (uncompressed entries)\n", r.SizeMismatches)
	}

	if r.DataVerified {
		s += "\nPayload Info:\n"
		s += fmt.Sprintf("  Unique:     %d payloads\n", r.Dedup.UniquePayloads)
		s += fmt.Sprintf("  Duplicates: %d (%s)\n", r.Dedup.DuplicatePayloads, humanize.IBytes(r.Dedup.BytesDuplicated))
		if r.Dedup.DuplicateRatio() > 0 {
			s += fmt.Sprintf("  Dup Ratio:  %.1f%%\n", r.Dedup.DuplicateRatio())
		}
	}

	if len(r.Errors) > 0 {
		s += fmt.Sprintf("\nErrors (%d):\n", len(r.Errors))
		for i, err := range r.Errors {
			if i >= 10 {
				s += fmt.Sprintf("  ... and %d more errors\n", len(r.Errors)-10)
				break
			}
			s += fmt.Sprintf("  - %v\n", err)
		}
	}

	return s
}
