// pkg/extract/result.go
package extract

// Result contains statistics about the extract operation
type Result struct {
	// Total number of entries in the archive index
	EntriesTotal int

	// Number of resources written (or measured in dry-run mode)
	EntriesProcessed int

	// Number of resources skipped by exclude patterns
	EntriesExcluded int

	// Number of resources whose key was already taken by an earlier entry.
	// They are written under DuplicateName.
	DuplicateKeys int

	// Total payload bytes read from the archive
	StoredSize uint64

	// Total bytes written to disk (after optional compression)
	WrittenSize uint64

	// List of errors encountered (non-fatal)
	Errors []error
}

// Success returns true if all selected resources were written without errors
func (r *Result) Success() bool {
	return len(r.Errors) == 0 && r.EntriesProcessed+r.EntriesExcluded == r.EntriesTotal
}

// CompressionRatio returns written size over stored size as a percentage
func (r *Result) CompressionRatio() float64 {
	if r.StoredSize == 0 {
		return 0
	}
	return float64(r.WrittenSize) / float64(r.StoredSize) * 100
}
