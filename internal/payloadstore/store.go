// internal/payloadstore/store.go
package payloadstore

import (
	"encoding/hex"
	"sync"
	"sync/atomic"

	"github.com/zeebo/blake3"
)

// Digest is the BLAKE3-256 hash of a resource payload
type Digest [32]byte

// Sum hashes a payload
func Sum(payload []byte) Digest {
	return blake3.Sum256(payload)
}

// String returns the digest as lowercase hex
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Short returns the first 8 bytes of the digest as hex
func (d Digest) Short() string {
	return hex.EncodeToString(d[:8])
}

// PayloadInfo describes the first resource seen with a given digest
type PayloadInfo struct {
	Digest   Digest
	Position uint32 // Index position of the first resource with this payload
	Size     uint64
}

// Store tracks payload digests across an archive to find identical payloads.
// It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	payloads map[Digest]PayloadInfo

	// Statistics
	totalPayloads     atomic.Uint64
	uniquePayloads    atomic.Uint64
	duplicatePayloads atomic.Uint64
	bytesDuplicated   atomic.Uint64
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		payloads: make(map[Digest]PayloadInfo),
	}
}

// GetOrAdd records the payload at position. It returns the info of the first
// payload with the same digest and whether this one is new.
func (s *Store) GetOrAdd(digest Digest, position uint32, size uint64) (PayloadInfo, bool) {
	s.totalPayloads.Add(1)

	// Fast path: already seen (read lock)
	s.mu.RLock()
	if info, exists := s.payloads[digest]; exists {
		s.mu.RUnlock()
		s.duplicatePayloads.Add(1)
		s.bytesDuplicated.Add(size)
		return info, false
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check in case another goroutine added it
	if info, exists := s.payloads[digest]; exists {
		s.duplicatePayloads.Add(1)
		s.bytesDuplicated.Add(size)
		return info, false
	}

	info := PayloadInfo{Digest: digest, Position: position, Size: size}
	s.payloads[digest] = info
	s.uniquePayloads.Add(1)
	return info, true
}

// Stats returns deduplication statistics
func (s *Store) Stats() Stats {
	return Stats{
		TotalPayloads:     s.totalPayloads.Load(),
		UniquePayloads:    s.uniquePayloads.Load(),
		DuplicatePayloads: s.duplicatePayloads.Load(),
		BytesDuplicated:   s.bytesDuplicated.Load(),
	}
}

// Stats contains deduplication statistics
type Stats struct {
	TotalPayloads     uint64 // Total payloads recorded
	UniquePayloads    uint64 // Distinct digests
	DuplicatePayloads uint64 // Payloads identical to an earlier one
	BytesDuplicated   uint64 // Bytes stored more than once
}

// DuplicateRatio returns the share of duplicate payloads as a percentage
func (s Stats) DuplicateRatio() float64 {
	if s.TotalPayloads == 0 {
		return 0
	}
	return float64(s.DuplicatePayloads) / float64(s.TotalPayloads) * 100
}
