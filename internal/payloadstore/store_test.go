// internal/payloadstore/store_test.go
package payloadstore

import (
	"fmt"
	"sync"
	"testing"
)

func TestStoreBasic(t *testing.T) {
	store := NewStore()

	d1 := Sum([]byte("first payload"))
	d2 := Sum([]byte("second payload"))

	info1, isNew := store.GetOrAdd(d1, 0, 13)
	if !isNew {
		t.Error("First payload should be new")
	}
	if info1.Digest != d1 {
		t.Error("Digest mismatch")
	}

	if _, isNew := store.GetOrAdd(d2, 1, 14); !isNew {
		t.Error("Second payload should be new")
	}

	info3, isNew := store.GetOrAdd(d1, 5, 13)
	if isNew {
		t.Error("Duplicate payload should not be new")
	}
	if info3.Position != 0 {
		t.Errorf("Expected first position 0, got %d", info3.Position)
	}

	stats := store.Stats()
	if stats.TotalPayloads != 3 {
		t.Errorf("Expected 3 total payloads, got %d", stats.TotalPayloads)
	}
	if stats.UniquePayloads != 2 {
		t.Errorf("Expected 2 unique payloads, got %d", stats.UniquePayloads)
	}
	if stats.DuplicatePayloads != 1 {
		t.Errorf("Expected 1 duplicate, got %d", stats.DuplicatePayloads)
	}
	if stats.BytesDuplicated != 13 {
		t.Errorf("Expected 13 duplicated bytes, got %d", stats.BytesDuplicated)
	}
}

func TestStoreConcurrent(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for w := 0; w < 10; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				// Half the payloads are shared between workers
				content := fmt.Sprintf("payload-%d", i)
				if i%2 == 1 {
					content = fmt.Sprintf("payload-%d-%d", worker, i)
				}
				store.GetOrAdd(Sum([]byte(content)), uint32(i), uint64(len(content)))
			}
		}(w)
	}
	wg.Wait()

	stats := store.Stats()
	if stats.TotalPayloads != 1000 {
		t.Errorf("Expected 1000 payloads, got %d", stats.TotalPayloads)
	}
	// 50 shared + 10 workers * 50 private
	if stats.UniquePayloads != 550 {
		t.Errorf("Expected 550 unique payloads, got %d", stats.UniquePayloads)
	}
	if stats.UniquePayloads+stats.DuplicatePayloads != stats.TotalPayloads {
		t.Error("Unique + duplicate should equal total")
	}
}

func TestDigestString(t *testing.T) {
	d := Sum(nil)
	if len(d.String()) != 64 {
		t.Errorf("Expected 64 hex chars, got %d", len(d.String()))
	}
	if d.Short() != d.String()[:16] {
		t.Error("Short should be a prefix of String")
	}
	if (Stats{}).DuplicateRatio() != 0 {
		t.Error("Empty stats should have zero ratio")
	}
}
