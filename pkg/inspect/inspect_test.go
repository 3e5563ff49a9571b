// pkg/inspect/inspect_test.go
package inspect_test

import (
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/creativeyann17/go-dbpf/internal/format"
	"github.com/creativeyann17/go-dbpf/internal/testutil"
	"github.com/creativeyann17/go-dbpf/pkg/dbpf"
	"github.com/creativeyann17/go-dbpf/pkg/inspect"
)

// TestVerifyValid tests verification of a well-formed 2.x archive
func TestVerifyValid(t *testing.T) {
	entries := testutil.SampleEntries(6)
	entries[1].Compressed = 0xFFFF
	entries[1].MemSize = 1000
	archivePath := testutil.WriteArchive(t, testutil.Archive2x(entries...))

	t.Run("StructuralValidation", func(t *testing.T) {
		var events []inspect.ProgressEvent
		result, err := inspect.Verify(&inspect.Options{InputPath: archivePath}, func(e inspect.ProgressEvent) {
			events = append(events, e)
		})
		if err != nil {
			t.Fatalf("Verification failed: %v", err)
		}

		if !result.IsValid() {
			t.Errorf("Archive should be valid, errors: %v", result.Errors)
		}
		if result.Family != dbpf.FamilyMajor2 {
			t.Errorf("Expected major 2 family, got %s", result.Family)
		}
		if result.EntriesRead != 6 {
			t.Errorf("Expected 6 entries read, got %d", result.EntriesRead)
		}
		if result.CompressedEntries != 1 {
			t.Errorf("Expected 1 compressed entry, got %d", result.CompressedEntries)
		}
		if result.DataVerified {
			t.Error("DataVerified should be false")
		}
		// start + 6 entries + complete
		if len(events) != 8 {
			t.Errorf("Expected 8 progress events, got %d", len(events))
		}
		if !strings.Contains(result.Summary(), "[VALID]") {
			t.Errorf("Summary should report VALID:\n%s", result.Summary())
		}
	})

	t.Run("DataValidation", func(t *testing.T) {
		result, err := inspect.Verify(&inspect.Options{InputPath: archivePath, VerifyData: true}, nil)
		if err != nil {
			t.Fatalf("Verification failed: %v", err)
		}
		if !result.DataVerified {
			t.Error("DataVerified should be true")
		}
		if result.Dedup.UniquePayloads != 6 {
			t.Errorf("Expected 6 unique payloads, got %d", result.Dedup.UniquePayloads)
		}
		for _, e := range result.Entries {
			if e.DuplicateOf != -1 {
				t.Errorf("Entry %d should not be a duplicate", e.Position)
			}
		}
	})
}

func TestVerifyDuplicates(t *testing.T) {
	entries := testutil.SampleEntries(3)
	entries[2].Payload = entries[0].Payload
	entries[1].Type, entries[1].Group, entries[1].Instance = entries[0].Type, entries[0].Group, entries[0].Instance
	archivePath := testutil.WriteArchive(t, testutil.Archive2x(entries...))

	result, err := inspect.Verify(&inspect.Options{InputPath: archivePath, VerifyData: true}, nil)
	if err != nil {
		t.Fatalf("Verification failed: %v", err)
	}
	if result.DuplicateKeys != 1 {
		t.Errorf("Expected 1 duplicate key, got %d", result.DuplicateKeys)
	}
	if !errors.Is(result.Errors[0], inspect.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", result.Errors[0])
	}
	if result.IsValid() {
		t.Error("Archive with duplicate keys should be invalid")
	}
	if result.Entries[2].DuplicateOf != 0 {
		t.Errorf("Expected entry 2 to duplicate entry 0, got %d", result.Entries[2].DuplicateOf)
	}
	if result.Dedup.DuplicatePayloads != 1 {
		t.Errorf("Expected 1 duplicate payload, got %d", result.Dedup.DuplicatePayloads)
	}
}

func TestVerifyCorrupt(t *testing.T) {
	t.Run("BadMagic", func(t *testing.T) {
		data := testutil.Build(t, testutil.Archive2x())
		copy(data, "NOPE")
		path := testutil.WriteFile(t, "bad.package", data)

		result, err := inspect.Verify(&inspect.Options{InputPath: path}, nil)
		if !errors.Is(err, inspect.ErrInvalidHeader) {
			t.Fatalf("Expected ErrInvalidHeader, got %v", err)
		}
		if result == nil || result.IsValid() {
			t.Fatal("Expected an invalid result")
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		result, err := inspect.Verify(&inspect.Options{InputPath: t.TempDir() + "/none.package"}, nil)
		if !errors.Is(err, dbpf.ErrIO) {
			t.Fatalf("Expected ErrIO, got %v", err)
		}
		if result != nil {
			t.Error("Expected nil result")
		}
	})

	t.Run("UnsupportedVersion", func(t *testing.T) {
		ta := testutil.Archive2x(testutil.SampleEntries(2)...)
		ta.MajorVersion = 1
		path := testutil.WriteArchive(t, ta)

		result, err := inspect.Verify(&inspect.Options{InputPath: path}, nil)
		if !errors.Is(err, inspect.ErrUnsupportedVersion) {
			t.Fatalf("Expected ErrUnsupportedVersion, got %v", err)
		}
		if !result.HeaderValid || result.VersionValid {
			t.Error("Header should be valid and version invalid")
		}
	})

	t.Run("TruncatedIndex", func(t *testing.T) {
		data := testutil.Build(t, testutil.Archive2x(testutil.SampleEntries(3)...))
		testutil.PutUint32(data, format.OffIndexEntryCount, 10)
		path := testutil.WriteFile(t, "truncated.package", data)

		result, err := inspect.Verify(&inspect.Options{InputPath: path}, nil)
		if err != nil {
			t.Fatalf("Verification failed: %v", err)
		}
		if result.IndexValid {
			t.Error("Index should be invalid")
		}
		if result.EntriesRead != 3 {
			t.Errorf("Expected 3 entries read, got %d", result.EntriesRead)
		}
		if !errors.Is(result.Errors[0], dbpf.ErrInvalidFormat) {
			t.Errorf("Expected wrapped ErrInvalidFormat, got %v", result.Errors[0])
		}
	})

	t.Run("PayloadOutOfBounds", func(t *testing.T) {
		data := testutil.Build(t, testutil.Archive2x(testutil.SampleEntries(2)...))
		indexOffset := int(binary.LittleEndian.Uint32(data[format.OffIndexOffset:]))
		testutil.PutUint32(data, indexOffset+4+format.IndexEntrySize2x+format.EntryOffOffset, 0xFFFFFF00)
		path := testutil.WriteFile(t, "payload.package", data)

		result, err := inspect.Verify(&inspect.Options{InputPath: path}, nil)
		if err != nil {
			t.Fatalf("Verification failed: %v", err)
		}
		if result.PayloadsValid || result.PayloadErrors != 1 {
			t.Errorf("Expected 1 payload error, got %d", result.PayloadErrors)
		}
		if result.Entries[1].Error == nil {
			t.Error("Entry 1 should carry its payload error")
		}
	})
}

func TestOptionsValidate(t *testing.T) {
	opts := &inspect.Options{}
	if err := opts.Validate(); !errors.Is(err, inspect.ErrInputRequired) {
		t.Errorf("Expected ErrInputRequired, got %v", err)
	}

	opts = &inspect.Options{InputPath: "x", Verbose: true, Quiet: true}
	if err := opts.Validate(); err != nil {
		t.Fatal(err)
	}
	if opts.Verbose {
		t.Error("Quiet should override Verbose")
	}
}
