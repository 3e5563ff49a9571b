// pkg/inspect/report_test.go
package inspect_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/creativeyann17/go-dbpf/internal/format"
	"github.com/creativeyann17/go-dbpf/internal/testutil"
	"github.com/creativeyann17/go-dbpf/pkg/dbpf"
	"github.com/creativeyann17/go-dbpf/pkg/inspect"
)

func TestFormatInfo(t *testing.T) {
	ta := testutil.Archive2x(testutil.SampleEntries(4)...)
	ta.IndexType = 3
	a, err := dbpf.Load("sample.package", testutil.Build(t, ta))
	if err != nil {
		t.Fatal(err)
	}

	info, err := inspect.FormatInfo(a)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"sample.package",
		"2.1 (DBPF major 2, supported)",
		"Index version:             0.3",
		"Index entry count:         4",
		"Index entry size:          36",
		"Index type:                3",
		"2010-01-01 00:00:00",
	} {
		if !strings.Contains(info, want) {
			t.Errorf("Info missing %q:\n%s", want, info)
		}
	}
}

func TestFormatInfoUnsupportedMinor(t *testing.T) {
	ta := testutil.Archive2x(testutil.SampleEntries(2)...)
	ta.MinorVersion = 0
	a, err := dbpf.Load("old.package", testutil.Build(t, ta))
	if err != nil {
		t.Fatal(err)
	}

	info, err := inspect.FormatInfo(a)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(info, "2.0 (DBPF major 2, unsupported)") {
		t.Errorf("2.0 archive should be labelled unsupported:\n%s", info)
	}
	if strings.Contains(info, "2.x") {
		t.Errorf("2.0 archive should not be labelled 2.x:\n%s", info)
	}
}

func TestFormatInfoEmptyIndex(t *testing.T) {
	data := testutil.Build(t, testutil.Archive2x())
	// Index type tag beyond the end of the file
	testutil.PutUint32(data, format.OffIndexOffset, uint32(len(data)))
	a, err := dbpf.Load("empty.package", data)
	if err != nil {
		t.Fatal(err)
	}

	info, err := inspect.FormatInfo(a)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(info, "Index entry size:          n/a") {
		t.Errorf("Expected n/a entry size:\n%s", info)
	}
	if !strings.Contains(info, "Index type:                unreadable") {
		t.Errorf("Expected unreadable index type:\n%s", info)
	}
}

func TestFormatInfoClosed(t *testing.T) {
	a, err := dbpf.Load("closed.package", testutil.Build(t, testutil.Archive2x()))
	if err != nil {
		t.Fatal(err)
	}
	a.Close()

	if _, err := inspect.FormatInfo(a); !errors.Is(err, dbpf.ErrGeneral) {
		t.Errorf("Expected ErrGeneral, got %v", err)
	}
}

func TestFormatEntry(t *testing.T) {
	entries := []testutil.TestEntry{{
		Type:       dbpf.TypeThumbnail,
		Group:      0x00000001,
		Instance:   0x0000000200000003,
		Payload:    []byte("thumb"),
		MemSize:    0x20,
		Compressed: 0xFFFF,
	}}
	a, err := dbpf.Load("thumb.package", testutil.Build(t, testutil.Archive2x(entries...)))
	if err != nil {
		t.Fatal(err)
	}
	e, err := a.Entry(0)
	if err != nil {
		t.Fatal(err)
	}

	out := inspect.FormatEntry(e)
	for _, want := range []string{
		"Type:           0x3c1af1f2 (thumbnail)",
		"Instance high:  0x00000002",
		"Instance low:   0x00000003",
		"Offset:         0x00000060",
		"File size:      0x00000005",
		"Mem size:       0x00000020",
		"Compressed:     0xffff",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Entry output missing %q:\n%s", want, out)
		}
	}

	line := inspect.FormatEntryLine(e)
	if !strings.Contains(line, "3C1AF1F2-00000001-0000000200000003  C") {
		t.Errorf("Unexpected entry line: %q", line)
	}
}

func TestFormatStatus(t *testing.T) {
	if got := inspect.FormatStatus(nil); got != "DBPF status: Success" {
		t.Errorf("Unexpected status: %q", got)
	}
	if got := inspect.FormatStatus(dbpf.ErrOutOfRange); got != "DBPF status: Argument out of range" {
		t.Errorf("Unexpected status: %q", got)
	}
}
