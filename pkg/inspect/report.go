// pkg/inspect/report.go
package inspect

import (
	"fmt"
	"strings"

	"github.com/creativeyann17/go-dbpf/pkg/dbpf"
)

// FormatInfo formats the header of a loaded archive for display
func FormatInfo(a *dbpf.Archive) (string, error) {
	h, err := a.Header()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "File:                      %s\n", a.Path())
	support := "supported"
	if !a.IsVersionValid() {
		support = "unsupported"
	}
	fmt.Fprintf(&sb, "DBPF version:              %s (%s, %s)\n", h.Version(), a.Family(), support)
	fmt.Fprintf(&sb, "Size:                      %d\n", a.Size())
	fmt.Fprintf(&sb, "Created:                   %s\n", h.Created().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Modified:                  %s\n", h.Modified().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Index version:             %s\n", h.IndexVersion())
	fmt.Fprintf(&sb, "Index entry count:         %d\n", h.IndexEntryCount())
	fmt.Fprintf(&sb, "Index size:                %d\n", h.IndexSize())
	if avg, ok := h.AverageEntrySize(); ok {
		fmt.Fprintf(&sb, "Index entry size:          %d\n", avg)
	} else {
		sb.WriteString("Index entry size:          n/a\n")
	}
	fmt.Fprintf(&sb, "Index offset:              %d\n", h.IndexOffset())
	fmt.Fprintf(&sb, "Index first entry offset:  %d\n", h.IndexFirstEntryOffset())
	if indexType, err := a.IndexType(); err == nil {
		fmt.Fprintf(&sb, "Index type:                %d\n", indexType)
	} else {
		sb.WriteString("Index type:                unreadable\n")
	}
	if h.HoleEntryCount() > 0 {
		fmt.Fprintf(&sb, "Holes:                     %d (%d bytes at %d)\n", h.HoleEntryCount(), h.HoleSize(), h.HoleOffset())
	}
	if !a.IsVersionValid() {
		sb.WriteString("Index entries:             unsupported version, only 2.1 / index 0.3 is readable\n")
	}

	return sb.String(), nil
}

// FormatEntry formats every field of an index entry in hex
func FormatEntry(e dbpf.IndexEntry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Type:           0x%08x", e.Type())
	if name := dbpf.TypeName(e.Type()); name != "" {
		fmt.Fprintf(&sb, " (%s)", name)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Group:          0x%08x\n", e.Group())
	fmt.Fprintf(&sb, "Instance high:  0x%08x\n", e.InstanceHigh())
	fmt.Fprintf(&sb, "Instance low:   0x%08x\n", e.InstanceLow())
	fmt.Fprintf(&sb, "Offset:         0x%08x\n", e.Offset())
	fmt.Fprintf(&sb, "File size:      0x%08x\n", e.FileSize())
	fmt.Fprintf(&sb, "Mem size:       0x%08x\n", e.MemSize())
	fmt.Fprintf(&sb, "Compressed:     0x%04x\n", e.Compressed())
	fmt.Fprintf(&sb, "Unknown:        0x%04x\n", e.Unknown())
	return sb.String()
}

// FormatEntryLine formats an index entry as a single line
func FormatEntryLine(e dbpf.IndexEntry) string {
	flag := " "
	if e.IsCompressed() {
		flag = "C"
	}
	return fmt.Sprintf("%6d  %s  %s  off=0x%08x  size=%-10d mem=%-10d",
		e.Position(), e.Key(), flag, e.Offset(), e.FileSize(), e.MemSize())
}

// FormatStatus formats the outcome kind of err
func FormatStatus(err error) string {
	return "DBPF status: " + dbpf.KindOf(err).String()
}
