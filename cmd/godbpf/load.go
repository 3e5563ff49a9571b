// cmd/godbpf/load.go
package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/creativeyann17/go-dbpf/pkg/dbpf"
)

// openArchive loads the archive, warning first when it would take more than
// half of the machine's memory
func openArchive(path string, quiet bool) (*dbpf.Archive, error) {
	if stat, err := os.Stat(path); err == nil && !quiet {
		if total, err := totalSystemMemory(); err == nil && total > 0 && uint64(stat.Size()) > total/2 {
			fmt.Fprintf(os.Stderr, "Warning: %s is %s, more than half of system memory (%s)\n",
				path, humanize.IBytes(uint64(stat.Size())), humanize.IBytes(total))
		}
	}
	return dbpf.Open(path)
}
