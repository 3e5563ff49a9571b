// cmd/godbpf/main.go
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/creativeyann17/go-dbpf/pkg/dbpf"
	"github.com/creativeyann17/go-dbpf/pkg/inspect"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:           "godbpf",
	Short:         "go-dbpf - inspect and extract DBPF package archives",
	Long:          "go-dbpf reads DBPF (Database Packed File) archives: header, index and raw resource payloads.",
	Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints err, followed by the DBPF status line when the error
// came from the decoder
func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	if dbpf.KindOf(err) != dbpf.KindGeneral {
		fmt.Fprintln(w, inspect.FormatStatus(err))
	}
}
