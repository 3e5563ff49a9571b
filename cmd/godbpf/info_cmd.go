// cmd/godbpf/info_cmd.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/creativeyann17/go-dbpf/pkg/inspect"
)

func init() {
	rootCmd.AddCommand(infoCmd())
}

func infoCmd() *cobra.Command {
	var inputPath string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show archive header information",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openArchive(inputPath, quiet)
			if err != nil {
				return err
			}
			defer a.Close()

			info, err := inspect.FormatInfo(a)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), info)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input archive file (required)")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Suppress warnings")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}
