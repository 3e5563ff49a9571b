// cmd/godbpf/verify_cmd.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/creativeyann17/go-dbpf/pkg/inspect"
)

func init() {
	rootCmd.AddCommand(verifyCmd())
}

func verifyCmd() *cobra.Command {
	var inputPath string
	var verifyData bool
	var verbose bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify archive integrity",
		Long: `Verify the integrity of a DBPF archive.

By default, performs structural validation (header, version, index entries,
payload ranges, duplicate keys).
Use --data to also hash every payload and report identical payloads.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &inspect.Options{
				InputPath:  inputPath,
				VerifyData: verifyData,
				Verbose:    verbose,
				Quiet:      quiet,
			}

			if err := opts.Validate(); err != nil {
				return err
			}

			// Logging helper
			log := func(format string, args ...interface{}) {
				if !quiet {
					fmt.Printf(format+"\n", args...)
				}
			}

			log("Verifying archive: %s", inputPath)
			if verifyData {
				log("Mode: Structure and payload digests")
			} else {
				log("Mode: Structural validation only")
			}
			log("")

			var progressCb inspect.ProgressCallback
			if !quiet && !verbose {
				lastKey := ""
				progressCb = func(event inspect.ProgressEvent) {
					switch event.Type {
					case inspect.EventStart:
						fmt.Printf("Checking %d entries...\n", event.Total)
					case inspect.EventEntryVerify:
						if event.Current%500 == 0 || event.Current == event.Total {
							fmt.Printf("\r  Progress: %d/%d entries", event.Current, event.Total)
						}
						lastKey = event.Key
					case inspect.EventComplete:
						fmt.Printf("\r  Progress: %d/%d entries\n", event.Current, event.Total)
					case inspect.EventError:
						fmt.Printf("\n  Error after: %s\n", lastKey)
					}
				}
			} else if verbose {
				progressCb = func(event inspect.ProgressEvent) {
					switch event.Type {
					case inspect.EventStart:
						fmt.Printf("Starting verification: %s\n", event.Message)
					case inspect.EventEntryVerify:
						fmt.Printf("  [%d/%d] %s\n", event.Current, event.Total, event.Key)
					case inspect.EventComplete:
						fmt.Printf("Verification complete\n")
					}
				}
			}

			result, err := inspect.Verify(opts, progressCb)
			if err != nil && result == nil {
				return err
			}

			fmt.Println()
			fmt.Print(result.Summary())

			if !result.IsValid() {
				return fmt.Errorf("archive verification failed")
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input archive file (required)")
	cmd.Flags().BoolVar(&verifyData, "data", false, "Hash every payload and report duplicates")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Show detailed output")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Minimal output (overrides verbose)")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}
