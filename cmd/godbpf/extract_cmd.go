// cmd/godbpf/extract_cmd.go
package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"

	"github.com/creativeyann17/go-dbpf/pkg/extract"
)

func init() {
	rootCmd.AddCommand(extractCmd())
}

func extractCmd() *cobra.Command {
	var inputPath, outputPath string
	var maxThreads int
	var codec codecFlag
	var level int
	var exclude []string
	var overwrite bool
	var dryRun bool
	var verbose bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract raw resource payloads to files",
		Long: `Extract the raw payload of every index entry to
<output>/<TYPE>/<GROUP>-<INSTANCE>.bin.

Payloads are written exactly as stored in the archive. --compress wraps each
file in a zstd or xz stream. --exclude takes gitignore-style patterns matched
against the resource names.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &extract.Options{
				InputPath:   inputPath,
				OutputPath:  outputPath,
				MaxThreads:  maxThreads,
				Compression: codec.codec,
				Level:       level,
				Exclude:     exclude,
				Overwrite:   overwrite,
				DryRun:      dryRun,
				Verbose:     verbose,
				Quiet:       quiet,
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

			log("Starting extraction...")
			log("  Input:       %s", opts.InputPath)
			log("  Output:      %s", opts.OutputPath)
			log("  Max threads: %d", opts.MaxThreads)
			log("  Compress:    %s", opts.Compression)
			if overwrite {
				log("  Mode:        OVERWRITE (replacing existing files)")
			}
			if dryRun {
				log("  Mode:        DRY-RUN (no data written)")
			}
			log("")

			a, err := openArchive(opts.InputPath, quiet)
			if err != nil {
				return err
			}
			defer a.Close()

			var progressCb extract.ProgressCallback
			var progress *mpb.Progress

			if !quiet && !verbose {
				progressCb, progress = extract.ProgressBarCallback()
			} else if verbose {
				progressCb = func(event extract.ProgressEvent) {
					switch event.Type {
					case extract.EventResourceComplete:
						fmt.Printf("  %s (%d bytes)\n", event.Name, event.Total)
					case extract.EventError:
						fmt.Printf("  Error on %s\n", event.Name)
					}
				}
			}

			result, err := extract.ExtractArchive(cmd.Context(), a, opts, progressCb)

			// Wait for progress bars to finish rendering
			if progress != nil {
				progress.Wait()
			}

			if err != nil {
				return err
			}

			fmt.Println()
			fmt.Print(extract.FormatSummary(result, opts))

			if len(result.Errors) > 0 {
				return fmt.Errorf("finished with %d errors", len(result.Errors))
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input archive file (required)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", ".", "Output directory")
	cmd.Flags().IntVarP(&maxThreads, "threads", "t", runtime.NumCPU(), "Max concurrent threads")
	cmd.Flags().Var(&codec, "compress", "Output compression: none, zstd or xz")
	cmd.Flags().IntVarP(&level, "level", "l", 0, "Compression level (zstd 1-22, xz 0-9; 0 = codec default)")
	cmd.Flags().StringArrayVar(&exclude, "exclude", nil, "Gitignore-style pattern of resources to skip (repeatable)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Simulate without writing anything")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Show detailed output")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Minimal output (overrides verbose)")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}
