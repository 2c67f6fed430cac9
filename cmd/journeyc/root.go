// Command journeyc is the thin CLI wrapper around the compiler core.
// Argument parsing and result pretty-printing live here; every operation
// that matters is a plain function call into internal/.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/journeyc/compiler/internal/errs"
)

// RootOptions holds global flags shared by every subcommand.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

var validFormats = []string{"text", "json"}

// NewRootCommand builds the journeyc root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "journeyc",
		Short: "journeyc - Journey compiler and healing pipeline",
		Long:  "Compiles Markdown-authored Journey documents into Playwright tests and page objects, then verifies and self-heals them.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, validFormats)
			}
			level := slog.LevelInfo
			if opts.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(newCompileCommand(opts))
	cmd.AddCommand(newValidateCommand(opts))
	cmd.AddCommand(newCatalogCommand(opts))
	cmd.AddCommand(newHealCommand(opts))
	cmd.AddCommand(newTraceCommand(opts))
	cmd.AddCommand(newVerifyCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range validFormats {
		if f == format {
			return true
		}
	}
	return false
}

func main() {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(errs.ExitCode(err))
	}
}
