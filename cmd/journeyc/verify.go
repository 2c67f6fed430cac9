package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/journeyc/compiler/internal/errs"
	"github.com/journeyc/compiler/internal/verify"
)

func newVerifyCommand(opts *RootOptions) *cobra.Command {
	var reportPath string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Summarize a runner report: overall status, classified failures, and recommendations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := loadReport(reportPath)
			if err != nil {
				return errs.WrapExitError(errs.ExitCommandError, "reading runner report", err)
			}
			summary := verify.Summarize(report)
			printVerifySummary(opts, summary)
			if summary.Status != verify.StatusPassed {
				return errs.NewExitError(errs.ExitTestFailure, fmt.Sprintf("verify status %q", summary.Status))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&reportPath, "report", "", "path to the runner's JSON report (required)")
	_ = cmd.MarkFlagRequired("report")
	return cmd
}

func printVerifySummary(opts *RootOptions, s verify.Summary) {
	if opts.Format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(s)
		return
	}
	fmt.Printf("status: %s (%d failed, %d flaky)\n", s.Status, len(s.FailedTests), len(s.FlakyTests))
	for _, cf := range s.Classifications {
		fmt.Printf("  %s: %s (%s)\n", cf.TestName, cf.Classification.Category, cf.Classification.Explanation)
	}
	for _, r := range s.Recommendations {
		fmt.Println("  recommendation:", r)
	}
}
