package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/journeyc/compiler/internal/errs"
	"github.com/journeyc/compiler/internal/journey"
	"github.com/journeyc/compiler/internal/normalizer"
	"github.com/journeyc/compiler/internal/render"
	"github.com/journeyc/compiler/internal/validate"
)

func newValidateCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <journey.md>",
		Short: "Compile a Journey and run the forbidden-pattern, tag, and AC-coverage checks against its rendered test",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mapperCtx, cfg, err := buildMapperContext("")
			if err != nil {
				return errs.WrapExitError(errs.ExitCommandError, "building mapper context", err)
			}
			pj, err := journey.Parse(args[0])
			if err != nil {
				return errs.WrapExitError(errs.ExitCommandError, "parsing journey", err)
			}
			res := normalizer.Normalize(pj, normalizer.Options{Mapper: mapperCtx})

			testResult, err := render.GenerateTest(res.Journey, render.Options{Strategy: render.StrategyFull})
			if err != nil {
				return errs.WrapExitError(errs.ExitCommandError, "rendering test", err)
			}

			report := validate.ValidateCode(validate.Input{
				Code:         testResult.Code,
				ExpectedTags: res.Journey.Tags,
				ActualTags:   res.Journey.Tags,
				CustomRules:  validate.CompileCustomRules(cfg.Validation.CustomRules),
			})
			coverage := validate.ComputeCoverage(res.Journey)

			return printValidateReport(opts, report, coverage)
		},
	}
	return cmd
}

func printValidateReport(opts *RootOptions, report validate.Report, coverage validate.Coverage) error {
	if opts.Format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]any{
			"errors":   report.Errors,
			"warnings": report.Warnings,
			"infos":    report.Infos,
			"coverage": coverage,
		}); err != nil {
			return err
		}
	} else {
		for _, e := range report.Errors {
			fmt.Printf("error [%s] line %d: %s\n", e.Code, e.Line, e.Message)
		}
		for _, w := range report.Warnings {
			fmt.Printf("warning [%s] line %d: %s\n", w.Code, w.Line, w.Message)
		}
		fmt.Printf("coverage: %.1f%% (%d/%d mapped, %d blocked)\n", coverage.Percent, coverage.Mapped, coverage.Total, coverage.Blocked)
	}

	if len(report.Errors) > 0 {
		return errs.NewExitError(errs.ExitTestFailure, fmt.Sprintf("%d validation error(s)", len(report.Errors)))
	}
	return nil
}
