package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/journeyc/compiler/internal/config"
	"github.com/journeyc/compiler/internal/errs"
	"github.com/journeyc/compiler/internal/heal"
	"github.com/journeyc/compiler/internal/pipeline"
	"github.com/journeyc/compiler/internal/runner"
)

func newHealCommand(opts *RootOptions) *cobra.Command {
	var reportPath string
	var runnerCmd string
	var outPath string
	var statePath string
	var journeyID string
	var maxAttempts int

	cmd := &cobra.Command{
		Use:   "heal <test-file>",
		Short: "Run the bounded healing loop against a generated test file and persist its heal log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			testFile := args[0]
			code, err := os.ReadFile(testFile)
			if err != nil {
				return errs.WrapExitError(errs.ExitCommandError, "reading test file", err)
			}

			report, err := loadReport(reportPath)
			if err != nil {
				return errs.WrapExitError(errs.ExitCommandError, "reading runner report", err)
			}
			initial := heal.ClassifyReport(report)

			cfg, _, err := config.Load(config.SearchPaths())
			if err != nil {
				return errs.WrapExitError(errs.ExitCommandError, "loading config", err)
			}
			if !cfg.Heal.Enabled {
				return errs.NewExitError(errs.ExitCommandError, "healing is disabled (heal.enabled: false in journeyc.yaml)")
			}
			for _, pat := range cfg.Heal.SkipPatterns {
				if ok, _ := filepath.Match(pat, filepath.Base(testFile)); ok || strings.Contains(testFile, pat) {
					fmt.Printf("skipping heal for %s: matches heal.skipPatterns entry %q\n", testFile, pat)
					return nil
				}
			}
			if maxAttempts == 0 && cfg.Heal.MaxAttempts > 0 {
				maxAttempts = cfg.Heal.MaxAttempts
			}
			if maxAttempts == 0 && cfg.Heal.MaxSuggestions > 0 {
				maxAttempts = cfg.Heal.MaxSuggestions
			}
			rules := enabledRules(cfg.Heal.EnabledRules)

			var invoker runner.Invoker
			if runnerCmd != "" {
				invoker = &commandInvoker{command: runnerCmd}
			} else {
				invoker = &staticInvoker{}
			}

			writeFn := func(c string) error {
				return os.WriteFile(testFile, []byte(c), 0o644)
			}

			if journeyID == "" {
				journeyID = strings.TrimSuffix(filepath.Base(testFile), filepath.Ext(testFile))
			}
			if outPath == "" {
				outPath = filepath.Join(filepath.Dir(testFile), journeyID+".heal-log.json")
			}
			if statePath == "" {
				statePath = filepath.Join(filepath.Dir(testFile), journeyID+".pipeline-state.json")
			}

			machine, err := pipeline.LoadState(statePath)
			if err != nil {
				return errs.WrapExitError(errs.ExitCommandError, "reading pipeline state", err)
			}
			machine.RecordCommand("heal")
			machine.ForceAdvance(pipeline.StateRefining, "entering heal loop", nil)

			log, err := heal.Run(cmd.Context(), string(code), initial, invoker, writeFn, heal.Options{
				MaxAttempts: maxAttempts,
				Rules:       rules,
				TestFile:    testFile,
				JourneyID:   journeyID,
			})
			if err != nil {
				return errs.WrapExitError(errs.ExitCommandError, "running heal loop", err)
			}
			if err := heal.WriteLog(outPath, log); err != nil {
				return errs.WrapExitError(errs.ExitCommandError, "writing heal log", err)
			}

			if log.Outcome == heal.OutcomeSuccess {
				machine.ForceAdvance(pipeline.StateTested, "healed successfully", nil)
			} else {
				machine.ForceAdvance(pipeline.StateBlocked, "heal loop ended with outcome "+string(log.Outcome), nil)
			}
			machine.AddArtifact(filepath.Base(outPath))
			if err := pipeline.WriteState(statePath, machine); err != nil {
				return errs.WrapExitError(errs.ExitCommandError, "writing pipeline state", err)
			}

			printHealSummary(opts, log, outPath)
			if log.Outcome != heal.OutcomeSuccess {
				return errs.NewExitError(errs.ExitTestFailure, fmt.Sprintf("heal loop ended with outcome %q", log.Outcome))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&reportPath, "report", "", "path to the runner's JSON report for the failing run (required)")
	cmd.Flags().StringVar(&runnerCmd, "runner-cmd", "", "shell command to re-invoke the test runner between attempts; when empty, an applied fix is assumed verified (offline mode)")
	cmd.Flags().StringVar(&outPath, "out", "", "heal-log output path (default: <test-file-dir>/<journey-id>.heal-log.json)")
	cmd.Flags().StringVar(&statePath, "state", "", "pipeline-state file path (default: <test-file-dir>/<journey-id>.pipeline-state.json)")
	cmd.Flags().StringVar(&journeyID, "journey-id", "", "journey ID recorded in the heal log (default: test file basename)")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 0, "maximum heal attempts (default: the config's heal.maxAttempts)")
	_ = cmd.MarkFlagRequired("report")
	return cmd
}

// enabledRules narrows heal.DefaultRules to the config's heal.enabledRules
// list, keeping heal.DefaultRules' order (ForbiddenFixes filtering is done
// by the heal engine when it selects a rule). An empty list means "no override": every default rule
// stays eligible.
func enabledRules(names []string) []heal.Rule {
	if len(names) == 0 {
		return nil
	}
	allowed := make(map[string]bool, len(names))
	for _, n := range names {
		allowed[n] = true
	}
	var out []heal.Rule
	for _, r := range heal.DefaultRules {
		if allowed[string(r.Type)] {
			out = append(out, r)
		}
	}
	return out
}

func loadReport(path string) (runner.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return runner.Report{}, err
	}
	var r runner.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return runner.Report{}, err
	}
	return r, nil
}

func printHealSummary(opts *RootOptions, log heal.Log, outPath string) {
	if opts.Format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(map[string]any{
			"journey":    log.JourneyID,
			"outcome":    log.Outcome,
			"attempts":   len(log.Attempts),
			"heal_log":   outPath,
			"suggestion": log.Recommendation,
		})
		return
	}
	fmt.Printf("heal %s: outcome=%s attempts=%d -> %s\n", log.JourneyID, log.Outcome, len(log.Attempts), outPath)
	if log.Recommendation != "" {
		fmt.Println("  " + log.Recommendation)
	}
}

// staticInvoker stands in for the runner on offline heal runs (no
// --runner-cmd): the pre-recorded report seeds the loop's initial
// classification, and an applied fix is treated as verified since there is
// no runner to re-execute. Operators re-run the real runner afterwards to
// confirm; --runner-cmd makes verification real.
type staticInvoker struct{}

func (s *staticInvoker) Run(ctx context.Context, testFilePath string) (runner.Report, error) {
	return runner.Report{}, nil
}

// commandInvoker re-runs the configured shell command after each mutation
// and parses its stdout as a runner.Report.
type commandInvoker struct {
	command string
}

func (c *commandInvoker) Run(ctx context.Context, testFilePath string) (runner.Report, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", c.command)
	cmd.Env = append(os.Environ(), "JOURNEYC_TEST_FILE="+testFilePath)
	out, err := cmd.Output()
	if err != nil {
		return runner.Report{}, fmt.Errorf("runner command %q: %w", c.command, err)
	}
	var r runner.Report
	if err := json.Unmarshal(out, &r); err != nil {
		return runner.Report{}, fmt.Errorf("parsing runner command output: %w", err)
	}
	return r, nil
}
