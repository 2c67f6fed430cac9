package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/journeyc/compiler/internal/errs"
	"github.com/journeyc/compiler/internal/heal"
	"github.com/journeyc/compiler/internal/pipeline"
	"github.com/journeyc/compiler/internal/trace"
)

func newTraceCommand(opts *RootOptions) *cobra.Command {
	var statePath string
	var healLogPath string

	cmd := &cobra.Command{
		Use:   "trace <journey-id>",
		Short: "Replay a journey's pipeline transitions and heal attempts as one chronological timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			journeyID := args[0]
			if statePath == "" {
				statePath = journeyID + ".pipeline-state.json"
			}
			if healLogPath == "" {
				healLogPath = journeyID + ".heal-log.json"
			}

			machine, err := pipeline.LoadState(statePath)
			if err != nil {
				return errs.WrapExitError(errs.ExitCommandError, "reading pipeline state", err)
			}

			var log *heal.Log
			if data, err := os.ReadFile(healLogPath); err == nil {
				var l heal.Log
				if err := json.Unmarshal(data, &l); err != nil {
					return errs.WrapExitError(errs.ExitCommandError, "parsing heal log", err)
				}
				log = &l
			} else if !os.IsNotExist(err) {
				return errs.WrapExitError(errs.ExitCommandError, "reading heal log", err)
			}

			result := trace.Assemble(journeyID, machine, log)
			return printTrace(opts, result)
		},
	}

	cmd.Flags().StringVar(&statePath, "state", "", "pipeline-state file path (default: <journey-id>.pipeline-state.json)")
	cmd.Flags().StringVar(&healLogPath, "heal-log", "", "heal-log file path (default: <journey-id>.heal-log.json, omitted if absent)")
	return cmd
}

func printTrace(opts *RootOptions, result trace.Result) error {
	if opts.Format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Printf("trace for %s (final state: %s)\n", result.JourneyID, result.Stats.FinalState)
	for _, ev := range result.Timeline {
		switch ev.Kind {
		case trace.EventTransition:
			t := ev.Transition
			forced := ""
			if t.Forced {
				forced = " (forced: " + t.Reason + ")"
			}
			fmt.Printf("  [%d] transition %s -> %s%s\n", ev.Seq, t.From, t.To, forced)
		case trace.EventHealAttempt:
			a := ev.Attempt
			fmt.Printf("  [%d] heal attempt #%d %s applied=%v verified=%v\n", ev.Seq, a.AttemptNumber, a.FixType, a.Applied, a.VerifyPassed)
		}
	}
	fmt.Printf("%d transition(s), %d heal attempt(s)\n", result.Stats.Transitions, result.Stats.HealAttempts)
	return nil
}
