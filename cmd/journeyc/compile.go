package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/journeyc/compiler/internal/batch"
	"github.com/journeyc/compiler/internal/catalog"
	"github.com/journeyc/compiler/internal/config"
	"github.com/journeyc/compiler/internal/errs"
	"github.com/journeyc/compiler/internal/fuzzy"
	"github.com/journeyc/compiler/internal/glossary"
	"github.com/journeyc/compiler/internal/ir"
	"github.com/journeyc/compiler/internal/journey"
	"github.com/journeyc/compiler/internal/llkb"
	"github.com/journeyc/compiler/internal/mapper"
	"github.com/journeyc/compiler/internal/normalizer"
	"github.com/journeyc/compiler/internal/render"
)

func newCompileCommand(opts *RootOptions) *cobra.Command {
	var outDir string
	var llkbPath string
	var force bool

	cmd := &cobra.Command{
		Use:   "compile <journey.md|dir>",
		Short: "Compile one Journey file or every Journey in a directory into test code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]
			ctx, cfg, err := buildMapperContext(llkbPath)
			if err != nil {
				return errs.WrapExitError(errs.ExitCommandError, "building mapper context", err)
			}
			if !cmd.Flags().Changed("out") && cfg.Paths.Tests != "" {
				outDir = cfg.Paths.Tests
			}

			info, err := os.Stat(target)
			if err != nil {
				return errs.WrapExitError(errs.ExitCommandError, "reading target", err)
			}

			if info.IsDir() {
				return runBatchCompile(target, outDir, ctx, opts)
			}
			return runSingleCompile(target, outDir, ctx, cfg, opts, force)
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "generated", "output directory for generated test/module files")
	cmd.Flags().StringVar(&llkbPath, "llkb", "", "path to the LLKB learned-pattern store (optional)")
	cmd.Flags().BoolVar(&force, "force", false, "recompile even if the journey's content hash matches the last compile")
	return cmd
}

// journeyHashPath is the sidecar file recording the JourneyHash of the last
// successful compile of a journey, keyed by journey ID, so a re-run with
// identical source content can skip redundant rendering.
func journeyHashPath(outDir, id string) string {
	return filepath.Join(outDir, id+".journey-hash")
}

// readJourneyHash returns the previously recorded hash for id, or "" if
// none was recorded (or the sidecar is unreadable).
func readJourneyHash(outDir, id string) string {
	data, err := os.ReadFile(journeyHashPath(outDir, id))
	if err != nil {
		return ""
	}
	return string(data)
}

// buildMapperContext assembles the mapper's glossary/catalog/fuzzy/LLKB
// dependencies from the merged journeyc.yaml config (internal/config): the
// project glossary file, the LLKB confidence floor (rather than the
// hardcoded 0.7 internal/mapper falls back to), and the LLKB store path,
// with an explicit --llkb flag taking precedence over llkb.configPath.
func buildMapperContext(llkbPath string) (mapper.Context, config.Config, error) {
	cfg, _, err := config.Load(config.SearchPaths())
	if err != nil {
		return mapper.Context{}, config.Config{}, err
	}
	gl, err := glossary.Load(cfg.LLKB.GlossaryPath)
	if err != nil {
		return mapper.Context{}, config.Config{}, err
	}
	ctx := mapper.Context{
		Glossary:          gl,
		Catalog:           catalog.Default(),
		Fuzzy:             fuzzy.Default(),
		MinLLKBConfidence: cfg.LLKB.MinConfidence,
	}
	if llkbPath == "" {
		llkbPath = cfg.LLKB.ConfigPath
	}
	if llkbPath != "" && cfg.LLKB.Enabled {
		ctx.LLKB = llkb.Open(llkbPath)
	}
	return ctx, cfg, nil
}

func runSingleCompile(path, outDir string, mapperCtx mapper.Context, cfg config.Config, opts *RootOptions, force bool) error {
	pj, err := journey.Parse(path)
	if err != nil {
		return errs.WrapExitError(errs.ExitCommandError, "parsing journey", err)
	}
	res := normalizer.Normalize(pj, normalizer.Options{Mapper: mapperCtx})

	hash, err := ir.JourneyHash(&res.Journey)
	if err != nil {
		return errs.WrapExitError(errs.ExitCommandError, "hashing journey", err)
	}

	testPath := filepath.Join(outDir, res.Journey.ID+".spec.ts")
	modulePath := filepath.Join(outDir, res.Journey.ID+".module.ts")

	if !force && len(res.BlockedSteps) == 0 && hash == readJourneyHash(outDir, res.Journey.ID) {
		if _, testErr := os.Stat(testPath); testErr == nil {
			if _, modErr := os.Stat(modulePath); modErr == nil {
				printCompileSkipped(opts, res.Journey.ID, testPath, modulePath)
				return nil
			}
		}
	}

	// Regenerating over an existing file follows the configured strategy:
	// the test spec merges by managed blocks (user-interspersed code
	// survives); the page-object module merges structurally only under the
	// "ast" strategy, since overwriting a module a human has filled in
	// would throw their method bodies away.
	testOpts := render.Options{Strategy: render.StrategyFull}
	if existing, readErr := os.ReadFile(testPath); readErr == nil {
		testOpts = render.Options{Strategy: render.StrategyBlocks, Existing: string(existing)}
	}
	moduleOpts := render.Options{Strategy: render.StrategyFull}
	if cfg.RegenerationStrategy == "ast" {
		if existing, readErr := os.ReadFile(modulePath); readErr == nil {
			moduleOpts = render.Options{Strategy: render.StrategyBlocks, Existing: string(existing), PreserveExisting: true}
		}
	}

	testResult, err := render.GenerateTest(res.Journey, testOpts)
	if err != nil {
		return errs.WrapExitError(errs.ExitCommandError, "rendering test", err)
	}
	moduleResult, err := render.GenerateModule(res.Journey, moduleOpts)
	if err != nil {
		return errs.WrapExitError(errs.ExitCommandError, "rendering module", err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errs.WrapExitError(errs.ExitCommandError, "creating output directory", err)
	}
	if err := os.WriteFile(testPath, []byte(testResult.Code), 0o644); err != nil {
		return errs.WrapExitError(errs.ExitCommandError, "writing test file", err)
	}
	if err := os.WriteFile(modulePath, []byte(moduleResult.Code), 0o644); err != nil {
		return errs.WrapExitError(errs.ExitCommandError, "writing module file", err)
	}
	if len(res.BlockedSteps) == 0 {
		if err := os.WriteFile(journeyHashPath(outDir, res.Journey.ID), []byte(hash), 0o644); err != nil {
			return errs.WrapExitError(errs.ExitCommandError, "writing journey hash", err)
		}
	}

	printCompileSummary(opts, res.Journey.ID, testPath, modulePath, len(res.BlockedSteps), res.Warnings)
	if len(res.BlockedSteps) > 0 {
		return errs.NewExitError(errs.ExitTestFailure, fmt.Sprintf("%d step(s) could not be compiled", len(res.BlockedSteps)))
	}
	return nil
}

func printCompileSkipped(opts *RootOptions, id, testPath, modulePath string) {
	if opts.Format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(map[string]any{
			"journey": id,
			"test":    testPath,
			"module":  modulePath,
			"skipped": true,
		})
		return
	}
	fmt.Printf("%s unchanged since last compile, skipping -> %s, %s\n", id, testPath, modulePath)
}

func runBatchCompile(dir, outDir string, mapperCtx mapper.Context, opts *RootOptions) error {
	report, err := batch.CompileDir(dir, mapperCtx)
	if err != nil {
		return errs.WrapExitError(errs.ExitCommandError, "compiling directory", err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errs.WrapExitError(errs.ExitCommandError, "creating output directory", err)
	}

	for _, r := range report.Results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, r.Err)
			continue
		}
		testResult, err := render.GenerateTest(r.Journey, render.Options{Strategy: render.StrategyFull})
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: rendering test: %v\n", r.Path, err)
			continue
		}
		_ = os.WriteFile(filepath.Join(outDir, r.Journey.ID+".spec.ts"), []byte(testResult.Code), 0o644)
	}

	if opts.Format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	fmt.Printf("compiled %d journeys, %d blocked steps, %.1f%% average coverage\n", report.TotalJourneys, report.TotalBlocked, report.AverageCoverage)
	if report.TotalBlocked > 0 {
		return errs.NewExitError(errs.ExitTestFailure, fmt.Sprintf("%d blocked step(s) across the batch", report.TotalBlocked))
	}
	return nil
}

func printCompileSummary(opts *RootOptions, id, testPath, modulePath string, blocked int, warnings []string) {
	if opts.Format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(map[string]any{
			"journey":  id,
			"test":     testPath,
			"module":   modulePath,
			"blocked":  blocked,
			"warnings": warnings,
		})
		return
	}
	fmt.Printf("compiled %s -> %s, %s (%d blocked step(s))\n", id, testPath, modulePath, blocked)
	for _, w := range warnings {
		fmt.Println("  warning:", w)
	}
}
