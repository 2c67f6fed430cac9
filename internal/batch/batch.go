// Package batch implements directory-wide Journey compilation reporting:
// compiling every Journey file under a directory produces one aggregated
// report instead of requiring a caller to loop and accumulate results
// itself. One file's parse failure is recorded on its result and never
// aborts the rest of the batch.
package batch

import (
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/journeyc/compiler/internal/ir"
	"github.com/journeyc/compiler/internal/journey"
	"github.com/journeyc/compiler/internal/mapper"
	"github.com/journeyc/compiler/internal/normalizer"
	"github.com/journeyc/compiler/internal/validate"
)

// JourneyResult is one file's compilation outcome.
type JourneyResult struct {
	Path         string
	Journey      ir.Journey
	Warnings     []string
	BlockedSteps []string
	Coverage     validate.Coverage
	Err          error
}

// Report aggregates every JourneyResult from one directory compile.
type Report struct {
	Results         []JourneyResult
	TotalJourneys   int
	TotalBlocked    int
	AverageCoverage float64
}

// CompileDir parses and normalizes every *.md file directly under dir
// (non-recursive, matching how Journeys are conventionally laid out one
// per file in a flat directory), in deterministic filename order.
func CompileDir(dir string, mapperCtx mapper.Context) (Report, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return Report{}, err
	}
	sort.Strings(matches)
	slog.Info("batch compile starting", "dir", dir, "files", len(matches))

	var report Report
	var coverageSum float64

	for _, path := range matches {
		pj, perr := journey.Parse(path)
		if perr != nil {
			slog.Error("journey parse failed", "path", path, "error", perr)
			report.Results = append(report.Results, JourneyResult{Path: path, Err: perr})
			continue
		}
		res := normalizer.Normalize(pj, normalizer.Options{Mapper: mapperCtx})
		cov := validate.ComputeCoverage(res.Journey)
		slog.Debug("journey compiled", "path", path, "journey", res.Journey.ID, "blocked", len(res.BlockedSteps), "coverage", cov.Percent)

		report.Results = append(report.Results, JourneyResult{
			Path:         path,
			Journey:      res.Journey,
			Warnings:     res.Warnings,
			BlockedSteps: res.BlockedSteps,
			Coverage:     cov,
		})
		report.TotalJourneys++
		report.TotalBlocked += cov.Blocked
		coverageSum += cov.Percent
	}

	if report.TotalJourneys > 0 {
		report.AverageCoverage = coverageSum / float64(report.TotalJourneys)
	}
	slog.Info("batch compile finished", "dir", dir, "journeys", report.TotalJourneys, "blocked", report.TotalBlocked)
	return report, nil
}
