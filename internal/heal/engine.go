package heal

import (
	"context"
	"log/slog"
	"time"

	"github.com/journeyc/compiler/internal/classify"
	"github.com/journeyc/compiler/internal/runner"
)

// Outcome is the loop's terminal result.
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeExhausted Outcome = "exhausted"
	OutcomeMaxed     Outcome = "max-attempts"
)

// Attempt is one logged healing attempt.
type Attempt struct {
	AttemptNumber int           `json:"attempt_number"`
	FixType       FixType       `json:"fix_type"`
	At            time.Time     `json:"at"`
	Duration      time.Duration `json:"duration"`
	Applied       bool          `json:"applied"`
	VerifyPassed  bool          `json:"verify_passed"`
	Description   string        `json:"description"`
	Confidence    float64       `json:"confidence"`
}

// Log is one journey's complete heal history.
type Log struct {
	JourneyID      string    `json:"journey_id"`
	Attempts       []Attempt `json:"attempts"`
	Outcome        Outcome   `json:"outcome"`
	Recommendation string    `json:"recommendation"`
}

// Clock abstracts wall-clock time for deterministic attempt-duration
// measurement in tests.
type Clock interface {
	Now() time.Time
}

// Options configures one Run call.
type Options struct {
	MaxAttempts int      // defaults to len(Rules) when zero
	Rules       []Rule   // defaults to DefaultRules
	Clock       Clock    // defaults to the system clock
	TestFile    string
	JourneyID   string
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Run executes the bounded healing loop: read code, classify the last
// failure, select the next unattempted applicable rule, mutate the code,
// write it via writeFn, re-verify via invoker, and repeat until success,
// rule exhaustion, or maxAttempts.
func Run(ctx context.Context, code string, initial classify.Classification, invoker runner.Invoker, writeFn func(code string) error, opts Options) (Log, error) {
	rules := opts.Rules
	if rules == nil {
		rules = DefaultRules
	}
	maxAttempts := opts.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = len(rules)
	}
	clock := opts.Clock
	if clock == nil {
		clock = systemClock{}
	}

	log := Log{JourneyID: opts.JourneyID}
	attempted := map[FixType]bool{}
	current := code
	classification := initial

	slog.Info("heal loop starting", "journey", opts.JourneyID, "max_attempts", maxAttempts, "initial_category", classification.Category)

	for attemptNum := 1; attemptNum <= maxAttempts; attemptNum++ {
		if !classification.Healable {
			slog.Info("heal loop exhausted: classification not healable", "journey", opts.JourneyID, "attempt", attemptNum)
			log.Outcome = OutcomeExhausted
			log.Recommendation = classification.Suggestion
			return log, nil
		}

		rule := nextRule(rules, classification, attempted)
		if rule == nil {
			slog.Info("heal loop exhausted: no applicable rule remains", "journey", opts.JourneyID, "attempt", attemptNum)
			log.Outcome = OutcomeExhausted
			log.Recommendation = "no applicable fix rule remains; " + classification.Suggestion
			return log, nil
		}
		attempted[rule.Type] = true

		start := clock.Now()
		result := rule.Apply(current, classification)
		if !result.Applied {
			slog.Debug("heal rule did not apply", "journey", opts.JourneyID, "attempt", attemptNum, "fix_type", rule.Type)
			log.Attempts = append(log.Attempts, Attempt{
				AttemptNumber: attemptNum,
				FixType:       rule.Type,
				At:            start,
				Duration:      clock.Now().Sub(start),
				Applied:       false,
				Description:   result.Description,
				Confidence:    result.Confidence,
			})
			continue
		}
		current = result.Code

		if err := writeFn(current); err != nil {
			return log, err
		}

		report, err := invoker.Run(ctx, opts.TestFile)
		if err != nil {
			return log, err
		}
		passed := verificationPassed(report)
		duration := clock.Now().Sub(start)

		slog.Info("heal attempt completed", "journey", opts.JourneyID, "attempt", attemptNum, "fix_type", rule.Type, "verify_passed", passed, "duration", duration)

		log.Attempts = append(log.Attempts, Attempt{
			AttemptNumber: attemptNum,
			FixType:       rule.Type,
			At:            start,
			Duration:      duration,
			Applied:       true,
			VerifyPassed:  passed,
			Description:   result.Description,
			Confidence:    result.Confidence,
		})

		if passed {
			slog.Info("heal loop succeeded", "journey", opts.JourneyID, "attempt", attemptNum, "fix_type", rule.Type)
			log.Outcome = OutcomeSuccess
			log.Recommendation = "healed successfully via " + string(rule.Type)
			return log, nil
		}

		classification = ClassifyReport(report)
	}

	slog.Warn("heal loop maxed out without a passing run", "journey", opts.JourneyID, "max_attempts", maxAttempts)
	log.Outcome = OutcomeMaxed
	log.Recommendation = "maximum heal attempts reached without a passing run; " + classification.Suggestion
	return log, nil
}

func nextRule(rules []Rule, c classify.Classification, attempted map[FixType]bool) *Rule {
	for i := range rules {
		r := &rules[i]
		if attempted[r.Type] {
			continue
		}
		if ForbiddenFixes[string(r.Type)] {
			continue
		}
		if r.Applies(c) {
			return r
		}
	}
	return nil
}

func verificationPassed(r runner.Report) bool {
	for _, t := range r.AllTests() {
		if t.Status == "failed" {
			return false
		}
	}
	return true
}

// ClassifyReport derives a Classification from the first failed test in a
// runner report that carries an error message, for re-classifying the loop
// state after a re-verification run and for seeding Run's initial
// classification from a standalone report file (outside an active loop).
func ClassifyReport(r runner.Report) classify.Classification {
	for _, t := range r.AllTests() {
		if t.Status == "failed" && len(t.Errors) > 0 {
			return classify.Classify(t.Errors[0])
		}
	}
	return classify.Classification{Category: classify.CategoryUnknown}
}
