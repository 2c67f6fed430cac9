package validate

import (
	"fmt"

	"github.com/journeyc/compiler/internal/errs"
)

// ValidateTags compares actual against the expected set synthesized by
// the normalizer, flagging missing standard tags as errors and unexpected
// extras as informational.
func ValidateTags(expected, actual []string) []errs.Issue {
	expectedSet := toSet(expected)
	actualSet := toSet(actual)

	var issues []errs.Issue
	for _, t := range expected {
		if !actualSet[t] {
			issues = append(issues, errs.Issue{
				Severity: errs.SeverityError,
				Code:     "TAG_MISSING",
				Message:  fmt.Sprintf("expected tag %q is missing", t),
			})
		}
	}
	for _, t := range actual {
		if !expectedSet[t] {
			issues = append(issues, errs.Issue{
				Severity: errs.SeverityInfo,
				Code:     "TAG_UNEXPECTED",
				Message:  fmt.Sprintf("tag %q is not part of the synthesized set", t),
			})
		}
	}
	return issues
}

func toSet(tags []string) map[string]bool {
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[t] = true
	}
	return set
}
