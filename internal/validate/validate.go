package validate

import "github.com/journeyc/compiler/internal/errs"

// Report is validateCode's composite result: every issue found, partitioned
// by severity, plus the sub-results keyed by the check that produced them.
type Report struct {
	Errors   []errs.Issue `json:"errors"`
	Warnings []errs.Issue `json:"warnings"`
	Infos    []errs.Issue `json:"infos"`

	ByCheck map[string][]errs.Issue `json:"by_check"`
}

// Input bundles everything validateCode needs to run every check.
type Input struct {
	Code         string
	ExpectedTags []string
	ActualTags   []string
	// CustomRules are appended to the fixed forbidden-pattern rule list,
	// typically compiled from validation.customRules config entries via
	// CompileCustomRules.
	CustomRules []ForbiddenRule
}

// ValidateCode runs the forbidden-pattern scanner and the tag-conformance
// check against in, returning a composite severity-partitioned report.
// Coverage is reported separately via ComputeCoverage since it needs the
// IR journey, not rendered code.
func ValidateCode(in Input) Report {
	rules := DefaultForbiddenRules
	if len(in.CustomRules) > 0 {
		rules = append(append([]ForbiddenRule{}, rules...), in.CustomRules...)
	}
	byCheck := map[string][]errs.Issue{
		"forbidden_patterns": ScanWithRules(in.Code, rules),
		"tags":               ValidateTags(in.ExpectedTags, in.ActualTags),
	}

	var all []errs.Issue
	for _, issues := range byCheck {
		all = append(all, issues...)
	}
	errors, warnings, infos := errs.Partition(all)

	return Report{Errors: errors, Warnings: warnings, Infos: infos, ByCheck: byCheck}
}
