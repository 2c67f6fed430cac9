package journey

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/journeyc/compiler/internal/errs"
	"github.com/journeyc/compiler/internal/resultx"
)

//go:embed schema.cue
var schemaSource string

var idPattern = regexp.MustCompile(`^JRN-\d{4}$`)

var frontmatterFence = regexp.MustCompile(`(?s)^---\r?\n(.*?)\r?\n---\r?\n?(.*)$`)

// Parse reads path and parses it as a Journey file.
func Parse(path string) (*ParsedJourney, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.New(errs.CodeFrontmatterNotFound, fmt.Sprintf("reading %s: %v", path, err))
	}
	return ParseContent(string(data), path)
}

// ParseContent parses text (the full contents of a Journey file) as though
// it were read from virtualPath, which is used only for error messages.
func ParseContent(text, virtualPath string) (*ParsedJourney, error) {
	m := frontmatterFence.FindStringSubmatch(text)
	if m == nil {
		return nil, errs.New(errs.CodeFrontmatterNotFound, fmt.Sprintf("%s: no frontmatter block found (expected leading '---' fence)", virtualPath))
	}
	yamlBlock, body := m[1], m[2]

	var fm Frontmatter
	dec := yaml.NewDecoder(bytes.NewReader([]byte(yamlBlock)))
	dec.KnownFields(true)
	if err := dec.Decode(&fm); err != nil {
		return nil, errs.New(errs.CodeYAMLParseError, fmt.Sprintf("%s: %v", virtualPath, err))
	}

	if issues := Validate(fm); len(issues) > 0 {
		return nil, validationError(virtualPath, issues)
	}

	ac, steps, notes := parseBody(body)

	return &ParsedJourney{
		Frontmatter:        fm,
		AcceptanceCriteria: ac,
		ProceduralSteps:    steps,
		DataNotes:          notes,
		Path:               virtualPath,
	}, nil
}

// TryParseContent is ParseContent wrapped in a Result, for callers that
// want the Result combinator style instead of a bare error.
func TryParseContent(text, virtualPath string) resultx.Result[*ParsedJourney] {
	pj, err := ParseContent(text, virtualPath)
	if err != nil {
		return resultx.Err[*ParsedJourney](err)
	}
	return resultx.Ok(pj)
}

func validationError(path string, issues []errs.Issue) error {
	var msgs []string
	for _, iss := range issues {
		msgs = append(msgs, iss.Error())
	}
	return errs.New(errs.CodeFrontmatterValidation, fmt.Sprintf("%s: %s", path, strings.Join(msgs, "; ")))
}

// Validate checks fm's structural schema (via an embedded CUE definition)
// plus the conditional requirements layered on by Status: clarified needs
// at least one completion signal, implemented needs at least one test
// reference, quarantined needs owner, statusReason, and a linked issue.
func Validate(fm Frontmatter) []errs.Issue {
	var issues []errs.Issue

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource)
	if err := schema.Err(); err != nil {
		issues = append(issues, errs.Issue{Severity: errs.SeverityError, Code: errs.CodeSchemaValidation, Message: "internal schema error: " + err.Error()})
		return issues
	}
	def := schema.LookupPath(cue.ParsePath("#Frontmatter"))
	// Round-trip fm through YAML first so the field names CUE sees match
	// the schema's lowercase keys: ctx.Encode keys a Go struct by its Go
	// field name, not its "yaml" tag, so encoding fm directly would unify
	// against the wrong (capitalized) field names.
	yamlBytes, err := yaml.Marshal(fm)
	if err != nil {
		issues = append(issues, errs.Issue{Severity: errs.SeverityError, Code: errs.CodeSchemaValidation, Message: "internal encode error: " + err.Error()})
		return issues
	}
	var asMap map[string]interface{}
	if err := yaml.Unmarshal(yamlBytes, &asMap); err != nil {
		issues = append(issues, errs.Issue{Severity: errs.SeverityError, Code: errs.CodeSchemaValidation, Message: "internal decode error: " + err.Error()})
		return issues
	}
	encoded := ctx.Encode(asMap)
	unified := def.Unify(encoded)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		issues = append(issues, errs.Issue{Severity: errs.SeverityError, Code: errs.CodeSchemaValidation, Message: err.Error()})
	}

	if fm.ID != "" && !idPattern.MatchString(fm.ID) {
		issues = append(issues, errs.Issue{Severity: errs.SeverityError, Code: errs.CodeSchemaValidation, Field: "id", Message: "id must match JRN-####"})
	}

	switch fm.Status {
	case StatusClarified:
		if len(fm.Completion) == 0 {
			issues = append(issues, errs.Issue{Severity: errs.SeverityError, Code: errs.CodeSchemaValidation, Field: "completion", Message: "status=clarified requires at least one completion signal"})
		}
	case StatusImplemented:
		if len(fm.TestRefs) == 0 {
			issues = append(issues, errs.Issue{Severity: errs.SeverityError, Code: errs.CodeSchemaValidation, Field: "testRefs", Message: "status=implemented requires at least one test reference"})
		}
	case StatusQuarantined:
		if fm.Owner == "" {
			issues = append(issues, errs.Issue{Severity: errs.SeverityError, Code: errs.CodeSchemaValidation, Field: "owner", Message: "status=quarantined requires an owner"})
		}
		if fm.StatusReason == "" {
			issues = append(issues, errs.Issue{Severity: errs.SeverityError, Code: errs.CodeSchemaValidation, Field: "statusReason", Message: "status=quarantined requires a statusReason"})
		}
		if len(fm.LinkedIssues) == 0 {
			issues = append(issues, errs.Issue{Severity: errs.SeverityError, Code: errs.CodeSchemaValidation, Field: "linkedIssues", Message: "status=quarantined requires at least one linked issue"})
		}
	}

	return issues
}
