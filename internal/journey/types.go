// Package journey implements the Journey parser: frontmatter extraction
// and schema validation, followed by lossy Markdown body section parsing
// (Acceptance Criteria, Procedural Steps, Data/Environment Notes).
package journey

import "github.com/journeyc/compiler/internal/ir"

// Frontmatter is the YAML document framed by the leading "---" fences.
// Conditional requirements by Status are enforced in Validate, not by the
// struct shape or the CUE schema: neither expresses "required only when
// status=clarified".
type Frontmatter struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Status   string `yaml:"status"`
	Tier     string `yaml:"tier"`
	Scope    string `yaml:"scope"`
	Actor    string `yaml:"actor"`
	Revision int    `yaml:"revision"`

	Tags               []string                `yaml:"tags,omitempty"`
	ModuleDependencies *ModuleDependenciesYAML `yaml:"moduleDependencies,omitempty"`
	Data               *DataPolicyYAML         `yaml:"data,omitempty"`

	Completion []CompletionSignalYAML `yaml:"completion,omitempty"`
	TestRefs   []string               `yaml:"testRefs,omitempty"`

	Owner        string   `yaml:"owner,omitempty"`
	StatusReason string   `yaml:"statusReason,omitempty"`
	LinkedIssues []string `yaml:"linkedIssues,omitempty"`

	Prerequisites    []string `yaml:"prerequisites,omitempty"`
	VisualRegression bool     `yaml:"visualRegression,omitempty"`
	Accessibility    bool     `yaml:"accessibility,omitempty"`
}

// Status constants recognized by conditional validation.
const (
	StatusDraft       = "draft"
	StatusClarified   = "clarified"
	StatusImplemented = "implemented"
	StatusQuarantined = "quarantined"
)

// ModuleDependenciesYAML mirrors ir.ModuleDependencies in frontmatter form.
type ModuleDependenciesYAML struct {
	Foundation []string `yaml:"foundation,omitempty"`
	Feature    []string `yaml:"feature,omitempty"`
}

// DataPolicyYAML mirrors ir.DataPolicy in frontmatter form.
type DataPolicyYAML struct {
	Strategy string `yaml:"strategy"`
	Cleanup  string `yaml:"cleanup"`
}

// CompletionSignalYAML mirrors ir.CompletionSignal in frontmatter form.
type CompletionSignalYAML struct {
	Type    string            `yaml:"type"`
	Value   string            `yaml:"value"`
	Options map[string]string `yaml:"options,omitempty"`
}

// ACEntry is one Acceptance Criteria block: an "AC-N" heading plus its
// bullet sub-steps.
type ACEntry struct {
	ID      string
	Title   string
	Bullets []string
}

// ProceduralStep is one numbered procedural-steps list item, optionally
// back-referencing an AC via "(AC-N)" in its text.
type ProceduralStep struct {
	Index int
	Text  string
	ACRef string
}

// DataNote is one bullet under the Data/Environment Notes section.
type DataNote string

// ParsedJourney is the output of parsing a Journey file: validated
// frontmatter plus the lossily-extracted body sections.
type ParsedJourney struct {
	Frontmatter        Frontmatter
	AcceptanceCriteria []ACEntry
	ProceduralSteps    []ProceduralStep
	DataNotes          []DataNote
	Path               string
}

// ToCompletionSignals converts frontmatter completion entries to ir form.
func (f Frontmatter) ToCompletionSignals() []ir.CompletionSignal {
	out := make([]ir.CompletionSignal, 0, len(f.Completion))
	for _, c := range f.Completion {
		out = append(out, ir.CompletionSignal{
			Type:    ir.CompletionType(c.Type),
			Value:   c.Value,
			Options: c.Options,
		})
	}
	return out
}
