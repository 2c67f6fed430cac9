// Package render implements the template renderer and managed-block
// engine: GenerateTest/GenerateModule compile an IR Journey into
// Playwright test source and a companion page-object module, either
// replacing a file wholesale ("full") or rewriting only its managed
// regions while preserving user edits elsewhere ("blocks").
package render

import (
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/journeyc/compiler/internal/ir"
	"github.com/journeyc/compiler/internal/variant"
)

// Strategy selects how an existing generated file is regenerated.
type Strategy string

const (
	StrategyFull   Strategy = "full"
	StrategyBlocks Strategy = "blocks"
)

// Options controls one render call.
type Options struct {
	Strategy Strategy
	// Existing is the on-disk file content, consulted when Strategy is
	// StrategyBlocks. Ignored for StrategyFull.
	Existing string
	// Variant gates version-dependent code forms. The zero value is
	// treated as variant.Latest().
	Variant variant.Variant
	// PreserveExisting, for generateModule only, keeps an existing
	// page-object method declaration instead of overwriting it when both
	// the existing file and the freshly rendered module define a method
	// of the same name.
	PreserveExisting bool
}

func (o Options) variant() variant.Variant {
	if o.Variant.Features == nil {
		return variant.Latest()
	}
	return o.Variant
}

// Result is one render's output.
type Result struct {
	Code         string
	Warnings     []string
	ImportsAdded []string
}

var testTmpl = template.Must(template.New("test").Parse(`{{.Imports}}

test.describe({{.Title}}, () => {
  test({{.TaggedTitle}}, async ({ page }) => {
{{range .Steps}}    // BEGIN GENERATED [id={{.ID}}]
    // {{.Description}}
{{range .Lines}}    {{.}}
{{end}}    // END GENERATED

{{end}}  });
});
`))

type testStepView struct {
	ID          string
	Description string
	Lines       []string
}

type testView struct {
	Title       string
	TaggedTitle string
	Imports     string
	Steps       []testStepView
}

// GenerateTest renders j into a Playwright test file. Each step's statements
// are framed by managed-region markers keyed on the step ID, so a later
// blocks-strategy regeneration can rewrite exactly that step while leaving
// hand-written code around it untouched. Tags are appended to the test
// title, where the runner's --grep filtering picks them up.
func GenerateTest(j ir.Journey, opts Options) (Result, error) {
	v := opts.variant()
	var warnings []string

	modules := collectModules(j)
	imports := renderImports(modules)

	title := j.Title
	if len(j.Tags) > 0 {
		title += " " + strings.Join(j.Tags, " ")
	}
	view := testView{
		Title:       escapeString(j.Title),
		TaggedTitle: escapeString(title),
		Imports:     imports,
	}

	for _, s := range j.Steps {
		sv := testStepView{ID: s.ID, Description: s.Description}
		for _, a := range s.Actions {
			sv.Lines = append(sv.Lines, renderPrimitive(a, v, &warnings))
		}
		for _, a := range s.Assertions {
			sv.Lines = append(sv.Lines, renderPrimitive(a, v, &warnings))
		}
		view.Steps = append(view.Steps, sv)
	}

	var buf strings.Builder
	if err := testTmpl.Execute(&buf, view); err != nil {
		return Result{}, fmt.Errorf("render test: %w", err)
	}
	full := buf.String()

	code, mergeWarnings := applyStrategy(full, opts)
	warnings = append(warnings, mergeWarnings...)

	return Result{Code: code, Warnings: warnings, ImportsAdded: modules}, nil
}

var moduleTmpl = template.Must(template.New("module").Parse(`{{.Imports}}

export class {{.ClassName}} {
  constructor(private page: Page) {}

{{range .Methods}}  async {{.}}(): Promise<void> {
    // BEGIN GENERATED [id={{.}}]
    // TODO: implement {{.}}
    // END GENERATED
  }

{{end}}}
`))

type moduleView struct {
	ClassName string
	Imports   string
	Methods   []string
}

// GenerateModule renders a page-object module scaffold for j: one method
// stub per unique CallModule.Method the journey invokes.
func GenerateModule(j ir.Journey, opts Options) (Result, error) {
	methods := map[string]bool{}
	for _, s := range j.Steps {
		for _, p := range append(append([]ir.Primitive{}, s.Actions...), s.Assertions...) {
			if cm, ok := p.(ir.CallModule); ok {
				methods[cm.Method] = true
			}
		}
	}
	names := make([]string, 0, len(methods))
	for m := range methods {
		names = append(names, m)
	}
	sort.Strings(names)

	view := moduleView{
		ClassName: className(j.ID),
		Imports:   "import { Page } from '@playwright/test';",
		Methods:   names,
	}

	var buf strings.Builder
	if err := moduleTmpl.Execute(&buf, view); err != nil {
		return Result{}, fmt.Errorf("render module: %w", err)
	}
	full := buf.String()

	if opts.Strategy == StrategyBlocks && opts.Existing != "" {
		merged, warnings := mergePageObject(opts.Existing, full, opts.PreserveExisting)
		return Result{Code: merged, Warnings: warnings}, nil
	}

	code, warnings := applyStrategy(full, opts)
	return Result{Code: code, Warnings: warnings}, nil
}

func applyStrategy(full string, opts Options) (string, []string) {
	if opts.Strategy != StrategyBlocks || opts.Existing == "" {
		return full, nil
	}
	existing := Extract(opts.Existing)
	fresh := Extract(full)
	merged := Inject(existing.Preserved, existing.Blocks, fresh.Blocks)
	return merged, existing.Warnings
}

func collectModules(j ir.Journey) []string {
	seen := map[string]bool{}
	var out []string
	visit := func(prims []ir.Primitive) {
		for _, p := range prims {
			if cm, ok := p.(ir.CallModule); ok && !seen[cm.Module] {
				seen[cm.Module] = true
				out = append(out, cm.Module)
			}
		}
	}
	for _, s := range j.Steps {
		visit(s.Actions)
		visit(s.Assertions)
	}
	visit(j.Setup)
	visit(j.Cleanup)
	sort.Strings(out)
	return out
}

func renderImports(modules []string) string {
	lines := []string{"import { test, expect } from '@playwright/test';"}
	for _, m := range modules {
		lines = append(lines, fmt.Sprintf("import { %s } from '../modules/%s';", className(m), m))
	}
	return strings.Join(lines, "\n")
}

func className(id string) string {
	parts := strings.FieldsFunc(id, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	if b.Len() == 0 {
		return "Page"
	}
	return b.String() + "Page"
}
