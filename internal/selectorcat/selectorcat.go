// Package selectorcat implements the selector catalog: a versioned map
// scanned from application source, recording every data-testid occurrence
// and tracking CSS debt, plus the inference fallback that maps keywords to
// ARIA roles when the catalog has nothing better to offer.
package selectorcat

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/journeyc/compiler/internal/ir"
)

// Entry is one catalog-tracked selector.
type Entry struct {
	ID       string `json:"id"`
	Strategy string `json:"strategy"`
	Value    string `json:"value"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
}

// Component groups selectors belonging to one reusable UI component.
type Component struct {
	Selectors []string `json:"selectors,omitempty"`
}

// Page groups the components and selectors belonging to one application
// page.
type Page struct {
	Components []string `json:"components,omitempty"`
	Selectors  []string `json:"selectors,omitempty"`
}

// Usage records one file:line occurrence of a CSS-debt selector.
type Usage struct {
	File string `json:"file"`
	Line int    `json:"line"`
}

// CSSDebtEntry records a selector the catalog considers technical debt
// (a CSS strategy locator that should eventually be replaced by a
// data-testid or role-based one).
type CSSDebtEntry struct {
	Selector string  `json:"selector"`
	Usages   []Usage `json:"usages"`
	Priority string  `json:"priority"` // "high", "medium", "low"
	Reason   string  `json:"reason"`
}

// Catalog is the versioned selector catalog.
type Catalog struct {
	Version    int                  `json:"version"`
	Selectors  map[string]Entry     `json:"selectors"`
	Components map[string]Component `json:"components"`
	Pages      map[string]Page      `json:"pages"`
	TestIDs    []string             `json:"testIds"`
	CSSDebt    []CSSDebtEntry       `json:"cssDebt"`
}

const catalogVersion = 1

func empty() *Catalog {
	return &Catalog{
		Version:    catalogVersion,
		Selectors:  map[string]Entry{},
		Components: map[string]Component{},
		Pages:      map[string]Page{},
	}
}

// ScanOptions controls a source scan.
type ScanOptions struct {
	// Attribute is the test-ID attribute name to look for, defaulting to
	// "data-testid".
	Attribute string
	// Globs are file glob patterns (relative to Root) to scan. Defaults
	// to every .ts/.tsx/.jsx/.vue/.html file under Root.
	Globs []string
}

func (o ScanOptions) attribute() string {
	if o.Attribute == "" {
		return "data-testid"
	}
	return o.Attribute
}

func (o ScanOptions) globs() []string {
	if len(o.Globs) > 0 {
		return o.Globs
	}
	return []string{"**/*.ts", "**/*.tsx", "**/*.jsx", "**/*.vue", "**/*.html"}
}

// cssDebtPatterns flags selector literals worth tracking as CSS debt:
// class selectors, nth-child, and ID selectors that look auto-generated.
var cssDebtPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\.[a-zA-Z][\w-]*\.[a-zA-Z][\w-]*`), // chained class selector
	regexp.MustCompile(`:nth-child\(`),
	regexp.MustCompile(`#[a-zA-Z_-]*\d{3,}`),
}

var (
	cacheMu sync.Mutex
	cache   = map[string]*Catalog{}
)

// Scan walks root looking for test-ID attribute occurrences and CSS-debt
// candidates in `.locator("...")`/`querySelector("...")`-style calls. The
// result is cached process-wide keyed by root; call InvalidateCache to
// force a rescan.
func Scan(root string, opts ScanOptions) (*Catalog, error) {
	cacheMu.Lock()
	if c, ok := cache[root]; ok {
		cacheMu.Unlock()
		return c, nil
	}
	cacheMu.Unlock()

	cat := empty()
	testIDRe := regexp.MustCompile(opts.attribute() + `\s*=\s*["']([^"']+)["']`)
	cssCallRe := regexp.MustCompile(`(?:locator|querySelector)\(\s*["']([^"']+)["']`)

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !matchesAnyGlob(path, opts.globs(), root) {
			return nil
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil // best-effort scan; unreadable files are skipped
		}
		rel, _ := filepath.Rel(root, path)
		for lineNo, line := range strings.Split(string(data), "\n") {
			for _, m := range testIDRe.FindAllStringSubmatch(line, -1) {
				id := m[1]
				cat.TestIDs = append(cat.TestIDs, id)
				cat.Selectors[id] = Entry{ID: id, Strategy: "testid", Value: id, File: rel, Line: lineNo + 1}
			}
			for _, m := range cssCallRe.FindAllStringSubmatch(line, -1) {
				sel := m[1]
				if !isCSSDebt(sel) {
					continue
				}
				addCSSDebt(cat, sel, rel, lineNo+1)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cacheMu.Lock()
	cache[root] = cat
	cacheMu.Unlock()
	return cat, nil
}

// InvalidateCache forces the next Scan(root, ...) to rescan instead of
// returning the process-wide cached result.
func InvalidateCache(root string) {
	cacheMu.Lock()
	delete(cache, root)
	cacheMu.Unlock()
}

func isCSSDebt(sel string) bool {
	for _, re := range cssDebtPatterns {
		if re.MatchString(sel) {
			return true
		}
	}
	return false
}

func addCSSDebt(cat *Catalog, sel, file string, line int) {
	for i := range cat.CSSDebt {
		if cat.CSSDebt[i].Selector == sel {
			cat.CSSDebt[i].Usages = append(cat.CSSDebt[i].Usages, Usage{File: file, Line: line})
			return
		}
	}
	priority := "medium"
	reason := "fragile CSS selector"
	if strings.Contains(sel, "nth-child") {
		priority = "high"
		reason = "position-dependent selector (nth-child)"
	}
	cat.CSSDebt = append(cat.CSSDebt, CSSDebtEntry{
		Selector: sel,
		Usages:   []Usage{{File: file, Line: line}},
		Priority: priority,
		Reason:   reason,
	})
}

func matchesAnyGlob(path string, globs []string, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	base := filepath.Base(path)
	for _, g := range globs {
		pattern := strings.TrimPrefix(g, "**/")
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
		if ok, _ := filepath.Match(g, rel); ok {
			return true
		}
	}
	return false
}

// Load reads a persisted catalog JSON file from disk.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return empty(), nil
		}
		return nil, err
	}
	cat := empty()
	if err := json.Unmarshal(data, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// Save atomically writes cat to path.
func Save(cat *Catalog, path string) error {
	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp, err := os.CreateTemp(dir, ".selectorcat-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// keywordRole maps a keyword that might appear in step text to an ARIA
// role, used by the rule-set fallback when the catalog has no suggestion.
var keywordRole = map[string]string{
	"button": "button", "link": "link", "textbox": "textbox",
	"input": "textbox", "dropdown": "combobox", "select": "combobox",
	"checkbox": "checkbox", "radio": "radio", "tab": "tab",
	"menu item": "menuitem", "heading": "heading", "dialog": "dialog",
}

var quotedText = regexp.MustCompile(`["']([^"']+)["']`)

// InferSelectorWithCatalog resolves step text to a Locator: first by
// consulting the catalog (a slug derived from text checked against known
// test IDs, falling back to the slug of the first quoted substring checked
// against the same test IDs), then by the keyword→role rule set, taking
// the name from the first quoted substring, and finally a text locator on
// that quoted substring.
func InferSelectorWithCatalog(cat *Catalog, text string) (ir.Locator, bool) {
	name, hasName := firstQuoted(text)

	if cat != nil {
		slug := slugify(text)
		for _, id := range cat.TestIDs {
			if strings.Contains(strings.ToLower(id), slug) || slugify(id) == slug {
				return ir.Locator{Strategy: ir.StrategyTestID, Value: id}, true
			}
		}
		if hasName {
			nameSlug := slugify(name)
			for _, id := range cat.TestIDs {
				if strings.Contains(strings.ToLower(id), nameSlug) {
					return ir.Locator{Strategy: ir.StrategyTestID, Value: id}, true
				}
			}
		}
	}

	lower := strings.ToLower(text)
	for kw, role := range keywordRole {
		if strings.Contains(lower, kw) {
			loc := ir.Locator{Strategy: ir.StrategyRole, Value: role}
			if hasName {
				loc.Options = &ir.LocatorOptions{Name: name}
			}
			return loc, true
		}
	}

	if hasName {
		return ir.Locator{Strategy: ir.StrategyText, Value: name}, true
	}
	return ir.Locator{}, false
}

func firstQuoted(text string) (string, bool) {
	m := quotedText.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]+`)

func slugify(s string) string {
	return strings.Trim(strings.ToLower(nonAlnum.ReplaceAllString(s, "-")), "-")
}

// RenderCSSDebtMarkdown renders the catalog's CSS-debt ledger as a
// human-readable report, for tracking selector migration progress.
func RenderCSSDebtMarkdown(cat *Catalog) string {
	var b strings.Builder
	b.WriteString("# CSS Selector Debt\n\n")
	if len(cat.CSSDebt) == 0 {
		b.WriteString("No tracked CSS debt.\n")
		return b.String()
	}
	b.WriteString("| Selector | Priority | Reason | Usages |\n|---|---|---|---|\n")
	for _, d := range cat.CSSDebt {
		b.WriteString("| `" + d.Selector + "` | " + d.Priority + " | " + d.Reason + " | " + usageCount(d.Usages) + " |\n")
	}
	return b.String()
}

func usageCount(usages []Usage) string {
	return strconv.Itoa(len(usages))
}
