// Package glossary maintains the synonym, label-alias, and module-method
// binding tables that the step mapper consults before pattern matching. A
// Glossary is built by merging an optional caller-supplied YAML file over a
// compile-time default, and — separately — an "extended" glossary loaded
// from a caller-supplied source, with core terms always taking precedence
// over extended ones on an exact match.
package glossary

import (
	"os"
	"strings"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

// ModuleMethod names a page-object module and method a phrase is bound to.
type ModuleMethod struct {
	Module string `yaml:"module" json:"module"`
	Method string `yaml:"method" json:"method"`
}

// file is the on-disk shape of a glossary YAML document.
type file struct {
	Synonyms      map[string]string       `yaml:"synonyms"`
	LabelAliases  map[string]string       `yaml:"labelAliases"`
	ModuleMethods map[string]ModuleMethod `yaml:"moduleMethods"`
}

// Glossary holds the merged synonym, label-alias, and module-method tables.
// All lookups are case-insensitive; keys are stored lower-cased.
type Glossary struct {
	synonyms      map[string]string
	labelAliases  map[string]string
	moduleMethods map[string]ModuleMethod

	extSynonyms      map[string]string
	extLabelAliases  map[string]string
	extModuleMethods map[string]ModuleMethod

	caser cases.Caser
}

// Default returns the compile-time default glossary: a small set of
// synonyms and aliases the pattern catalog and fuzzy matcher are written
// against. Callers almost always layer a project glossary over this with
// Load.
func Default() *Glossary {
	g := &Glossary{
		synonyms:      defaultSynonyms(),
		labelAliases:  map[string]string{},
		moduleMethods: map[string]ModuleMethod{},
		caser:         cases.Fold(),
	}
	return g
}

// fold case-folds s for use as a lookup key. Folding (rather than ASCII
// lowercasing) keeps lookups stable for authors writing step text in
// locales where ToLower and case folding disagree.
func (g *Glossary) fold(s string) string { return g.caser.String(s) }

// defaultSynonyms maps author shorthand to the verb form the pattern
// catalog's own regexes recognize. Verbs the catalog already matches
// directly in every variant it cares about (sees/should see/observes for
// visibility assertions, for instance) are deliberately absent here:
// rewriting them to a different phrase would only defeat the catalog's own
// pattern for that verb.
func defaultSynonyms() map[string]string {
	return map[string]string{
		"tap":         "click",
		"press on":    "click",
		"select on":   "click",
		"hit":         "click",
		"type":        "fill",
		"enter":       "fill",
		"input":       "fill",
		"choose":      "select",
		"pick":        "select",
		"tick":        "check",
		"untick":      "uncheck",
		"navigate to": "go to",
		"visit":       "go to",
		"open":        "go to",
		"btn":         "button",
		"dropdown":    "select",
	}
}

// Load reads path as a YAML glossary file and merges it over Default(),
// file entries winning over defaults on key collision.
func Load(path string) (*Glossary, error) {
	g := Default()
	if path == "" {
		return g, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return g, nil
		}
		return nil, err
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	for k, v := range f.Synonyms {
		g.synonyms[g.fold(k)] = strings.ToLower(v)
	}
	for k, v := range f.LabelAliases {
		g.labelAliases[g.fold(k)] = v
	}
	for k, v := range f.ModuleMethods {
		g.moduleMethods[g.fold(k)] = v
	}
	return g, nil
}

// LoadExtended merges an additional "extended" glossary file into g as a
// second-priority tier: exact matches against the core tables (Default plus
// whatever Load merged in) always win over extended entries.
func (g *Glossary) LoadExtended(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return err
	}
	g.extSynonyms = make(map[string]string, len(f.Synonyms))
	for k, v := range f.Synonyms {
		g.extSynonyms[g.fold(k)] = strings.ToLower(v)
	}
	g.extLabelAliases = make(map[string]string, len(f.LabelAliases))
	for k, v := range f.LabelAliases {
		g.extLabelAliases[g.fold(k)] = v
	}
	g.extModuleMethods = make(map[string]ModuleMethod, len(f.ModuleMethods))
	for k, v := range f.ModuleMethods {
		g.extModuleMethods[g.fold(k)] = v
	}
	return nil
}

// quotedSpan marks the byte range of a quoted substring within step text,
// preserved verbatim by NormalizeStepText.
type quotedSpan struct{ start, end int }

// NormalizeStepText rewrites every non-quoted token in text to its
// canonical synonym form, leaving quoted substrings (single or double)
// untouched. Multi-word synonym phrases (e.g. "navigate to") are matched
// before single-word ones so the longest match wins.
func (g *Glossary) NormalizeStepText(text string) string {
	// Build a combined phrase table, longest-first, core winning ties.
	type entry struct {
		phrase string
		canon  string
	}
	var entries []entry
	seen := map[string]bool{}
	for k, v := range g.synonyms {
		entries = append(entries, entry{k, v})
		seen[k] = true
	}
	for k, v := range g.extSynonyms {
		if !seen[k] {
			entries = append(entries, entry{k, v})
		}
	}
	// Longest phrase first so "navigate to" beats a bare "navigate".
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			if len(entries[j].phrase) > len(entries[i].phrase) {
				entries[i], entries[j] = entries[j], entries[i]
			}
		}
	}

	result := text
	for _, e := range entries {
		result = replaceOutsideQuotes(result, e.phrase, e.canon, quotedSpans(result))
	}
	return result
}

// quotedSpans returns the [start,end) byte ranges of quoted substrings in
// text, for both ' and " delimiters.
func quotedSpans(text string) []quotedSpan {
	var spans []quotedSpan
	for _, q := range []byte{'"', '\''} {
		i := 0
		for i < len(text) {
			start := strings.IndexByte(text[i:], q)
			if start < 0 {
				break
			}
			start += i
			end := strings.IndexByte(text[start+1:], q)
			if end < 0 {
				break
			}
			end = start + 1 + end
			spans = append(spans, quotedSpan{start, end + 1})
			i = end + 1
		}
	}
	return spans
}

func insideAnySpan(pos int, spans []quotedSpan) bool {
	for _, s := range spans {
		if pos >= s.start && pos < s.end {
			return true
		}
	}
	return false
}

// replaceOutsideQuotes performs a case-insensitive whole-word replacement
// of old with new in text, skipping any occurrence that overlaps a quoted
// span.
func replaceOutsideQuotes(text, old, new string, spans []quotedSpan) string {
	lower := strings.ToLower(text)
	oldLower := strings.ToLower(old)
	var b strings.Builder
	i := 0
	for {
		idx := strings.Index(lower[i:], oldLower)
		if idx < 0 {
			b.WriteString(text[i:])
			break
		}
		idx += i
		end := idx + len(old)
		wordBoundary := (idx == 0 || !isWordByte(text[idx-1])) && (end == len(text) || !isWordByte(text[end]))
		if !wordBoundary || insideAnySpan(idx, spans) {
			b.WriteString(text[i : idx+1])
			i = idx + 1
			continue
		}
		b.WriteString(text[i:idx])
		b.WriteString(new)
		i = end
	}
	return b.String()
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// FindLabelAlias resolves label to a literal locator label alias, checking
// core entries before extended ones.
func (g *Glossary) FindLabelAlias(label string) (string, bool) {
	key := g.fold(label)
	if v, ok := g.labelAliases[key]; ok {
		return v, true
	}
	if v, ok := g.extLabelAliases[key]; ok {
		return v, true
	}
	return "", false
}

// GlossaryMatch is the result of a successful module-method lookup.
type GlossaryMatch struct {
	Module string
	Method string
}

// ResolveModuleMethod resolves a free-text phrase to a bound page-object
// module/method, checking core bindings before extended ones.
func (g *Glossary) ResolveModuleMethod(phrase string) (*GlossaryMatch, bool) {
	key := g.fold(strings.TrimSpace(phrase))
	if mm, ok := g.moduleMethods[key]; ok {
		return &GlossaryMatch{Module: mm.Module, Method: mm.Method}, true
	}
	if mm, ok := g.extModuleMethods[key]; ok {
		return &GlossaryMatch{Module: mm.Module, Method: mm.Method}, true
	}
	return nil, false
}

// LookupGlossary is the mapper's entry point: it normalizes text and tries
// to resolve it directly to a module/method binding, treated by the step
// mapper as a pattern hit of primitive type callModule.
func (g *Glossary) LookupGlossary(text string) (*GlossaryMatch, bool) {
	if m, ok := g.ResolveModuleMethod(text); ok {
		return m, true
	}
	normalized := g.NormalizeStepText(text)
	if normalized != text {
		return g.ResolveModuleMethod(normalized)
	}
	return nil, false
}
