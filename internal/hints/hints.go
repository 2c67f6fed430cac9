// Package hints implements the author-facing inline hint grammar:
// "(key=value, key="value with spaces", …)" annotations that override
// inferred locators or inject behavior attributes on a step. Hints are
// stripped from step text before it reaches the pattern catalog, glossary,
// or fuzzy matcher.
package hints

import (
	"regexp"
	"strconv"
	"strings"
)

// Hints carries every recognized key from one hint block. A zero Hints
// value means no hints were present.
type Hints struct {
	Role    string
	TestID  string
	Label   string
	Text    string
	Exact   *bool
	Level   *int
	Signal  string
	Module  string
	Wait    string
	Timeout *int
}

// HasAny reports whether any hint key was supplied.
func (h Hints) HasAny() bool {
	return h.Role != "" || h.TestID != "" || h.Label != "" || h.Text != "" ||
		h.Exact != nil || h.Level != nil || h.Signal != "" || h.Module != "" ||
		h.Wait != "" || h.Timeout != nil
}

// recognizedKeys enumerates the hint grammar's allowed keys.
var recognizedKeys = map[string]bool{
	"role": true, "testid": true, "label": true, "text": true,
	"exact": true, "level": true, "signal": true, "module": true,
	"wait": true, "timeout": true,
}

// ariaRoles is the allow-list checked against a role hint value. Unknown
// roles produce a warning, not an error.
var ariaRoles = map[string]bool{
	"button": true, "link": true, "textbox": true, "checkbox": true,
	"radio": true, "combobox": true, "listbox": true, "option": true,
	"menuitem": true, "tab": true, "tabpanel": true, "dialog": true,
	"alert": true, "heading": true, "img": true, "list": true,
	"listitem": true, "navigation": true, "search": true, "switch": true,
	"table": true, "row": true, "cell": true, "columnheader": true,
	"rowheader": true, "banner": true, "contentinfo": true, "main": true,
	"form": true, "region": true, "status": true, "tooltip": true,
	"progressbar": true, "slider": true, "spinbutton": true, "group": true,
}

// hintBlock matches one "(...)" block that looks like a hint grammar:
// a parenthesized group containing at least one "key=value" pair.
var hintBlock = regexp.MustCompile(`\(([a-zA-Z][a-zA-Z0-9_]*\s*=\s*(?:"[^"]*"|'[^']*'|[^,()]+)(?:\s*,\s*[a-zA-Z][a-zA-Z0-9_]*\s*=\s*(?:"[^"]*"|'[^']*'|[^,()]+))*)\)`)

// pair matches one key=value entry inside a hint block.
var pair = regexp.MustCompile(`([a-zA-Z][a-zA-Z0-9_]*)\s*=\s*(?:"([^"]*)"|'([^']*)'|([^,()]+))`)

// ParseHints scans text for a hint block, returning the parsed hints, the
// text with the hint block removed (whitespace collapsed), and any
// warnings (e.g. an unrecognized role value). Only the first hint block
// found is parsed; a step is expected to carry at most one.
func ParseHints(text string) (Hints, string, []string) {
	loc := hintBlock.FindStringSubmatchIndex(text)
	if loc == nil {
		return Hints{}, text, nil
	}

	body := text[loc[2]:loc[3]]
	clean := strings.TrimSpace(text[:loc[0]] + " " + text[loc[1]:])
	clean = collapseSpaces(clean)

	var h Hints
	var warnings []string
	for _, m := range pair.FindAllStringSubmatch(body, -1) {
		key := strings.ToLower(m[1])
		value := firstNonEmpty(m[2], m[3], m[4])
		value = strings.TrimSpace(value)
		if !recognizedKeys[key] {
			warnings = append(warnings, "unrecognized hint key: "+key)
			continue
		}
		switch key {
		case "role":
			h.Role = strings.ToLower(value)
			if !ariaRoles[h.Role] {
				warnings = append(warnings, "unrecognized ARIA role: "+value)
			}
		case "testid":
			h.TestID = value
		case "label":
			h.Label = value
		case "text":
			h.Text = value
		case "exact":
			b := value == "true" || value == "1" || value == "yes"
			h.Exact = &b
		case "level":
			if n, err := strconv.Atoi(value); err == nil {
				h.Level = &n
			} else {
				warnings = append(warnings, "invalid level hint: "+value)
			}
		case "signal":
			h.Signal = value
		case "module":
			h.Module = value
		case "wait":
			h.Wait = value
		case "timeout":
			if n, err := strconv.Atoi(value); err == nil {
				h.Timeout = &n
			} else {
				warnings = append(warnings, "invalid timeout hint: "+value)
			}
		}
	}
	return h, clean, warnings
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func collapseSpaces(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
