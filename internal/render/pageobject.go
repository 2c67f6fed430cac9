package render

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// mergePageObject combines a freshly rendered page-object module with an
// existing one on disk: parse both files, ensure imports, add missing
// methods, replace existing declarations unless preserveExisting, and
// emit-and-warn if a transform can't be located safely.
//
// Class/method structure is located with a real parse tree
// (github.com/smacker/go-tree-sitter + its typescript grammar) rather than
// brace-counting regexes, so a method body containing nested braces,
// template literals, or an embedded object literal splices correctly.
// Import-line merging stays line-oriented text surgery: import statements
// are single-line, fixed-grammar declarations that don't need a parse tree
// to locate.
func mergePageObject(existing, fresh string, preserveExisting bool) (string, []string) {
	var warnings []string

	out := ensureImports(existing, fresh)

	freshMethods, _, err := parseClassMethods(fresh)
	if err != nil {
		warnings = append(warnings, "rendered page object failed to parse, no methods merged: "+err.Error())
		return out, warnings
	}

	for _, fb := range freshMethods {
		spans, closeIdx, err := parseClassMethods(out)
		if err != nil || closeIdx < 0 {
			out = appendMethodBlockFallback(out, fb)
			warnings = append(warnings, "page-object class body not parseable, appended "+fb.name+" via text fallback")
			continue
		}

		if existingSpan, ok := findSpan(spans, fb.name); ok {
			if preserveExisting {
				continue
			}
			out = out[:existingSpan.start] + fb.text + out[existingSpan.end:]
			continue
		}
		out = out[:closeIdx] + "\n  " + fb.text + "\n" + out[closeIdx:]
	}

	return out, warnings
}

// methodSpan is one method_definition's name and its byte range within the
// source string it was parsed from.
type methodSpan struct {
	name       string
	text       string
	start, end int
}

func findSpan(spans []methodSpan, name string) (methodSpan, bool) {
	for _, s := range spans {
		if s.name == name {
			return s, true
		}
	}
	return methodSpan{}, false
}

// parseClassMethods parses src as TypeScript and returns one methodSpan per
// method_definition in the first class declaration's body, in source
// order, plus the byte offset of that class body's closing brace (-1 if no
// class declaration is found).
func parseClassMethods(src string) ([]methodSpan, int, error) {
	content := []byte(src)

	parser := sitter.NewParser()
	parser.SetLanguage(typescript.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, -1, fmt.Errorf("parse page object: %w", err)
	}
	defer tree.Close()

	class := findClassDeclaration(tree.RootNode())
	if class == nil {
		return nil, -1, nil
	}
	body := class.ChildByFieldName("body")
	if body == nil {
		return nil, -1, nil
	}

	var spans []methodSpan
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		if member.Type() != "method_definition" {
			continue
		}
		nameNode := member.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := string(content[nameNode.StartByte():nameNode.EndByte()])
		if name == "constructor" {
			// The grammar reports constructors as method_definitions too;
			// the merge never replaces or re-appends one.
			continue
		}
		spans = append(spans, methodSpan{
			name:  name,
			text:  string(content[member.StartByte():member.EndByte()]),
			start: int(member.StartByte()),
			end:   int(member.EndByte()),
		})
	}

	closeIdx := int(body.EndByte()) - 1
	return spans, closeIdx, nil
}

// findClassDeclaration returns the first class_declaration reachable from
// n, recursing into export_statement wrappers (`export class X {...}`).
func findClassDeclaration(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "class_declaration":
			return child
		case "export_statement":
			if found := findClassDeclaration(child); found != nil {
				return found
			}
		}
	}
	return nil
}

// appendMethodBlockFallback inserts fb's text before the last closing brace
// in existing, used only when existing's class body can't be located by
// the parser (e.g. a hand-edited file with a syntax error).
func appendMethodBlockFallback(existing string, fb methodSpan) string {
	idx := strings.LastIndex(existing, "}")
	if idx < 0 {
		return existing + "\n" + fb.text + "\n"
	}
	return existing[:idx] + "\n  " + fb.text + "\n" + existing[idx:]
}

var importLineRe = regexp.MustCompile(`(?m)^import\s+\{([^}]*)\}\s+from\s+'([^']+)';\s*$`)

// ensureImports merges named imports from fresh's import lines into
// existing's matching import-source lines, adding a new import line
// entirely when existing has none from that source.
func ensureImports(existing, fresh string) string {
	freshImports := importLineRe.FindAllStringSubmatch(fresh, -1)
	for _, fi := range freshImports {
		names := splitNames(fi[1])
		source := fi[2]

		existingMatches := importLineRe.FindAllStringSubmatchIndex(existing, -1)
		found := false
		for _, m := range existingMatches {
			srcStart, srcEnd := m[4], m[5]
			if existing[srcStart:srcEnd] != source {
				continue
			}
			found = true
			nameStart, nameEnd := m[2], m[3]
			have := splitNames(existing[nameStart:nameEnd])
			haveSet := map[string]bool{}
			for _, n := range have {
				haveSet[n] = true
			}
			var added bool
			for _, n := range names {
				if !haveSet[n] {
					have = append(have, n)
					added = true
				}
			}
			if added {
				existing = existing[:nameStart] + " " + strings.Join(have, ", ") + " " + existing[nameEnd:]
			}
			break
		}
		if !found {
			existing = "import { " + strings.Join(names, ", ") + " } from '" + source + "';\n" + existing
		}
	}
	return existing
}

func splitNames(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
