package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/journeyc/compiler/internal/ir"
	"github.com/journeyc/compiler/internal/selector"
	"github.com/journeyc/compiler/internal/variant"
)

// escapeString renders s as a double-quoted JS string literal.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}


func renderValue(v ir.ValueSpec) string {
	switch v.Type {
	case ir.ValueActor:
		return "actor." + v.Value
	case ir.ValueRunID:
		return "runId"
	case ir.ValueGenerated:
		return "generate(" + escapeString(v.Value) + ")"
	case ir.ValueTestData:
		return "testData." + v.Value
	default:
		return escapeString(v.Value)
	}
}

func locator(loc ir.Locator) string {
	return selector.ToPlaywrightLocator(loc)
}

// renderPrimitive renders one IR primitive as a line of Playwright test
// code. Only expectToast consults v: with a message and aria-snapshot
// support it emits an aria-snapshot assertion, otherwise a visibility
// check. Blocked and unknown primitives append a warning to *warnings.
func renderPrimitive(p ir.Primitive, v variant.Variant, warnings *[]string) string {
	switch prim := p.(type) {
	case ir.Goto:
		if prim.WaitForLoad {
			return fmt.Sprintf("await page.goto(%s, { waitUntil: 'load' });", escapeString(prim.URL))
		}
		return fmt.Sprintf("await page.goto(%s);", escapeString(prim.URL))
	case ir.Reload:
		return "await page.reload();"
	case ir.GoBack:
		return "await page.goBack();"
	case ir.GoForward:
		return "await page.goForward();"
	case ir.WaitForURL:
		return fmt.Sprintf("await page.waitForURL(%s);", regexOrString(prim.Pattern))
	case ir.WaitForResponse:
		return fmt.Sprintf("await page.waitForResponse(%s);", regexOrString(prim.URLPattern))
	case ir.WaitForLoadingComplete:
		return "await page.locator('[data-loading]').waitFor({ state: 'detached' });"
	case ir.WaitForVisible:
		return fmt.Sprintf("await %s.waitFor({ state: 'visible'%s });", locator(prim.Locator), timeoutOpt(prim.TimeoutMS))
	case ir.WaitForHidden:
		return fmt.Sprintf("await %s.waitFor({ state: 'hidden'%s });", locator(prim.Locator), timeoutOpt(prim.TimeoutMS))
	case ir.WaitForTimeout:
		return fmt.Sprintf("await page.waitForTimeout(%d);", prim.MS)
	case ir.WaitForNetworkIdle:
		return fmt.Sprintf("await page.waitForLoadState('networkidle'%s);", timeoutOpt(prim.TimeoutMS))

	case ir.Click:
		return fmt.Sprintf("await %s.click();", locator(prim.Locator))
	case ir.DblClick:
		return fmt.Sprintf("await %s.dblclick();", locator(prim.Locator))
	case ir.RightClick:
		return fmt.Sprintf("await %s.click({ button: 'right' });", locator(prim.Locator))
	case ir.Hover:
		return fmt.Sprintf("await %s.hover();", locator(prim.Locator))
	case ir.Focus:
		return fmt.Sprintf("await %s.focus();", locator(prim.Locator))
	case ir.Clear:
		return fmt.Sprintf("await %s.clear();", locator(prim.Locator))
	case ir.Fill:
		return fmt.Sprintf("await %s.fill(%s);", locator(prim.Locator), renderValue(prim.Value))
	case ir.Select:
		return fmt.Sprintf("await %s.selectOption(%s);", locator(prim.Locator), renderValue(prim.Option))
	case ir.Check:
		return fmt.Sprintf("await %s.check();", locator(prim.Locator))
	case ir.Uncheck:
		return fmt.Sprintf("await %s.uncheck();", locator(prim.Locator))
	case ir.Press:
		if prim.Locator != nil {
			return fmt.Sprintf("await %s.press(%s);", locator(*prim.Locator), escapeString(prim.Key))
		}
		return fmt.Sprintf("await page.keyboard.press(%s);", escapeString(prim.Key))
	case ir.Upload:
		return fmt.Sprintf("await %s.setInputFiles([%s]);", locator(prim.Locator), joinQuoted(prim.Files))
	case ir.CallModule:
		return fmt.Sprintf("await %s.%s(%s);", prim.Module, prim.Method, renderArgs(prim.Args))

	case ir.ExpectVisible:
		return fmt.Sprintf("await expect(%s).toBeVisible();", locator(prim.Locator))
	case ir.ExpectNotVisible:
		return fmt.Sprintf("await expect(%s).not.toBeVisible();", locator(prim.Locator))
	case ir.ExpectHidden:
		return fmt.Sprintf("await expect(%s).toBeHidden();", locator(prim.Locator))
	case ir.ExpectEnabled:
		return fmt.Sprintf("await expect(%s).toBeEnabled();", locator(prim.Locator))
	case ir.ExpectDisabled:
		return fmt.Sprintf("await expect(%s).toBeDisabled();", locator(prim.Locator))
	case ir.ExpectChecked:
		return fmt.Sprintf("await expect(%s).toBeChecked();", locator(prim.Locator))
	case ir.ExpectText:
		return fmt.Sprintf("await expect(%s).toHaveText(%s);", locator(prim.Locator), escapeString(prim.Value))
	case ir.ExpectValue:
		return fmt.Sprintf("await expect(%s).toHaveValue(%s);", locator(prim.Locator), escapeString(prim.Value))
	case ir.ExpectContainsText:
		return fmt.Sprintf("await expect(%s).toContainText(%s);", locator(prim.Locator), escapeString(prim.Value))
	case ir.ExpectCount:
		return fmt.Sprintf("await expect(%s).toHaveCount(%d);", locator(prim.Locator), prim.Count)
	case ir.ExpectURL:
		return fmt.Sprintf("await expect(page).toHaveURL(%s);", regexOrString(prim.Pattern))
	case ir.ExpectTitle:
		return fmt.Sprintf("await expect(page).toHaveTitle(%s);", escapeString(prim.Title))
	case ir.ExpectToast:
		if prim.Message != "" && v.Supports(variant.FeatureAriaSnapshots) {
			return fmt.Sprintf("await expect(page.getByRole('status')).toMatchAriaSnapshot(%s); // toast: %s",
				escapeString("- status: "+prim.Message), prim.ToastType)
		}
		msg := ""
		if prim.Message != "" {
			msg = fmt.Sprintf(", { hasText: %s }", escapeString(prim.Message))
		}
		return fmt.Sprintf("await expect(page.getByRole('status'%s)).toBeVisible(); // toast: %s", msg, prim.ToastType)

	case ir.Blocked:
		*warnings = append(*warnings, "blocked step rendered as a throw: "+prim.SourceText)
		return fmt.Sprintf("throw new Error(%s); // unmapped: %s", escapeString(prim.Reason), escapeString(prim.SourceText))

	default:
		*warnings = append(*warnings, fmt.Sprintf("unknown primitive kind %q rendered as a no-op comment", p.Kind()))
		return fmt.Sprintf("// unsupported primitive: %s", p.Kind())
	}
}

func timeoutOpt(ms int) string {
	if ms == 0 {
		return ""
	}
	return ", timeout: " + strconv.Itoa(ms)
}

func regexOrString(pattern string) string {
	if looksLikeRegex(pattern) {
		// A bare "/" inside a JS regex literal would close it early.
		return "/" + strings.ReplaceAll(pattern, "/", `\/`) + "/"
	}
	return escapeString(pattern)
}

func looksLikeRegex(s string) bool {
	for _, c := range s {
		switch c {
		case '*', '^', '$', '(', ')', '[', ']', '+', '?', '|':
			return true
		}
	}
	return false
}

func joinQuoted(files []string) string {
	parts := make([]string, len(files))
	for i, f := range files {
		parts[i] = escapeString(f)
	}
	return strings.Join(parts, ", ")
}

func renderArgs(args map[string]ir.IRValue) string {
	if len(args) == 0 {
		return ""
	}
	obj := ir.IRObject(args)
	var b strings.Builder
	b.WriteString("{ ")
	for i, k := range obj.SortedKeys() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(renderIRValue(obj[k]))
	}
	b.WriteString(" }")
	return b.String()
}

func renderIRValue(v ir.IRValue) string {
	switch val := v.(type) {
	case ir.IRNull:
		return "null"
	case ir.IRString:
		return escapeString(string(val))
	case ir.IRInt:
		return strconv.FormatInt(int64(val), 10)
	case ir.IRBool:
		if val {
			return "true"
		}
		return "false"
	case ir.IRArray:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = renderIRValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ir.IRObject:
		var b strings.Builder
		b.WriteString("{ ")
		for i, k := range val.SortedKeys() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k)
			b.WriteString(": ")
			b.WriteString(renderIRValue(val[k]))
		}
		b.WriteString(" }")
		return b.String()
	default:
		return "undefined"
	}
}
