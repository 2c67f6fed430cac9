// Package fuzzy implements the last-chance matcher consulted before a step
// is given up as blocked: token-Jaccard and Levenshtein similarity against
// a hand-authored list of canonical example utterances per pattern.
package fuzzy

import (
	"regexp"
	"strings"

	"github.com/journeyc/compiler/internal/ir"
)

// Example associates one canonical utterance with the primitive type it is
// meant to exemplify.
type Example struct {
	Text          string
	PrimitiveType ir.PrimitiveType
}

// Options controls FuzzyMatch's thresholds.
type Options struct {
	// MinSimilarity is the floor below which no match is returned.
	MinSimilarity float64
	// ConstructThreshold is the similarity above which a generic primitive
	// is synthesized even when the winning pattern's own regex would not
	// have accepted the text.
	ConstructThreshold float64
}

// DefaultOptions returns the standard thresholds: 0.85 to match at all,
// 0.90 to synthesize a primitive when the winning pattern's own regex
// would not have accepted the text.
func DefaultOptions() Options {
	return Options{MinSimilarity: 0.85, ConstructThreshold: 0.90}
}

// Match is a fuzzy matcher's winning result.
type Match struct {
	Example    Example
	Similarity float64
	Primitive  ir.Primitive
}

// Matcher holds the canonical example corpus.
type Matcher struct {
	examples []Example
}

// New builds a Matcher from an explicit example corpus.
func New(examples []Example) *Matcher {
	return &Matcher{examples: examples}
}

// Default returns a Matcher seeded with canonical examples for every
// pattern family the catalog covers.
func Default() *Matcher {
	return New(defaultExamples())
}

// FuzzyMatch scores text against every canonical example, returning the
// highest scorer at or above opts.MinSimilarity. If the winner's similarity
// is at or above opts.ConstructThreshold, a generic primitive of the
// matched type is synthesized by extracting a target from a quoted
// substring or the first post-verb noun phrase in text; only click, fill,
// select, check, hover, expectVisible and expectNotVisible are synthesized,
// and for any other matched type Primitive is nil. Below MinSimilarity,
// FuzzyMatch returns (nil, false).
func (m *Matcher) FuzzyMatch(text string, opts Options) (*Match, bool) {
	normTokens := tokenize(text)
	var best Example
	var bestScore float64
	for _, ex := range m.examples {
		score := similarity(normTokens, tokenize(ex.Text), text, ex.Text)
		if score > bestScore {
			bestScore = score
			best = ex
		}
	}
	if bestScore < opts.MinSimilarity {
		return nil, false
	}
	var prim ir.Primitive
	if bestScore >= opts.ConstructThreshold {
		prim = construct(best.PrimitiveType, text)
	}
	return &Match{Example: best, Similarity: bestScore, Primitive: prim}, true
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

func tokenize(s string) []string {
	s = strings.ToLower(s)
	fields := nonAlnum.Split(s, -1)
	out := fields[:0]
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// similarity blends token-Jaccard similarity with a normalized Levenshtein
// distance on the raw strings, averaging the two so a match strong in
// either dimension (same words reordered vs. near-identical characters)
// still surfaces.
func similarity(aTokens, bTokens []string, aRaw, bRaw string) float64 {
	j := jaccard(aTokens, bTokens)
	l := 1 - levenshteinRatio(strings.ToLower(aRaw), strings.ToLower(bRaw))
	return (j + l) / 2
}

func jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	setA := map[string]bool{}
	for _, t := range a {
		setA[t] = true
	}
	setB := map[string]bool{}
	for _, t := range b {
		setB[t] = true
	}
	inter := 0
	for t := range setA {
		if setB[t] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// levenshteinRatio returns the Levenshtein edit distance normalized by the
// longer string's length, in [0,1] (0 = identical).
func levenshteinRatio(a, b string) float64 {
	d := levenshtein(a, b)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 0
	}
	return float64(d) / float64(maxLen)
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			best := del
			if ins < best {
				best = ins
			}
			if sub < best {
				best = sub
			}
			curr[j] = best
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

var quotedOrNoun = regexp.MustCompile(`["']([^"']+)["']`)

// construct synthesizes a generic primitive of the given type, extracting
// a target from a quoted substring in text, or falling back to the text
// after the first verb-like word.
func construct(t ir.PrimitiveType, text string) ir.Primitive {
	target := ""
	if m := quotedOrNoun.FindStringSubmatch(text); m != nil {
		target = m[1]
	} else {
		words := strings.Fields(text)
		if len(words) > 1 {
			target = strings.Join(words[1:], " ")
		} else {
			target = text
		}
	}
	loc := ir.Locator{Strategy: ir.StrategyText, Value: target}
	switch t {
	case ir.PrimClick:
		return ir.Click{Locator: loc}
	case ir.PrimFill:
		return ir.Fill{Locator: loc, Value: ir.Literal("")}
	case ir.PrimExpectVisible:
		return ir.ExpectVisible{Locator: loc}
	case ir.PrimExpectNotVisible:
		return ir.ExpectNotVisible{Locator: loc}
	case ir.PrimCheck:
		return ir.Check{Locator: loc}
	case ir.PrimHover:
		return ir.Hover{Locator: loc}
	case ir.PrimSelect:
		return ir.Select{Locator: loc, Option: ir.Literal("")}
	default:
		return nil
	}
}

func defaultExamples() []Example {
	return []Example{
		{"clicks the submit button", ir.PrimClick},
		{"clicks on the sign in link", ir.PrimClick},
		{"fills in the email field with test@example.com", ir.PrimFill},
		{"selects United States from the country dropdown", ir.PrimSelect},
		{"checks the terms and conditions checkbox", ir.PrimCheck},
		{"unchecks the newsletter checkbox", ir.PrimUncheck},
		{"sees the welcome banner", ir.PrimExpectVisible},
		{"does not see the error message", ir.PrimExpectNotVisible},
		{"hovers over the profile avatar", ir.PrimHover},
		{"navigates to /dashboard", ir.PrimGoto},
		{"waits for the spinner to disappear", ir.PrimWaitForHidden},
		{"page title is Dashboard", ir.PrimExpectTitle},
	}
}
