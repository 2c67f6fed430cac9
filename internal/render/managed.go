package render

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	beginRe = regexp.MustCompile(`^(\s*)//\s*BEGIN GENERATED(?:\s*\[id=([^\]]+)\])?\s*$`)
	endRe   = regexp.MustCompile(`^\s*//\s*END GENERATED\s*$`)
)

// Block is one managed region extracted from an existing generated file.
type Block struct {
	ID      string // empty when the region carries no [id=...] tag
	Content string
	Indent  string
}

// ExtractResult is the output of Extract: the blocks found, a preserved
// template with each block's content replaced by a positional placeholder,
// and any warnings about malformed markers.
type ExtractResult struct {
	Blocks    []Block
	Preserved string
	Warnings  []string
}

func placeholder(i int) string { return fmt.Sprintf("\x00BLOCK:%d\x00", i) }

// Extract scans existing generated source for `BEGIN GENERATED .. END
// GENERATED` regions. A nested BEGIN closes the prior region early and
// raises a "nested" warning; an unclosed region at EOF raises an
// "unclosed" warning and its content is discarded. The BEGIN marker line
// itself stays in Preserved, but no block or placeholder is recorded for
// it, so Inject does not refill that region.
func Extract(existing string) ExtractResult {
	lines := strings.Split(existing, "\n")
	var out []string
	var blocks []Block

	inBlock := false
	var curIndent, curID string
	var curContent []string
	var warnings []string

	flush := func(discard bool) {
		if !inBlock {
			return
		}
		if discard {
			warnings = append(warnings, "unclosed managed region discarded at EOF")
		} else {
			idx := len(blocks)
			blocks = append(blocks, Block{ID: curID, Content: strings.Join(curContent, "\n"), Indent: curIndent})
			out = append(out, placeholder(idx))
		}
		inBlock = false
		curContent = nil
		curID = ""
	}

	for _, line := range lines {
		if m := beginRe.FindStringSubmatch(line); m != nil {
			if inBlock {
				warnings = append(warnings, "nested BEGIN GENERATED marker closed the prior region early")
				flush(false)
			}
			inBlock = true
			curIndent, curID = m[1], m[2]
			out = append(out, line)
			continue
		}
		if endRe.MatchString(line) {
			if !inBlock {
				out = append(out, line)
				continue
			}
			flush(false)
			out = append(out, line)
			continue
		}
		if inBlock {
			curContent = append(curContent, line)
			continue
		}
		out = append(out, line)
	}
	flush(true)

	return ExtractResult{Blocks: blocks, Preserved: strings.Join(out, "\n"), Warnings: warnings}
}

// Inject merges newBlocks into preserved (the Preserved field of a prior
// Extract call): a new block is matched to a placeholder by ID when the
// original block at that position carried one, falling back to positional
// order; unmatched new blocks are appended at the end of the file. An old
// region no new block matched keeps its existing content.
func Inject(preserved string, oldBlocks []Block, newBlocks []Block) string {
	matchedNew := make([]bool, len(newBlocks))
	resolvedSlot := make([]bool, len(oldBlocks))
	resolved := make([]string, len(oldBlocks))

	// Pass 1: match by id.
	for i, old := range oldBlocks {
		if old.ID == "" {
			continue
		}
		for j, nb := range newBlocks {
			if !matchedNew[j] && nb.ID == old.ID {
				resolved[i] = nb.Content
				resolvedSlot[i] = true
				matchedNew[j] = true
				break
			}
		}
	}
	// Pass 2: remaining new blocks fill remaining old slots positionally.
	nextNew := 0
	for i := range oldBlocks {
		if resolvedSlot[i] {
			continue
		}
		for nextNew < len(newBlocks) && matchedNew[nextNew] {
			nextNew++
		}
		if nextNew >= len(newBlocks) {
			break
		}
		resolved[i] = newBlocks[nextNew].Content
		resolvedSlot[i] = true
		matchedNew[nextNew] = true
		nextNew++
	}

	for i := range oldBlocks {
		if !resolvedSlot[i] {
			resolved[i] = oldBlocks[i].Content
			resolvedSlot[i] = true
		}
	}

	out := preserved
	for i, content := range resolved {
		out = strings.Replace(out, placeholder(i), content, 1)
	}

	var appended []string
	for j, nb := range newBlocks {
		if !matchedNew[j] {
			begin := "// BEGIN GENERATED"
			if nb.ID != "" {
				begin = fmt.Sprintf("// BEGIN GENERATED [id=%s]", nb.ID)
			}
			appended = append(appended, begin, nb.Content, "// END GENERATED")
		}
	}
	if len(appended) > 0 {
		out = strings.TrimRight(out, "\n") + "\n" + strings.Join(appended, "\n") + "\n"
	}
	return out
}
