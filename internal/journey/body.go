package journey

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	acHeading         = regexp.MustCompile(`(?i)^#{1,6}\s*Acceptance Criteria\s*$`)
	proceduralHeading = regexp.MustCompile(`(?i)^#{1,6}\s*Procedural Steps\s*$`)
	dataHeading       = regexp.MustCompile(`(?i)^#{1,6}\s*(Data Notes|Environment|Data/Environment Notes)\s*$`)
	anyHeading        = regexp.MustCompile(`^#{1,6}\s+`)

	acEntryHeading = regexp.MustCompile(`(?i)^#{1,6}\s*(AC-\d+)\s*:?\s*(.*)$`)
	bulletLine     = regexp.MustCompile(`^\s*[-*]\s+(.*)$`)
	numberedLine   = regexp.MustCompile(`^\s*(\d+)\.\s+(.*)$`)
	acRefInline    = regexp.MustCompile(`\((AC-\d+)\)`)
)

type section int

const (
	sectionNone section = iota
	sectionAC
	sectionProcedural
	sectionData
)

// parseBody extracts the three recognized sections from the Journey's
// Markdown body. Body parsing is lossy by design: any content outside
// these sections (an introduction, an out-of-band note, a second-level
// heading that isn't one of the three) is discarded.
func parseBody(body string) ([]ACEntry, []ProceduralStep, []DataNote) {
	lines := strings.Split(body, "\n")

	var ac []ACEntry
	var steps []ProceduralStep
	var notes []DataNote

	current := sectionNone
	var currentAC *ACEntry

	flushAC := func() {
		if currentAC != nil {
			ac = append(ac, *currentAC)
			currentAC = nil
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimRight(line, "\r")

		switch {
		case acHeading.MatchString(trimmed):
			flushAC()
			current = sectionAC
			continue
		case proceduralHeading.MatchString(trimmed):
			flushAC()
			current = sectionProcedural
			continue
		case dataHeading.MatchString(trimmed):
			flushAC()
			current = sectionData
			continue
		case anyHeading.MatchString(trimmed) && !acEntryHeading.MatchString(trimmed):
			// An unrecognized heading ends whichever section we were in.
			flushAC()
			current = sectionNone
			continue
		}

		switch current {
		case sectionAC:
			if m := acEntryHeading.FindStringSubmatch(trimmed); m != nil {
				flushAC()
				currentAC = &ACEntry{ID: m[1], Title: strings.TrimSpace(m[2])}
				continue
			}
			if m := bulletLine.FindStringSubmatch(trimmed); m != nil && currentAC != nil {
				currentAC.Bullets = append(currentAC.Bullets, strings.TrimSpace(m[1]))
			}
		case sectionProcedural:
			if m := numberedLine.FindStringSubmatch(trimmed); m != nil {
				idx, _ := strconv.Atoi(m[1])
				text := strings.TrimSpace(m[2])
				acRef := ""
				if ref := acRefInline.FindStringSubmatch(text); ref != nil {
					acRef = ref[1]
				}
				steps = append(steps, ProceduralStep{Index: idx, Text: text, ACRef: acRef})
			}
		case sectionData:
			if m := bulletLine.FindStringSubmatch(trimmed); m != nil {
				notes = append(notes, DataNote(strings.TrimSpace(m[1])))
			}
		}
	}
	flushAC()

	return ac, steps, notes
}
