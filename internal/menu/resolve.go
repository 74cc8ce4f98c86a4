package menu

import "strings"

// OtherSection is the section of a dish that nothing else could place.
const OtherSection = "Other"

// ResolveSection picks the section of a dish given its explicit hint and the
// currently open header (empty if none). The open header is preferred over
// the generic "Other".
func ResolveSection(hint, header string) string {
	section := strings.TrimSpace(hint)
	if section == "" || section == OtherSection {
		if header != "" {
			return header
		}
		return OtherSection
	}
	return section
}

// Placement is a dish assigned to a section.
type Placement struct {
	Section string
	Item    string
}

// Scan is the state carried across a linear pass over a day's entries.
// The zero value has no open header.
type Scan struct {
	header string
}

// Header returns the currently open header.
func (s Scan) Header() string {
	return s.header
}

// Step consumes one classification, it returns the next state and, for dishes,
// where the dish was placed.
func (s Scan) Step(c Classification) (Scan, Placement, bool) {
	switch c.Kind {
	case Header:
		return Scan{header: c.Text}, Placement{}, false
	case Food:
		return s, Placement{
			Section: ResolveSection(c.SectionHint, s.header),
			Item:    c.Text,
		}, true
	}
	return s, Placement{}, false
}

// foldClassifications places every dish in `classified`, in order.
func foldClassifications(classified []Classification) []Placement {
	var out []Placement
	scan := Scan{}
	for _, c := range classified {
		var placement Placement
		var placed bool
		scan, placement, placed = scan.Step(c)
		if placed {
			out = append(out, placement)
		}
	}
	return out
}

// Fold classifies and places every dish of a day's entries, in order.
func Fold(entries []Entry) []Placement {
	classified := make([]Classification, len(entries))
	for i, e := range entries {
		classified[i] = Classify(e)
	}
	return foldClassifications(classified)
}
