package menu

import (
	"slices"
	"strings"
)

// Block is a section and its dishes, as written to the output document.
type Block struct {
	Section string   `json:"section"`
	Items   []string `json:"items"`
}

// Sections accumulates dishes per section. Sections are remembered in the order
// they were first seen and dishes within a section never repeat.
type Sections struct {
	order []string
	items map[string][]string
	seen  map[string]map[string]struct{}
}

func NewSections() *Sections {
	return &Sections{
		items: make(map[string][]string),
		seen:  make(map[string]map[string]struct{}),
	}
}

// Add appends `item` to `section` unless it is already there.
func (s *Sections) Add(section, item string) {
	seen, ok := s.seen[section]
	if !ok {
		seen = make(map[string]struct{})
		s.seen[section] = seen
		s.order = append(s.order, section)
	}
	if _, dup := seen[item]; dup {
		return
	}
	seen[item] = struct{}{}
	s.items[section] = append(s.items[section], item)
}

// Len is the amount of non-empty sections.
func (s *Sections) Len() int {
	n := 0
	for _, section := range s.order {
		if len(s.items[section]) > 0 {
			n++
		}
	}
	return n
}

// Blocks renders the non-empty sections in the order they were first seen.
func (s *Sections) Blocks() []Block {
	out := []Block{}
	for _, section := range s.order {
		items := s.items[section]
		if len(items) == 0 {
			continue
		}
		out = append(out, Block{
			Section: section,
			Items:   slices.Clone(items),
		})
	}
	return out
}

// Sorted renders the non-empty sections ordered by their lowercased name.
func (s *Sections) Sorted() []Block {
	out := s.Blocks()
	sortBlocks(out)
	return out
}

// Flatten concatenates the dishes of every section in section order, dropping repeats.
func (s *Sections) Flatten() []string {
	var all []string
	for _, section := range s.order {
		all = append(all, s.items[section]...)
	}
	return Dedupe(all)
}

// Aggregate groups placements by section.
func Aggregate(placements []Placement) *Sections {
	sections := NewSections()
	for _, p := range placements {
		sections.Add(p.Section, p.Item)
	}
	return sections
}

// Dedupe removes repeated strings while keeping the first occurrence of each.
// It never returns nil.
func Dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Merge combines blocks that share a section name, concatenating their dishes in
// encounter order without repeats, and sorts the result by lowercased section name.
// Blocks without a section name are merged into OtherSection.
func Merge(blocks []Block) []Block {
	sections := NewSections()
	for _, b := range blocks {
		section := b.Section
		if section == "" {
			section = OtherSection
		}
		if len(b.Items) == 0 {
			continue
		}
		for _, item := range b.Items {
			sections.Add(section, item)
		}
	}
	return sections.Sorted()
}

func sortBlocks(blocks []Block) {
	slices.SortStableFunc(blocks, func(a, b Block) int {
		return strings.Compare(strings.ToLower(a.Section), strings.ToLower(b.Section))
	})
}
