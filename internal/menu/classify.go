package menu

import (
	"strings"

	"github.com/haoyu-chen-me/seawolf-dine/internal/textutil"
)

type Kind int

const (
	Ignored Kind = iota
	Food
	Header
)

func (k Kind) String() string {
	switch k {
	case Food:
		return "food"
	case Header:
		return "header"
	default:
		return "ignored"
	}
}

// Classification is the result of looking at a single Entry.
type Classification struct {
	Kind Kind
	// Text is the food name for Food and the header text for Header.
	Text string
	// SectionHint is the explicit section name carried by a Food entry, if any.
	SectionHint string
}

// FoodItem builds a Food classification.
func FoodItem(name, sectionHint string) Classification {
	return Classification{Kind: Food, Text: name, SectionHint: sectionHint}
}

// HeaderText builds a Header classification.
func HeaderText(text string) Classification {
	return Classification{Kind: Header, Text: text}
}

// Classify decides whether an entry is a dish, a section header or noise.
func Classify(entry Entry) Classification {
	name := strings.TrimSpace(entry.FoodName)
	if entry.HasFood && name != "" {
		return FoodItem(name, entry.sectionHint())
	}
	if entry.HasFood {
		return Classification{Kind: Ignored}
	}

	for _, candidate := range entry.headerCandidates() {
		text := textutil.PlainText(candidate)
		if text != "" {
			return HeaderText(text)
		}
	}
	return Classification{Kind: Ignored}
}

// Closure reports whether a day's entries are a single holiday closure notice,
// returning the closure text if so.
func Closure(entries []Entry) (string, bool) {
	if len(entries) != 1 {
		return "", false
	}
	entry := entries[0]
	if !entry.IsHoliday {
		return "", false
	}
	text := textutil.PlainText(entry.Text)
	if text == "" {
		return "", false
	}
	return text, true
}
