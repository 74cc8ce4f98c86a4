package menu

import (
	"fmt"
	"regexp"
)

// Bucket is a coarse part of the day that sections are grouped into.
type Bucket string

const (
	Breakfast Bucket = "breakfast"
	Lunch     Bucket = "lunch"
	Dinner    Bucket = "dinner"
	LateNight Bucket = "late_night"
	Brunch    Bucket = "brunch"
)

var (
	weekdayBuckets = []Bucket{Breakfast, Lunch, Dinner, LateNight}
	weekendBuckets = []Bucket{Brunch, Dinner}
)

// KeywordRule sends sections whose name matches Pattern to Bucket.
type KeywordRule struct {
	Bucket  Bucket `json:"bucket"`
	Pattern string `json:"pattern"`
}

// PartitionConfig describes how a vendor's sections map onto meal buckets.
type PartitionConfig struct {
	// Keywords are tried in order, the first match wins.
	Keywords []KeywordRule `json:"keywords"`
	// Fallback is the bucket of sections no keyword matches.
	Fallback Bucket `json:"fallback"`
	// AllDay patterns mark sections served at every meal.
	AllDay []string `json:"all_day"`
	// LateNightSpecials is renamed to GrillDinnerSpecials when late night is merged into dinner on weekends.
	LateNightSpecials   string `json:"late_night_specials"`
	GrillDinnerSpecials string `json:"grill_dinner_specials"`
}

// DefaultPartitionConfig is the East Side Dining rule set.
func DefaultPartitionConfig() PartitionConfig {
	return PartitionConfig{
		Keywords: []KeywordRule{
			{Bucket: LateNight, Pattern: `(?i)\blate\s*night\b`},
			{Bucket: Breakfast, Pattern: `(?i)\bbreakfast\b`},
			{Bucket: Lunch, Pattern: `(?i)\blunch\b`},
			{Bucket: Dinner, Pattern: `(?i)\bdinner\b`},
		},
		Fallback: Dinner,
		AllDay: []string{
			`(?i)\bpizza\b`,
			`(?i)\bpasta\b`,
		},
		LateNightSpecials:   "Late Night Specials",
		GrillDinnerSpecials: "Grill Dinner Specials",
	}
}

type keyword struct {
	bucket Bucket
	re     *regexp.Regexp
}

// Partitioner assigns sections to meal buckets.
type Partitioner struct {
	keywords            []keyword
	allDay              []*regexp.Regexp
	fallback            Bucket
	lateNightSpecials   string
	grillDinnerSpecials string
}

func NewPartitioner(config PartitionConfig) (Partitioner, error) {
	p := Partitioner{
		fallback:            config.Fallback,
		lateNightSpecials:   config.LateNightSpecials,
		grillDinnerSpecials: config.GrillDinnerSpecials,
	}
	if p.fallback == "" {
		p.fallback = Dinner
	}

	for _, rule := range config.Keywords {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return Partitioner{}, fmt.Errorf("compile keyword for %s: %w", rule.Bucket, err)
		}
		p.keywords = append(p.keywords, keyword{bucket: rule.Bucket, re: re})
	}
	for _, pattern := range config.AllDay {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return Partitioner{}, fmt.Errorf("compile all day pattern: %w", err)
		}
		p.allDay = append(p.allDay, re)
	}

	return p, nil
}

// Assignment is a dish placed into a section of a bucket.
type Assignment struct {
	Bucket  Bucket
	Section string
	Item    string
}

// Guess returns the bucket a section belongs to by its name alone.
func (p Partitioner) Guess(section string) Bucket {
	for _, k := range p.keywords {
		if k.re.MatchString(section) {
			return k.bucket
		}
	}
	return p.fallback
}

func (p Partitioner) isAllDay(section string) bool {
	for _, re := range p.allDay {
		if re.MatchString(section) {
			return true
		}
	}
	return false
}

// Assign returns every bucket a dish of `section` is served in.
func (p Partitioner) Assign(section, item string, weekend bool) []Assignment {
	if p.isAllDay(section) {
		buckets := []Bucket{Lunch, Dinner, LateNight}
		if weekend {
			buckets = []Bucket{Brunch, Dinner}
		}
		out := make([]Assignment, len(buckets))
		for i, b := range buckets {
			out[i] = Assignment{Bucket: b, Section: section, Item: item}
		}
		return out
	}
	return []Assignment{{
		Bucket:  p.Guess(section),
		Section: section,
		Item:    item,
	}}
}

// Plan partitions the placements of a day into the buckets exposed on that day.
func (p Partitioner) Plan(placements []Placement, weekend bool) MealPlan {
	raw := make(map[Bucket]*Sections)
	for _, placement := range placements {
		for _, a := range p.Assign(placement.Section, placement.Item, weekend) {
			sections, ok := raw[a.Bucket]
			if !ok {
				sections = NewSections()
				raw[a.Bucket] = sections
			}
			sections.Add(a.Section, a.Item)
		}
	}

	rendered := func(b Bucket) []Block {
		sections, ok := raw[b]
		if !ok {
			return []Block{}
		}
		return sections.Sorted()
	}

	if !weekend {
		plan := NewMealPlan(weekdayBuckets...)
		for _, b := range weekdayBuckets {
			plan.Set(b, rendered(b))
		}
		return plan
	}

	var brunch []Block
	brunch = append(brunch, rendered(Breakfast)...)
	brunch = append(brunch, rendered(Lunch)...)
	brunch = append(brunch, rendered(Brunch)...)

	dinner := rendered(Dinner)
	for _, block := range rendered(LateNight) {
		if block.Section == p.lateNightSpecials {
			block.Section = p.grillDinnerSpecials
		}
		dinner = append(dinner, block)
	}

	plan := NewMealPlan(weekendBuckets...)
	plan.Set(Brunch, Merge(brunch))
	plan.Set(Dinner, Merge(dinner))
	return plan
}
