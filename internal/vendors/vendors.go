package vendors

import (
	"errors"
	"fmt"
	"time"

	"github.com/haoyu-chen-me/seawolf-dine/internal/menu"
)

// Layout is the shape of a vendor's output document.
type Layout string

const (
	// LayoutSections is a single fetch rendered as a flat section list.
	LayoutSections Layout = "sections"
	// LayoutMeals is a single fetch partitioned into meal buckets.
	LayoutMeals Layout = "meals"
	// LayoutStalls is one fetch per stall, each stall flattened into one section.
	LayoutStalls Layout = "stalls"
)

// ClockPolicy selects how "today" is computed for a vendor.
type ClockPolicy string

const (
	// ClockFixed is a fixed UTC-5 offset that ignores daylight saving.
	ClockFixed ClockPolicy = "fixed"
	// ClockZoned is America/New_York from the tz database.
	ClockZoned ClockPolicy = "zoned"
)

type StallType string

const (
	StallMenu  StallType = "menu"
	StallChain StallType = "chain"
)

const (
	DefaultUpdatedAtFormat = "2006-01-02 15:04:05 MST"
	ChainPlaceholder       = "Click to view the official menu"
	HoursClosed            = "Closed"
)

// Hours maps a weekday group (mon_thu, fri, sat, sun) to opening hours.
type Hours map[string]string

// HoursKey is the weekday group `t` falls in.
func HoursKey(t time.Time) string {
	switch t.Weekday() {
	case time.Friday:
		return "fri"
	case time.Saturday:
		return "sat"
	case time.Sunday:
		return "sun"
	default:
		return "mon_thu"
	}
}

// Today returns the hours of the day `t` falls on, or "" if unknown.
func (h Hours) Today(t time.Time) string {
	return h[HoursKey(t)]
}

var hoursKeys = map[string]struct{}{
	"mon_thu": {},
	"fri":     {},
	"sat":     {},
	"sun":     {},
}

func (h Hours) validate() error {
	for key := range h {
		if _, ok := hoursKeys[key]; !ok {
			return fmt.Errorf("unknown hours key %q", key)
		}
	}
	return nil
}

type Stall struct {
	Section string    `json:"section"`
	Type    StallType `json:"type"`
	// School defaults to the vendor's school.
	School   string `json:"school"`
	MenuType string `json:"menu_type"`
	// Daily stalls are fetched for today instead of the vendor's fixed menu date.
	Daily bool `json:"daily"`
	// Hours defaults to the vendor's hours.
	Hours Hours `json:"hours"`
	// Items and MenuURL are the placeholder content of chain stalls.
	Items   []string `json:"items"`
	MenuURL string   `json:"menu_url"`
}

type Vendor struct {
	Key      string      `json:"key"`
	Location string      `json:"location"`
	Output   string      `json:"output"`
	Layout   Layout      `json:"layout"`
	Clock    ClockPolicy `json:"clock"`
	// UpdatedAtFormat is a go time layout, it defaults to DefaultUpdatedAtFormat.
	UpdatedAtFormat string `json:"updated_at_format"`

	School   string `json:"school"`
	MenuType string `json:"menu_type"`
	// FixedMenuDate (YYYY-MM-DD) is fetched instead of today by non-daily stalls,
	// empty means every fetch is for today.
	FixedMenuDate string `json:"fixed_menu_date"`

	Hours  Hours                `json:"hours"`
	Stalls []Stall              `json:"stalls"`
	Meals  *menu.PartitionConfig `json:"meals"`
}

// FixedDate parses FixedMenuDate, ok is false if the vendor has none.
func (v Vendor) FixedDate() (date time.Time, ok bool, err error) {
	if v.FixedMenuDate == "" {
		return time.Time{}, false, nil
	}
	date, err = time.Parse(time.DateOnly, v.FixedMenuDate)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("fixed_menu_date: %w", err)
	}
	return date, true, nil
}

// UpdatedAtLayout returns the time layout of the vendor's updated_at field.
func (v Vendor) UpdatedAtLayout() string {
	if v.UpdatedAtFormat == "" {
		return DefaultUpdatedAtFormat
	}
	return v.UpdatedAtFormat
}

// MealRules returns the partition rules of a meals vendor.
func (v Vendor) MealRules() menu.PartitionConfig {
	if v.Meals == nil {
		return menu.DefaultPartitionConfig()
	}
	return *v.Meals
}

// ResolvedStalls returns the stalls with vendor level defaults filled in.
func (v Vendor) ResolvedStalls() []Stall {
	out := make([]Stall, len(v.Stalls))
	for i, s := range v.Stalls {
		if s.Type == "" {
			s.Type = StallMenu
		}
		if s.School == "" {
			s.School = v.School
		}
		if s.Hours == nil {
			s.Hours = v.Hours
		}
		if s.Type == StallChain && len(s.Items) == 0 {
			s.Items = []string{ChainPlaceholder}
		}
		out[i] = s
	}
	return out
}

func (v Vendor) Validate() error {
	if v.Key == "" {
		return errors.New("missing key")
	}
	if v.Location == "" {
		return fmt.Errorf("%s: missing location", v.Key)
	}
	if v.Output == "" {
		return fmt.Errorf("%s: missing output", v.Key)
	}
	switch v.Clock {
	case "", ClockFixed, ClockZoned:
	default:
		return fmt.Errorf("%s: unknown clock %q", v.Key, v.Clock)
	}
	_, _, err := v.FixedDate()
	if err != nil {
		return fmt.Errorf("%s: %w", v.Key, err)
	}
	err = v.Hours.validate()
	if err != nil {
		return fmt.Errorf("%s: %w", v.Key, err)
	}

	switch v.Layout {
	case LayoutSections, LayoutMeals:
		if v.School == "" || v.MenuType == "" {
			return fmt.Errorf("%s: %s layout needs school and menu_type", v.Key, v.Layout)
		}
		if v.Layout == LayoutMeals {
			_, err := menu.NewPartitioner(v.MealRules())
			if err != nil {
				return fmt.Errorf("%s: meals: %w", v.Key, err)
			}
		}
	case LayoutStalls:
		if len(v.Stalls) == 0 {
			return fmt.Errorf("%s: stalls layout needs at least one stall", v.Key)
		}
		for _, s := range v.ResolvedStalls() {
			err := s.validate()
			if err != nil {
				return fmt.Errorf("%s: stall %q: %w", v.Key, s.Section, err)
			}
		}
	default:
		return fmt.Errorf("%s: unknown layout %q", v.Key, v.Layout)
	}
	return nil
}

func (s Stall) validate() error {
	if s.Section == "" {
		return errors.New("missing section")
	}
	err := s.Hours.validate()
	if err != nil {
		return err
	}
	switch s.Type {
	case StallMenu:
		if s.School == "" || s.MenuType == "" {
			return errors.New("menu stall needs school and menu_type")
		}
	case StallChain:
		if s.MenuURL == "" {
			return errors.New("chain stall needs menu_url")
		}
	default:
		return fmt.Errorf("unknown stall type %q", s.Type)
	}
	return nil
}
