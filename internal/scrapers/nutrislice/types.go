package nutrislice

import (
	"bytes"
	"encoding/json"

	"github.com/haoyu-chen-me/seawolf-dine/internal/menu"
)

// the feed is loosely typed: fields routinely show up as null, numbers or
// objects where a string is expected. every field type here decodes a value
// of the wrong json type as absent instead of failing the whole payload.

func isObject(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '{'
}

type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	var value string
	if json.Unmarshal(data, &value) != nil {
		*s = ""
		return nil
	}
	*s = looseString(value)
	return nil
}

type looseBool bool

func (b *looseBool) UnmarshalJSON(data []byte) error {
	var value any
	if json.Unmarshal(data, &value) != nil {
		*b = false
		return nil
	}
	switch v := value.(type) {
	case bool:
		*b = looseBool(v)
	case float64:
		*b = v != 0
	default:
		*b = false
	}
	return nil
}

type namedRef struct {
	Name looseString `json:"name"`
}

func (r *namedRef) UnmarshalJSON(data []byte) error {
	*r = namedRef{}
	if !isObject(data) {
		return nil
	}
	var fields struct {
		Name looseString `json:"name"`
	}
	if json.Unmarshal(data, &fields) != nil {
		return nil
	}
	r.Name = fields.Name
	return nil
}

// foodRef is the food sub-record of a menu item. it only counts as present
// when it is an object with at least one field.
type foodRef struct {
	Present bool
	Name    looseString
}

func (r *foodRef) UnmarshalJSON(data []byte) error {
	*r = foodRef{}
	if !isObject(data) {
		return nil
	}
	var fields map[string]json.RawMessage
	if json.Unmarshal(data, &fields) != nil {
		return nil
	}
	r.Present = len(fields) > 0
	if name, ok := fields["name"]; ok {
		_ = r.Name.UnmarshalJSON(name)
	}
	return nil
}

// MenuItem is a single record inside a day's `menu_items`.
type MenuItem struct {
	Food         foodRef     `json:"food"`
	MenuCategory namedRef    `json:"menu_category"`
	Category     namedRef    `json:"category"`
	CategoryName looseString `json:"category_name"`
	Station      looseString `json:"station"`

	Name         looseString `json:"name"`
	Text         looseString `json:"text"`
	Label        looseString `json:"label"`
	Description  looseString `json:"description"`
	MenuItemName looseString `json:"menu_item_name"`

	IsHoliday looseBool `json:"is_holiday"`
}

func (m MenuItem) ToEntry() menu.Entry {
	return menu.Entry{
		HasFood:      m.Food.Present,
		FoodName:     string(m.Food.Name),
		MenuCategory: string(m.MenuCategory.Name),
		Category:     string(m.Category.Name),
		CategoryName: string(m.CategoryName),
		Station:      string(m.Station),
		Name:         string(m.Name),
		Text:         string(m.Text),
		Label:        string(m.Label),
		Description:  string(m.Description),
		MenuItemName: string(m.MenuItemName),
		IsHoliday:    bool(m.IsHoliday),
	}
}

// Day is one element of a week's `days`.
type Day struct {
	Date      string
	MenuItems []json.RawMessage
}

func (d *Day) UnmarshalJSON(data []byte) error {
	*d = Day{}
	if !isObject(data) {
		return nil
	}
	var fields struct {
		Date      looseString     `json:"date"`
		MenuItems json.RawMessage `json:"menu_items"`
	}
	err := json.Unmarshal(data, &fields)
	if err != nil {
		return err
	}
	d.Date = string(fields.Date)

	items := bytes.TrimSpace(fields.MenuItems)
	if len(items) == 0 || items[0] != '[' {
		return nil
	}
	return json.Unmarshal(items, &d.MenuItems)
}

// Len is the amount of raw records of the day, including the ones that are not objects.
func (d Day) Len() int {
	return len(d.MenuItems)
}

// Entries decodes the day's records in order, skipping records that are not objects.
func (d Day) Entries() []menu.Entry {
	out := make([]menu.Entry, 0, len(d.MenuItems))
	for _, raw := range d.MenuItems {
		if !isObject(raw) {
			continue
		}
		var item MenuItem
		if json.Unmarshal(raw, &item) != nil {
			continue
		}
		out = append(out, item.ToEntry())
	}
	return out
}

// Week is the payload of the weeks endpoint.
type Week struct {
	Days []Day `json:"days"`
}

// Day returns the first day block dated `date` (YYYY-MM-DD).
func (w Week) Day(date string) (Day, bool) {
	for _, d := range w.Days {
		if d.Date == date {
			return d, true
		}
	}
	return Day{}, false
}
