package menu

// Entry is one raw record of a day's menu, already decoded from the feed.
// String fields are empty when the feed omitted them or sent a non-string value.
type Entry struct {
	// HasFood is true when the entry carries a non-empty food sub-record,
	// even if that record has no usable name.
	HasFood  bool
	FoodName string

	MenuCategory string
	Category     string
	CategoryName string
	Station      string

	Name         string
	Text         string
	Label        string
	Description  string
	MenuItemName string

	IsHoliday bool
}

// headerCandidates lists the free-text fields of an entry in the order they are
// considered when the entry is a section header.
func (e Entry) headerCandidates() []string {
	return []string{
		e.Name,
		e.Text,
		e.Label,
		e.Description,
		e.MenuItemName,
		e.Category,
	}
}

// sectionHint returns the first explicit section name the entry carries.
func (e Entry) sectionHint() string {
	for _, candidate := range []string{
		e.MenuCategory,
		e.Category,
		e.CategoryName,
		e.Station,
	} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}
