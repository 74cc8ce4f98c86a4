package vendors

import (
	"errors"
	"testing"
	"time"

	"github.com/haoyu-chen-me/seawolf-dine/internal/menu"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestBuiltin(t *testing.T) {
	catalog, err := Builtin()
	require.NoError(t, err)

	var keys []string
	for _, v := range catalog.All() {
		keys = append(keys, v.Key)
	}
	require.Equal(t, []string{"dental-cafe", "east-side-dining", "jasmine", "roth", "sac"}, keys)

	east, err := catalog.Find("east-side-dining")
	require.NoError(t, err)
	require.Equal(t, LayoutMeals, east.Layout)
	require.Equal(t, ClockZoned, east.Clock)
	if diff := cmp.Diff(menu.DefaultPartitionConfig(), east.MealRules()); diff != "" {
		t.Fatal(diff)
	}

	roth, err := catalog.Find("Roth")
	require.NoError(t, err)
	require.Equal(t, "2006-01-02 15:04 MST", roth.UpdatedAtLayout())

	stalls := roth.ResolvedStalls()
	require.Len(t, stalls, 4)
	require.Equal(t, StallChain, stalls[0].Type)
	require.Equal(t, []string{ChainPlaceholder}, stalls[0].Items)
	require.Equal(t, StallMenu, stalls[2].Type)
	require.Equal(t, "roth-cafe", stalls[2].School)
	require.Equal(t, "chef-jet", stalls[2].MenuType)

	sac, err := catalog.Find("sac")
	require.NoError(t, err)
	sacStalls := sac.ResolvedStalls()
	require.Equal(t, "sac-market", sacStalls[len(sacStalls)-1].School)
	require.True(t, sacStalls[4].Daily)

	date, ok, err := sac.FixedDate()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "2026-01-27", date.Format(time.DateOnly))

	dental, err := catalog.Find("dental-cafe")
	require.NoError(t, err)
	_, ok, err = dental.FixedDate()
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, DefaultUpdatedAtFormat, dental.UpdatedAtLayout())
}

func TestFindSuggestsClosestKey(t *testing.T) {
	catalog, err := Builtin()
	require.NoError(t, err)

	_, err = catalog.Find("jasmin")
	var unknown *UnknownVendorError
	require.True(t, errors.As(err, &unknown))
	require.Equal(t, "jasmine", unknown.Suggestion)
	require.Contains(t, err.Error(), `did you mean "jasmine"`)

	_, err = catalog.Find("zzzzzzzz")
	require.True(t, errors.As(err, &unknown))
	require.Equal(t, "", unknown.Suggestion)
}

func TestSelect(t *testing.T) {
	catalog, err := Builtin()
	require.NoError(t, err)

	all, err := catalog.Select(nil)
	require.NoError(t, err)
	require.Len(t, all, 5)

	some, err := catalog.Select([]string{"sac", "dental-cafe"})
	require.NoError(t, err)
	require.Equal(t, "sac", some[0].Key)
	require.Equal(t, "dental-cafe", some[1].Key)

	_, err = catalog.Select([]string{"sac", "nope"})
	require.Error(t, err)
}

func TestHoursToday(t *testing.T) {
	hours := Hours{
		"mon_thu": "11am to 8pm",
		"fri":     "11am to 9pm",
		"sat":     "Closed",
		"sun":     "12pm to 7pm",
	}

	table := []struct {
		date     string
		expected string
	}{
		{date: "2026-01-26", expected: "11am to 8pm"},
		{date: "2026-01-29", expected: "11am to 8pm"},
		{date: "2026-01-30", expected: "11am to 9pm"},
		{date: "2026-01-31", expected: "Closed"},
		{date: "2026-02-01", expected: "12pm to 7pm"},
	}
	for _, row := range table {
		date, err := time.Parse(time.DateOnly, row.date)
		require.NoError(t, err)
		require.Equal(t, row.expected, hours.Today(date), row.date)
	}

	require.Equal(t, "", Hours(nil).Today(time.Now()))
}

func TestValidate(t *testing.T) {
	table := []struct {
		name   string
		source string
	}{
		{
			name:   "unknown layout",
			source: `[{key: "a", location: "A", output: "a.json", layout: "grid"}]`,
		},
		{
			name:   "sections without menu type",
			source: `[{key: "a", location: "A", output: "a.json", layout: "sections", school: "s"}]`,
		},
		{
			name:   "chain without url",
			source: `[{key: "a", location: "A", output: "a.json", layout: "stalls", stalls: [{section: "Subway", type: "chain"}]}]`,
		},
		{
			name:   "bad hours key",
			source: `[{key: "a", location: "A", output: "a.json", layout: "stalls", school: "s", hours: {monday: "9am"}, stalls: [{section: "x", menu_type: "y"}]}]`,
		},
		{
			name:   "bad fixed date",
			source: `[{key: "a", location: "A", output: "a.json", layout: "sections", school: "s", menu_type: "m", fixed_menu_date: "01/27/2026"}]`,
		},
		{
			name:   "bad meal pattern",
			source: `[{key: "a", location: "A", output: "a.json", layout: "meals", school: "s", menu_type: "m", meals: {all_day: ["("]}}]`,
		},
		{
			name:   "duplicate keys",
			source: `[{key: "a", location: "A", output: "a.json", layout: "sections", school: "s", menu_type: "m"}, {key: "a", location: "A", output: "a.json", layout: "sections", school: "s", menu_type: "m"}]`,
		},
	}

	for _, row := range table {
		t.Run(row.name, func(t *testing.T) {
			_, err := Parse([]byte(row.source))
			require.Error(t, err)
		})
	}
}
