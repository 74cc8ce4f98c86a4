package document

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/haoyu-chen-me/seawolf-dine/internal/menu"

	"github.com/stretchr/testify/require"
)

func TestEncodeSections(t *testing.T) {
	doc := Document{
		Location:  "Dental Café",
		Date:      "2026-01-27",
		Timezone:  "America/New_York",
		UpdatedAt: "2026-01-27 09:30:00 EST",
		Status:    StatusOK,
		Message:   "Menu fetched.",
		SourceURL: "https://example.com/week?format=json",
		Sections: FromBlocks([]menu.Block{
			{Section: "Soups & Chili", Items: []string{"Crème Soup"}},
		}),
		MenuURL: "https://stonybrook.nutrislice.com/menu/sbu-eats-events/dental-cafe/2026-01-27",
	}

	var buff bytes.Buffer
	require.NoError(t, Encode(&buff, doc))
	require.Equal(t, `{
  "location": "Dental Café",
  "date": "2026-01-27",
  "timezone": "America/New_York",
  "updated_at": "2026-01-27 09:30:00 EST",
  "status": "ok",
  "message": "Menu fetched.",
  "source_url": "https://example.com/week?format=json",
  "sections": [
    {
      "section": "Soups & Chili",
      "items": [
        "Crème Soup"
      ]
    }
  ],
  "menu_url": "https://stonybrook.nutrislice.com/menu/sbu-eats-events/dental-cafe/2026-01-27"
}
`, buff.String())
}

func TestEncodeEmptySections(t *testing.T) {
	doc := Document{
		Location: "Dental Café",
		Status:   StatusClosed,
		Message:  "Closed for Winter Break",
	}

	var buff bytes.Buffer
	require.NoError(t, Encode(&buff, doc))
	require.Contains(t, buff.String(), `"sections": []`)
	require.NotContains(t, buff.String(), `"meals"`)
	require.NotContains(t, buff.String(), `"is_weekend"`)
}

func TestEncodeMeals(t *testing.T) {
	plan := menu.NewMealPlan(menu.Brunch, menu.Dinner)
	plan.Set(menu.Dinner, []menu.Block{{Section: "Grill Dinner Specials", Items: []string{"Grilled Chicken"}}})
	weekend := true

	doc := Document{
		Location:  "East Side Dining (Dine-in Specials)",
		Date:      "2026-01-31",
		Timezone:  "America/New_York",
		UpdatedAt: "2026-01-31 10:00:00 EST",
		Status:    StatusOK,
		Message:   "Menu fetched and categorized.",
		Meals:     &plan,
		IsWeekend: &weekend,
	}

	var buff bytes.Buffer
	require.NoError(t, Encode(&buff, doc))
	require.Equal(t, `{
  "location": "East Side Dining (Dine-in Specials)",
  "date": "2026-01-31",
  "timezone": "America/New_York",
  "updated_at": "2026-01-31 10:00:00 EST",
  "status": "ok",
  "message": "Menu fetched and categorized.",
  "meals": {
    "brunch": [],
    "dinner": [
      {
        "section": "Grill Dinner Specials",
        "items": [
          "Grilled Chicken"
        ]
      }
    ]
  },
  "is_weekend": true
}
`, buff.String())
	require.Equal(t, 1, doc.ItemCount())
}

func TestEncodeStallSection(t *testing.T) {
	daily := false
	doc := Document{
		Status: StatusPartialError,
		Sections: []Section{{
			Section:  "Subway",
			Type:     "chain",
			Status:   StatusOK,
			Items:    []string{"Click to view the official menu"},
			IsDaily:  &daily,
			MenuURL:  "https://www.subway.com/en-us/menu",
			MenuDate: "2026-01-27",
		}},
	}

	var buff bytes.Buffer
	require.NoError(t, Encode(&buff, doc))
	require.Contains(t, buff.String(), `"is_daily": false`)
	require.Contains(t, buff.String(), `"type": "chain"`)
	require.NotContains(t, buff.String(), `"slug"`)
}

func TestEncodeStallMetadata(t *testing.T) {
	doc := Document{
		Location:      "Jasmine",
		Status:        StatusOK,
		Sections:      []Section{},
		HoursToday:    "11am to 9pm",
		FixedMenuDate: "2026-01-27",
	}

	var buff bytes.Buffer
	require.NoError(t, Encode(&buff, doc))
	require.Contains(t, buff.String(), `"hours_today": "11am to 9pm",
  "fixed_menu_date_for_non_daily": "2026-01-27"
}`)
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "sac.json")

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

	doc := Document{Location: "SAC", Status: StatusOK}
	require.NoError(t, Write(path, doc))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(contents), `"location": "SAC"`)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
