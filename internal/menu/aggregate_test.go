package menu

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestDedupe(t *testing.T) {
	require.Equal(t, []string{"Rice", "Beans"}, Dedupe([]string{"Rice", "Rice", "Beans", "Rice"}))
	require.Equal(t, []string{}, Dedupe(nil))
}

func TestSections(t *testing.T) {
	sections := NewSections()
	require.Equal(t, 0, sections.Len())
	require.Equal(t, []Block{}, sections.Blocks())

	sections.Add("soup", "Tomato Soup")
	sections.Add("Grill", "Burger")
	sections.Add("Grill", "Burger")
	sections.Add("Grill", "Fries")
	sections.Add("Deli", "Fries")
	require.Equal(t, 3, sections.Len())

	if diff := cmp.Diff([]Block{
		{Section: "soup", Items: []string{"Tomato Soup"}},
		{Section: "Grill", Items: []string{"Burger", "Fries"}},
		{Section: "Deli", Items: []string{"Fries"}},
	}, sections.Blocks()); diff != "" {
		t.Fatal(diff)
	}

	if diff := cmp.Diff([]Block{
		{Section: "Deli", Items: []string{"Fries"}},
		{Section: "Grill", Items: []string{"Burger", "Fries"}},
		{Section: "soup", Items: []string{"Tomato Soup"}},
	}, sections.Sorted()); diff != "" {
		t.Fatal(diff)
	}

	require.Equal(t, []string{"Tomato Soup", "Burger", "Fries"}, sections.Flatten())
}

func TestMerge(t *testing.T) {
	merged := Merge([]Block{
		{Section: "Grill", Items: []string{"Burger"}},
		{Section: "", Items: []string{"Bagel"}},
		{Section: "deli", Items: []string{"Wrap"}},
		{Section: "Grill", Items: []string{"Fries", "Burger"}},
		{Section: "Empty", Items: nil},
	})

	expected := []Block{
		{Section: "deli", Items: []string{"Wrap"}},
		{Section: "Grill", Items: []string{"Burger", "Fries"}},
		{Section: "Other", Items: []string{"Bagel"}},
	}
	if diff := cmp.Diff(expected, merged); diff != "" {
		t.Fatal(diff)
	}
}
