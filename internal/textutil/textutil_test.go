package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlainText(t *testing.T) {
	table := []struct {
		input    string
		expected string
	}{
		{input: "  Grill  ", expected: "Grill"},
		{input: "Soups & Chili", expected: "Soups & Chili"},
		{input: "Soups  &  Chili", expected: "Soups & Chili"},
		{input: "Soups  and\tChili", expected: "Soups and Chili"},
		{input: "<p>Closed for <b>Winter</b> Break</p>", expected: "Closed for Winter Break"},
		{input: "Mac &amp; Cheese", expected: "Mac & Cheese"},
		{input: "<div>\n  Late   Night\n</div>", expected: "Late Night"},
	}

	for _, row := range table {
		require.Equal(t, row.expected, PlainText(row.input))
	}
}

func TestCollapseWhitespace(t *testing.T) {
	require.Equal(t, "East Side Dining", CollapseWhitespace(" East  Side\tDining\n"))
}
