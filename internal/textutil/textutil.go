package textutil

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// CollapseWhitespace trims `text` and replaces inner whitespace runs with a single space.
func CollapseWhitespace(text string) string {
	return whitespaceRegex.ReplaceAllString(strings.TrimSpace(text), " ")
}

// PlainText returns the text content of `text` with html markup and entities
// resolved and whitespace collapsed.
func PlainText(text string) string {
	if !strings.ContainsAny(text, "<&") {
		return CollapseWhitespace(text)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return CollapseWhitespace(text)
	}
	return CollapseWhitespace(doc.Text())
}
