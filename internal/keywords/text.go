package keywords

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText reduces markup in a job description to its visible text so the
// extractor does not match tag or attribute names. Text without markup is
// returned unchanged.
func PlainText(text string) string {
	if !strings.Contains(text, "<") || !strings.Contains(text, ">") {
		return text
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return text
	}
	doc.Find("script, style, noscript").Remove()

	plain := strings.Join(strings.Fields(doc.Text()), " ")
	if plain == "" {
		return text
	}
	return plain
}
