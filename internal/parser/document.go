package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Anchor is one link found in a document.
type Anchor struct {
	Href string
	Text string
}

// Page is the normalized view of a fetched document that the field
// extractors operate on. Building it is the only place the engine
// touches goquery; everything downstream is plain text.
type Page struct {
	Text         string
	Title        string
	FirstHeading string
	Anchors      []Anchor
}

// NormalizeDocument flattens a parsed document into a Page. It is a
// pure function: no state is kept between calls.
func NormalizeDocument(doc *goquery.Document) *Page {
	page := &Page{
		Text:         doc.Text(),
		Title:        strings.TrimSpace(doc.Find("title").First().Text()),
		FirstHeading: strings.TrimSpace(doc.Find("h1").First().Text()),
	}

	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		page.Anchors = append(page.Anchors, Anchor{
			Href: href,
			Text: strings.TrimSpace(s.Text()),
		})
	})

	return page
}

// ParsePage parses raw HTML and normalizes it in one step.
func ParsePage(html string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	return NormalizeDocument(doc), nil
}
