package parser

import (
	"regexp"
	"strings"

	"github.com/watchfolio/aristohk-scraper/internal/models"
)

// ReferenceResolver produces the most specific model/reference code
// available for one brand family. Implementations must return a
// non-empty string or models.UnknownReference, never "".
type ReferenceResolver interface {
	ResolveReference(slug string, page *Page) string
}

// referenceResolvers dispatches by canonical brand name. Brands with a
// structured slug convention get their own resolver; everything else
// falls through to the generic page-text cascade. Adding a new brand
// convention is one entry here.
var referenceResolvers = map[string]ReferenceResolver{
	"RICHARD MILLE": richardMilleResolver{},
}

// ResolveReference picks the resolver for the given canonical brand
// and runs it against the model slug and normalized page.
func ResolveReference(brand, slug string, page *Page) string {
	if r, ok := referenceResolvers[brand]; ok {
		return r.ResolveReference(slug, page)
	}
	return genericResolver{}.ResolveReference(slug, page)
}

// richardMilleResolver reads the model code straight out of the URL
// slug: catalog slugs like "rm-65-01-mc-laren" embed the code as a
// fixed "rm-" prefix followed by hyphenated digit groups.
type richardMilleResolver struct{}

var rmSlugPattern = regexp.MustCompile(`^rm-(\d+(?:-\d+)*)`)

func (richardMilleResolver) ResolveReference(slug string, _ *Page) string {
	if slug == "" {
		return models.UnknownReference
	}

	if m := rmSlugPattern.FindStringSubmatch(strings.ToLower(slug)); m != nil {
		return "RM" + m[1]
	}

	// Malformed slug: keep something usable rather than Unknown.
	return strings.ReplaceAll(strings.ToUpper(slug), "-", "")
}

// genericResolver scans rendered text, where brands without a slug
// convention expose the code. Tried in order: the segment after the
// "|" in the page title (e.g. "ROLEX | DAYTONA 126500LN-0002"), then
// the last token of the first heading.
type genericResolver struct{}

var trailingCodePattern = regexp.MustCompile(`([A-Z0-9\-]+)$`)

func (genericResolver) ResolveReference(_ string, page *Page) string {
	if page == nil {
		return models.UnknownReference
	}

	if ref := referenceFromTitle(page.Title); ref != "" {
		return ref
	}

	if ref := referenceFromHeading(page.FirstHeading); ref != "" {
		return ref
	}

	return models.UnknownReference
}

func referenceFromTitle(title string) string {
	if !strings.Contains(title, "|") {
		return ""
	}

	parts := strings.Split(title, "|")
	if len(parts) < 2 {
		return ""
	}

	model := strings.TrimSpace(parts[1])
	if m := trailingCodePattern.FindStringSubmatch(model); m != nil {
		return m[1]
	}
	return ""
}

func referenceFromHeading(heading string) string {
	fields := strings.Fields(heading)
	if len(fields) < 2 {
		return ""
	}
	return fields[len(fields)-1]
}
