// Package discovery locates brand pages, pagination bounds, and
// product detail URLs in already-fetched documents. All functions are
// pure over the document: crawl state (the visited set) is passed in
// and returned explicitly so discovery stays idempotent and testable.
package discovery

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/watchfolio/aristohk-scraper/internal/models"
	"github.com/watchfolio/aristohk-scraper/internal/parser"
)

// Visited tracks product hrefs already seen within one crawl run.
type Visited map[string]bool

func NewVisited() Visited {
	return make(Visited)
}

var (
	featureBrandPattern = regexp.MustCompile(`^/(rolex|audemars-piguet|patek-philippe|richard-mille)$`)
	brandSlugPattern    = regexp.MustCompile(`^/[a-zA-Z-]+$`)
	pageParamPattern    = regexp.MustCompile(`page=(\d+)`)

	// Product hrefs in decreasing specificity: the four-segment
	// series form, the common three-segment form, then anything
	// ending in a numeric id.
	productHrefPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^/[^/]+/[^/]+/[^/]+/\d+$`),
		regexp.MustCompile(`^/[^/]+/[^/]+/\d+$`),
		regexp.MustCompile(`/\d+$`),
	}
)

// nonBrandPages are single-segment paths that look like brand slugs
// but are site chrome.
var nonBrandPages = map[string]bool{
	"about-us":            true,
	"contact-us":          true,
	"articles":            true,
	"account":             true,
	"sell-watches":        true,
	"prepaid-consignment": true,
	"mega-sale":           true,
	"pre-owned":           true,
	"new-watch":           true,
	"blog":                true,
	"faqs":                true,
}

// knownBrandSlugs backfills brands the homepage may not link directly.
var knownBrandSlugs = []string{
	"cartier", "hublot", "iwc", "jaeger-lecoultre", "longines", "omega",
	"tudor", "vacheron-constantin", "alange-soehne", "baume-mercier",
	"blancpain", "breguet", "bulgari", "chanel", "chopard", "f-p-journe",
	"girard-perregaux", "glashutte", "h-moser-cie", "hyt", "jacob-and-co",
	"mb-f", "montblanc", "panerai", "parmigiani-fleurier", "piaget",
	"roger-dubuis", "tag-heuer", "van-cleef-arpels", "zenith",
}

// Brands extracts every brand reachable from the homepage document:
// feature brands first, then other single-segment brand links minus
// the chrome skip list, then the known-brand backfill.
func Brands(doc *goquery.Document, baseURL string) []models.BrandDescriptor {
	var brands []models.BrandDescriptor
	seen := make(map[string]bool)

	add := func(slug string) {
		if slug == "" || seen[slug] || nonBrandPages[slug] {
			return
		}
		seen[slug] = true
		brands = append(brands, models.BrandDescriptor{
			Name: parser.ResolveBrand(slug),
			URL:  joinURL(baseURL, "/"+slug),
			Slug: slug,
		})
	}

	page := parser.NormalizeDocument(doc)

	for _, a := range page.Anchors {
		if featureBrandPattern.MatchString(a.Href) {
			add(strings.TrimPrefix(a.Href, "/"))
		}
	}

	for _, a := range page.Anchors {
		if brandSlugPattern.MatchString(a.Href) {
			add(strings.TrimPrefix(a.Href, "/"))
		}
	}

	for _, slug := range knownBrandSlugs {
		add(slug)
	}

	return brands
}

// TotalPages infers the number of listing pages for a brand from its
// pagination links; a page with no pagination has one page.
func TotalPages(doc *goquery.Document) int {
	maxPage := 1

	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		m := pageParamPattern.FindStringSubmatch(href)
		if m == nil {
			return
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > maxPage {
			maxPage = n
		}
	})

	return maxPage
}

// ProductURLs extracts product detail URLs from a brand listing page,
// skipping hrefs already in visited. It returns the absolute URLs and
// the updated visited set.
func ProductURLs(doc *goquery.Document, baseURL string, visited Visited) ([]string, Visited) {
	if visited == nil {
		visited = NewVisited()
	}

	page := parser.NormalizeDocument(doc)

	var urls []string
	for _, pattern := range productHrefPatterns {
		for _, a := range page.Anchors {
			if !pattern.MatchString(a.Href) || visited[a.Href] {
				continue
			}
			visited[a.Href] = true
			urls = append(urls, joinURL(baseURL, a.Href))
		}
		if len(urls) > 0 {
			break
		}
	}

	return urls, visited
}

// PageURL builds the listing URL for a given page number.
func PageURL(brandURL string, page int) string {
	if page <= 1 {
		return brandURL
	}
	return brandURL + "?page=" + strconv.Itoa(page)
}

func joinURL(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
