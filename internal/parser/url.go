package parser

import (
	"net/url"
	"strings"
)

// ProductPath holds the ordered path segments of a product URL.
// aristohk.com product pages follow /{brand}/{model}/{id}, with one
// brand family using the richer /{brand}/{series}/{model}/{id}.
type ProductPath struct {
	Segments []string
}

// DecomposeURL splits a product URL's path into its non-empty
// segments. It never fails: a malformed URL yields an empty segment
// list and downstream resolvers treat missing segments as absent.
func DecomposeURL(rawURL string) ProductPath {
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		path = u.Path
	}

	var segments []string
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			segments = append(segments, part)
		}
	}

	return ProductPath{Segments: segments}
}

// BrandSlug returns the first path segment, or "" if absent.
func (p ProductPath) BrandSlug() string {
	return p.segment(0)
}

// ModelSlug returns the second path segment, or "" if absent. For the
// four-segment form this is the series slug, which is where the one
// structured-slug brand encodes its model code.
func (p ProductPath) ModelSlug() string {
	return p.segment(1)
}

func (p ProductPath) segment(i int) string {
	if i < 0 || i >= len(p.Segments) {
		return ""
	}
	return p.Segments[i]
}
