package parser

import (
	"regexp"
	"strings"
)

const (
	MarkerWithBox    = "With Box"
	MarkerWithPapers = "With Papers"
)

// completenessMarkers are independently tested against the full page
// text; multiple phrasings can add the same marker.
var completenessMarkers = []struct {
	re     *regexp.Regexp
	marker string
}{
	{regexp.MustCompile(`(?i)With Box`), MarkerWithBox},
	{regexp.MustCompile(`(?i)With Papers?`), MarkerWithPapers},
	{regexp.MustCompile(`(?i)Original.*box`), MarkerWithBox},
	{regexp.MustCompile(`(?i)Original.*certificate`), MarkerWithPapers},
}

// canonicalMarkerOrder fixes the join order (box before papers)
// regardless of which phrasing triggered a marker.
var canonicalMarkerOrder = []string{MarkerWithBox, MarkerWithPapers}

// ExtractCompleteness returns the comma-joined, de-duplicated set of
// accessory markers found in the text, or "" if none matched.
func ExtractCompleteness(text string) string {
	found := make(map[string]bool, 2)
	for _, m := range completenessMarkers {
		if !found[m.marker] && m.re.MatchString(text) {
			found[m.marker] = true
		}
	}

	var parts []string
	for _, marker := range canonicalMarkerOrder {
		if found[marker] {
			parts = append(parts, marker)
		}
	}

	return strings.Join(parts, ", ")
}
