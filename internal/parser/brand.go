package parser

import (
	"strings"
)

// brandOverrides fixes multi-word brands whose plain hyphen-to-space
// expansion would be wrong or ambiguously capitalized.
var brandOverrides = map[string]string{
	"audemars-piguet": "AUDEMARS PIGUET",
	"patek-philippe":  "PATEK PHILIPPE",
	"richard-mille":   "RICHARD MILLE",
}

// ResolveBrand maps a URL brand slug to its canonical display name.
// It is total: every slug produces a name.
func ResolveBrand(slug string) string {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if name, ok := brandOverrides[slug]; ok {
		return name
	}
	return strings.ToUpper(strings.ReplaceAll(slug, "-", " "))
}
