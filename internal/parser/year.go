package parser

import (
	"regexp"
	"strconv"
)

const (
	// MinPlausibleYear..MaxPlausibleYear is the range a release year
	// must fall in to be accepted. Matches outside it are discarded
	// and the cascade moves on.
	MinPlausibleYear = 1950
	MaxPlausibleYear = 2027
)

// yearPattern pairs a regular pattern with the validator applied to
// its captured group. The cascade is declarative: patterns are tried
// in slice order and the first validated match wins.
type yearPattern struct {
	re       *regexp.Regexp
	validate func(int) bool
}

// YearExtractor resolves a release year from free page text. The
// labeled "Release Year" field is the authoritative signal; the looser
// phrase patterns only run when it is absent. An exhausted cascade
// yields nil: a missing year beats a wrong one, and in particular the
// extractor never falls back to the current year.
type YearExtractor struct {
	MinYear int
	MaxYear int

	primary   []yearPattern
	secondary []yearPattern
}

func NewYearExtractor() *YearExtractor {
	e := &YearExtractor{
		MinYear: MinPlausibleYear,
		MaxYear: MaxPlausibleYear,
	}

	e.primary = e.compile([]string{
		`(?i)Release Year[:\s]*(\d{4})`,
	})
	e.secondary = e.compile([]string{
		`(?i)released in (\d{4})`,
		`(?i)introduced in (\d{4})`,
		`(?i)(\d{4})\s*release`,
		`(?i)(\d{4})\s*model`,
		`(?i)launched in (\d{4})`,
		`(?i)(\d{4})\s*edition`,
		`(?i)production[:\s]*(\d{4})`,
		`(?i)year[:\s]*(\d{4})`,
	})

	return e
}

func (e *YearExtractor) compile(exprs []string) []yearPattern {
	patterns := make([]yearPattern, 0, len(exprs))
	for _, expr := range exprs {
		patterns = append(patterns, yearPattern{
			re:       regexp.MustCompile(expr),
			validate: e.plausible,
		})
	}
	return patterns
}

func (e *YearExtractor) plausible(year int) bool {
	return year >= e.MinYear && year <= e.MaxYear
}

// Extract runs the cascade over the full page text.
func (e *YearExtractor) Extract(text string) *int {
	if year := firstValidated(e.primary, text); year != nil {
		return year
	}
	return firstValidated(e.secondary, text)
}

func firstValidated(patterns []yearPattern, text string) *int {
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		year, err := strconv.Atoi(m[1])
		if err != nil || !p.validate(year) {
			continue
		}

		return &year
	}
	return nil
}
