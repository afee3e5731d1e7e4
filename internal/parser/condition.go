package parser

import (
	"regexp"

	"github.com/watchfolio/aristohk-scraper/internal/models"
)

var (
	hotMarkerPattern      = regexp.MustCompile(`(?i)HOT`)
	preOwnedMarkerPattern = regexp.MustCompile(`(?i)Pre-owned`)
)

// ConditionClassifier maps lexical markers in the main product region
// to a condition label. Absence of both markers defaults to New, which
// is a known limitation of the source data: unmarked listings are
// assumed new rather than unknown.
type ConditionClassifier struct {
	ScanWindow int
}

func NewConditionClassifier() *ConditionClassifier {
	return &ConditionClassifier{ScanWindow: DefaultPriceScanWindow}
}

func (c *ConditionClassifier) Classify(text string) string {
	window := text
	if c.ScanWindow > 0 && len(text) > c.ScanWindow {
		window = text[:c.ScanWindow]
	}

	switch {
	case hotMarkerPattern.MatchString(window):
		return models.ConditionNew
	case preOwnedMarkerPattern.MatchString(window):
		return models.ConditionPreOwned
	default:
		return models.ConditionNew
	}
}
