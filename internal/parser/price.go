package parser

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// DefaultPriceScanWindow bounds the scan to the main product
	// region at the top of the page; recommendation widgets further
	// down carry unrelated prices.
	DefaultPriceScanWindow = 1500

	// DefaultMinPlausiblePrice filters out small quantities and model
	// numbers sitting next to a currency marker.
	DefaultMinPlausiblePrice = 10000

	currencyMarker = "HK$"
)

var (
	priceDigitsPattern = regexp.MustCompile(`^([\d,]+)`)
	askPricePattern    = regexp.MustCompile(`(?i)Ask Price`)
)

// PriceExtractor finds the main product price in HKD. A nil result
// means "ask price" or no confident evidence, never zero.
type PriceExtractor struct {
	ScanWindow   int
	MinPlausible int
}

func NewPriceExtractor() *PriceExtractor {
	return &PriceExtractor{
		ScanWindow:   DefaultPriceScanWindow,
		MinPlausible: DefaultMinPlausiblePrice,
	}
}

// Extract scans the bounded prefix of text for currency markers in
// document order and returns the first plausible integer price that is
// not in "Ask Price" context.
func (e *PriceExtractor) Extract(text string) *int {
	window := e.window(text)

	for _, idx := range markerIndices(window) {
		tail := window[idx+len(currencyMarker):]
		if len(tail) > 17 {
			tail = tail[:17]
		}

		m := priceDigitsPattern.FindStringSubmatch(tail)
		if m == nil {
			continue
		}

		price, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		if err != nil || price <= e.MinPlausible {
			continue
		}

		// A nearby "Ask Price" means the number is not the listing
		// price for this product.
		lo := idx - 50
		if lo < 0 {
			lo = 0
		}
		hi := idx + 100
		if hi > len(window) {
			hi = len(window)
		}
		if askPricePattern.MatchString(window[lo:hi]) {
			continue
		}

		return &price
	}

	// No accepted number: an "Ask Price" mention anywhere in scope
	// means price-on-request, which is also nil.
	return nil
}

// IsAskPrice reports whether the scan window carries an "Ask Price"
// marker, distinguishing price-on-request from not-found.
func (e *PriceExtractor) IsAskPrice(text string) bool {
	return askPricePattern.MatchString(e.window(text))
}

func (e *PriceExtractor) window(text string) string {
	if e.ScanWindow > 0 && len(text) > e.ScanWindow {
		return text[:e.ScanWindow]
	}
	return text
}

func markerIndices(s string) []int {
	var indices []int
	offset := 0
	for {
		i := strings.Index(s[offset:], currencyMarker)
		if i < 0 {
			return indices
		}
		indices = append(indices, offset+i)
		offset += i + len(currencyMarker)
	}
}
