package models

import (
	"time"
)

const (
	// TimestampLayout is the format used for scraped_at/created fields,
	// millisecond precision.
	TimestampLayout = "2006-01-02 15:04:05.000"

	SourceSite  = "aristohk.com"
	ProductType = "watches"

	ConditionNew      = "New"
	ConditionPreOwned = "Pre-owned"

	UnknownReference = "Unknown"
)

// ProductRecord is the unit of output: one extracted watch listing.
// Records are value objects keyed by ProductURL and are never mutated
// after assembly. PriceUSD and PriceIDR are reserved for a downstream
// currency-conversion step and always nil here.
type ProductRecord struct {
	Brand        string `json:"brand"`
	Reference    string `json:"reference"`
	Description  string `json:"description"`
	Condition    string `json:"condition"`
	ProductURL   string `json:"product_url"`
	PriceUSD     *int   `json:"price_usd"`
	PriceIDR     *int   `json:"price_idr"`
	PriceHKD     *int   `json:"price_hkd"`
	Year         *int   `json:"year"`
	Completeness string `json:"completeness"`
	ScrapedFrom  string `json:"scraped_from"`
	ScrapedAt    string `json:"scraped_at"`
	ProductType  string `json:"product_type"`
	Created      string `json:"created"`
}

// BrandDescriptor identifies a brand landing page discovered on the
// site. Slug is the unique key within a discovery pass.
type BrandDescriptor struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Slug string `json:"slug"`
}

// NewProductRecord returns a record stamped with capture time and the
// constant provenance tags.
func NewProductRecord(productURL string) *ProductRecord {
	now := time.Now().Format(TimestampLayout)
	return &ProductRecord{
		Brand:       UnknownReference,
		Reference:   UnknownReference,
		Condition:   ConditionNew,
		ProductURL:  productURL,
		ScrapedFrom: SourceSite,
		ScrapedAt:   now,
		ProductType: ProductType,
		Created:     now,
	}
}

func (p *ProductRecord) Validate() []string {
	var problems []string

	if p.ProductURL == "" {
		problems = append(problems, "product_url is required")
	}

	if p.Reference == "" {
		problems = append(problems, "reference must never be empty")
	}

	if p.Condition != ConditionNew && p.Condition != ConditionPreOwned {
		problems = append(problems, "condition must be New or Pre-owned")
	}

	if p.PriceHKD != nil && *p.PriceHKD <= 0 {
		problems = append(problems, "price_hkd must be positive when set")
	}

	if p.Year != nil && (*p.Year < 1950 || *p.Year > 2027) {
		problems = append(problems, "year out of plausible range")
	}

	return problems
}
