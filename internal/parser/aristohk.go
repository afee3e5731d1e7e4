package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/watchfolio/aristohk-scraper/internal/models"
)

var (
	ErrEmptyDocument = errors.New("empty document")
	ErrNoProductURL  = errors.New("product URL is required")
)

// AristoParser assembles one ProductRecord per product page. The
// field extractors are independent: a failure in one degrades only
// its own field to the unknown sentinel, never the whole record.
type AristoParser struct {
	price     *PriceExtractor
	condition *ConditionClassifier
	year      *YearExtractor
	logger    *slog.Logger
}

func NewAristoParser(logger *slog.Logger) *AristoParser {
	return &AristoParser{
		price:     NewPriceExtractor(),
		condition: NewConditionClassifier(),
		year:      NewYearExtractor(),
		logger:    logger.With("component", "parser"),
	}
}

// ParseProductPage parses raw HTML for the given product URL.
func (p *AristoParser) ParseProductPage(html, productURL string) (*models.ProductRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return p.ParseDocument(doc, productURL)
}

// ParseDocument extracts a record from an already-parsed document.
// It returns (nil, error) on whole-document failure and never panics
// out to the caller; partial records are never returned.
func (p *AristoParser) ParseDocument(doc *goquery.Document, productURL string) (record *models.ProductRecord, err error) {
	if productURL == "" {
		return nil, ErrNoProductURL
	}
	if doc == nil {
		return nil, ErrEmptyDocument
	}

	defer func() {
		if r := recover(); r != nil {
			record = nil
			err = fmt.Errorf("extraction panicked for %s: %v", productURL, r)
		}
	}()

	page := NormalizeDocument(doc)
	record = p.Assemble(page, productURL)
	return record, nil
}

// Assemble runs every field extractor against the normalized page and
// merges the results. Each extractor is individually recovered so one
// misbehaving heuristic cannot suppress the others' fields.
func (p *AristoParser) Assemble(page *Page, productURL string) *models.ProductRecord {
	record := models.NewProductRecord(productURL)
	path := DecomposeURL(productURL)

	p.extractField(productURL, "brand", func() {
		if slug := path.BrandSlug(); slug != "" {
			record.Brand = ResolveBrand(slug)
		}
	})

	p.extractField(productURL, "reference", func() {
		record.Reference = ResolveReference(record.Brand, path.ModelSlug(), page)
	})

	p.extractField(productURL, "price", func() {
		record.PriceHKD = p.price.Extract(page.Text)
	})

	p.extractField(productURL, "condition", func() {
		record.Condition = p.condition.Classify(page.Text)
	})

	p.extractField(productURL, "year", func() {
		record.Year = p.year.Extract(page.Text)
	})

	p.extractField(productURL, "completeness", func() {
		record.Completeness = ExtractCompleteness(page.Text)
	})

	record.Description = record.Brand + " " + record.Reference

	return record
}

func (p *AristoParser) extractField(productURL, field string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warn("field extraction failed, keeping sentinel",
				"field", field, "url", productURL, "panic", r)
		}
	}()
	fn()
}
