// Package crawler ties discovery, fetching and extraction together:
// brands → listing pages → product URLs → one ProductRecord per page.
package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/watchfolio/aristohk-scraper/internal/discovery"
	"github.com/watchfolio/aristohk-scraper/internal/fetcher"
	"github.com/watchfolio/aristohk-scraper/internal/models"
	"github.com/watchfolio/aristohk-scraper/internal/parser"
	"github.com/watchfolio/aristohk-scraper/internal/queue"
)

type Options struct {
	BaseURL   string
	StartPage int
	EndPage   int // 0 means probe pagination per brand
	Workers   int
}

type Crawler struct {
	fetcher *fetcher.Fetcher
	parser  *parser.AristoParser
	opts    Options
	logger  *slog.Logger
}

func New(f *fetcher.Fetcher, p *parser.AristoParser, opts Options, logger *slog.Logger) *Crawler {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://" + models.SourceSite
	}
	if opts.StartPage < 1 {
		opts.StartPage = 1
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Crawler{
		fetcher: f,
		parser:  p,
		opts:    opts,
		logger:  logger.With("component", "crawler"),
	}
}

// DiscoverBrands fetches the homepage and lists every brand on it.
func (c *Crawler) DiscoverBrands(ctx context.Context) ([]models.BrandDescriptor, error) {
	doc, err := c.fetcher.GetDocument(ctx, c.opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to load homepage: %w", err)
	}

	brands := discovery.Brands(doc, c.opts.BaseURL)
	c.logger.Info("discovered brands", "count", len(brands))
	return brands, nil
}

// CrawlBrand walks a brand's listing pages, collects product URLs into
// the shared visited set, and extracts a record per product. A failed
// page or product is logged and skipped; it never aborts the batch.
func (c *Crawler) CrawlBrand(ctx context.Context, brand models.BrandDescriptor, visited discovery.Visited) ([]models.ProductRecord, error) {
	c.logger.Info("crawling brand", "brand", brand.Name)

	if visited == nil {
		visited = discovery.NewVisited()
	}

	endPage := c.opts.EndPage
	if endPage == 0 {
		doc, err := c.fetcher.GetDocument(ctx, brand.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to load brand page: %w", err)
		}
		endPage = discovery.TotalPages(doc)
	}

	var productURLs []string
	for page := c.opts.StartPage; page <= endPage; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, err := c.fetcher.GetDocument(ctx, discovery.PageURL(brand.URL, page))
		if err != nil {
			c.logger.Warn("skipping listing page", "brand", brand.Slug, "page", page, "error", err)
			continue
		}

		urls, _ := discovery.ProductURLs(doc, c.opts.BaseURL, visited)
		if len(urls) == 0 {
			c.logger.Info("no products on page, stopping", "brand", brand.Slug, "page", page)
			break
		}
		productURLs = append(productURLs, urls...)
	}

	records := c.extractAll(ctx, brand, productURLs)
	c.logger.Info("brand crawl finished", "brand", brand.Name, "products", len(records))
	return records, nil
}

// CrawlAll crawls every discovered brand, or only the one matching
// brandSlug if it is non-empty.
func (c *Crawler) CrawlAll(ctx context.Context, brandSlug string) ([]models.ProductRecord, error) {
	brands, err := c.DiscoverBrands(ctx)
	if err != nil {
		return nil, err
	}

	if brandSlug != "" {
		brands = filterBrands(brands, brandSlug)
		if len(brands) == 0 {
			return nil, fmt.Errorf("brand %q not found", brandSlug)
		}
	}

	visited := discovery.NewVisited()
	var all []models.ProductRecord

	for _, brand := range brands {
		if err := ctx.Err(); err != nil {
			return all, err
		}

		records, err := c.CrawlBrand(ctx, brand, visited)
		if err != nil {
			c.logger.Error("brand crawl failed, continuing", "brand", brand.Name, "error", err)
			continue
		}
		all = append(all, records...)
		c.logger.Info("progress", "total_products", len(all))
	}

	return all, nil
}

// extractAll fans product URLs out to a bounded worker pool. Each
// worker appends to its own accumulator; the slices are merged after
// the pool drains, so no extraction shares mutable state.
func (c *Crawler) extractAll(ctx context.Context, brand models.BrandDescriptor, urls []string) []models.ProductRecord {
	if len(urls) == 0 {
		return nil
	}

	tasks := queue.NewInMemoryQueue()
	for _, u := range urls {
		tasks.Push(&queue.Task{
			ID:    uuid.New().String(),
			URL:   u,
			Brand: brand.Slug,
		})
	}
	tasks.Close()

	workers := c.opts.Workers
	if workers > len(urls) {
		workers = len(urls)
	}

	perWorker := make([][]models.ProductRecord, workers)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for {
				task, err := tasks.Pop(ctx)
				if err != nil {
					return
				}
				if record := c.extractOne(ctx, task.URL); record != nil {
					perWorker[w] = append(perWorker[w], *record)
				}
			}
		}(w)
	}
	wg.Wait()

	var records []models.ProductRecord
	for _, batch := range perWorker {
		records = append(records, batch...)
	}
	return records
}

// extractOne fetches and parses a single product page. Any failure is
// logged and reported as a nil record.
func (c *Crawler) extractOne(ctx context.Context, url string) *models.ProductRecord {
	doc, err := c.fetcher.GetDocument(ctx, url)
	if err != nil {
		c.logger.Warn("failed to fetch product", "url", url, "error", err)
		return nil
	}

	record, err := c.parser.ParseDocument(doc, url)
	if err != nil {
		c.logger.Warn("failed to extract product", "url", url, "error", err)
		return nil
	}

	c.logger.Info("extracted product",
		"brand", record.Brand, "reference", record.Reference, "price_hkd", record.PriceHKD)
	return record
}

func filterBrands(brands []models.BrandDescriptor, slug string) []models.BrandDescriptor {
	var out []models.BrandDescriptor
	for _, b := range brands {
		if strings.EqualFold(b.Slug, slug) {
			out = append(out, b)
		}
	}
	return out
}
