package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/watchfolio/aristohk-scraper/internal/config"
	"github.com/watchfolio/aristohk-scraper/internal/crawler"
	"github.com/watchfolio/aristohk-scraper/internal/fetcher"
	"github.com/watchfolio/aristohk-scraper/internal/parser"
	"github.com/watchfolio/aristohk-scraper/internal/ratelimit"
	"github.com/watchfolio/aristohk-scraper/internal/storage"
	"github.com/watchfolio/aristohk-scraper/pkg/logger"
)

func main() {
	var (
		all    = flag.Bool("all", false, "Scrape all products from all brands")
		brand  = flag.String("brand", "", "Specific brand to scrape (e.g. \"rolex\")")
		pages  = flag.String("pages", "", "Page range to scrape (e.g. \"1-5\" or \"10\")")
		output = flag.String("output", "aristohk_products.json", "Output JSON filename")
		delay  = flag.Duration("delay", 500*time.Millisecond, "Delay between requests")
	)
	flag.Parse()

	if !*all && *pages == "" && *brand == "" {
		fmt.Fprintln(os.Stderr, "Error: you must specify either --all, --pages, or --brand")
		os.Exit(1)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logg := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	logg.Info("starting aristohk scraper")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logg.Info("shutdown signal received")
		cancel()
	}()

	startPage, endPage := 1, 0
	if *pages != "" {
		startPage, endPage, err = parsePageRange(*pages)
		if err != nil {
			log.Fatalf("Invalid --pages value %q: %v", *pages, err)
		}
	}

	limiter := ratelimit.NewFixedRateLimiter(*delay)
	f := fetcher.New(fetcher.Options{
		UserAgent:  cfg.Scraper.UserAgent,
		Timeout:    cfg.Scraper.HTTPTimeout,
		MaxRetries: cfg.Scraper.MaxRetries,
		BaseDelay:  cfg.Scraper.RetryDelay,
	}, limiter, logg)

	c := crawler.New(f, parser.NewAristoParser(logg), crawler.Options{
		BaseURL:   cfg.Scraper.BaseURL,
		StartPage: startPage,
		EndPage:   endPage,
		Workers:   cfg.Scraper.Workers,
	}, logg)

	records, err := c.CrawlAll(ctx, *brand)
	if err != nil && len(records) == 0 {
		logg.Error("scraping failed", "error", err)
		os.Exit(1)
	}

	store := storage.NewSnapshotStore(*output)
	if err := store.Save(records); err != nil {
		logg.Error("failed to save results", "file", *output, "error", err)
		os.Exit(1)
	}

	fmt.Println("\nScraping completed successfully!")
	fmt.Printf("Total products scraped: %d\n", len(records))
	fmt.Printf("Results saved to: %s\n", *output)
}

// parsePageRange parses "1-5" into (1, 5) and "10" into (10, 10).
func parsePageRange(s string) (int, int, error) {
	if start, end, ok := strings.Cut(s, "-"); ok {
		startPage, err := strconv.Atoi(start)
		if err != nil {
			return 0, 0, err
		}
		endPage, err := strconv.Atoi(end)
		if err != nil {
			return 0, 0, err
		}
		return startPage, endPage, nil
	}

	page, err := strconv.Atoi(s)
	if err != nil {
		return 0, 0, err
	}
	return page, page, nil
}
