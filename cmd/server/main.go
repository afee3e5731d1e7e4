package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/watchfolio/aristohk-scraper/internal/api"
	"github.com/watchfolio/aristohk-scraper/internal/config"
	"github.com/watchfolio/aristohk-scraper/internal/crawler"
	"github.com/watchfolio/aristohk-scraper/internal/database"
	"github.com/watchfolio/aristohk-scraper/internal/events"
	"github.com/watchfolio/aristohk-scraper/internal/fetcher"
	"github.com/watchfolio/aristohk-scraper/internal/jobs"
	"github.com/watchfolio/aristohk-scraper/internal/parser"
	"github.com/watchfolio/aristohk-scraper/internal/ratelimit"
	"github.com/watchfolio/aristohk-scraper/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logg := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	logg.Info("starting aristohk scraper server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logg.Info("shutdown signal received")
		cancel()
	}()

	p := parser.NewAristoParser(logg)

	var manager *jobs.Manager
	if cfg.Database.Enabled {
		db, err := database.New(ctx, database.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Database: cfg.Database.DBName,
		})
		if err != nil {
			logg.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := db.EnsureSchema(ctx); err != nil {
			logg.Error("failed to ensure schema", "error", err)
			os.Exit(1)
		}

		limiter := ratelimit.NewFixedRateLimiter(cfg.Scraper.Delay)
		f := fetcher.New(fetcher.Options{
			UserAgent:  cfg.Scraper.UserAgent,
			Timeout:    cfg.Scraper.HTTPTimeout,
			MaxRetries: cfg.Scraper.MaxRetries,
			BaseDelay:  cfg.Scraper.RetryDelay,
		}, limiter, logg)

		factory := func(startPage, endPage int) *crawler.Crawler {
			return crawler.New(f, p, crawler.Options{
				BaseURL:   cfg.Scraper.BaseURL,
				StartPage: startPage,
				EndPage:   endPage,
				Workers:   cfg.Scraper.Workers,
			}, logg)
		}

		publisher := events.NewPublisher(db, cfg.Redis.Stream, logg)
		manager = jobs.NewManager(db, factory, publisher, logg)
		go manager.StartWorker(ctx)

		if cfg.Redis.Enabled {
			redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
			defer redisClient.Close()

			relay := database.NewRelay(db, redisClient, logg, database.RelayConfig{})
			go func() {
				if err := relay.Start(ctx); err != nil && ctx.Err() == nil {
					logg.Error("relay stopped unexpectedly", "error", err)
				}
			}()
		}
	}

	handlers := api.NewHandlers(p, manager, logg)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      api.NewRouter(handlers),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error("server shutdown failed", "error", err)
		}
	}()

	logg.Info("listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error("server failed", "error", err)
		os.Exit(1)
	}
}
