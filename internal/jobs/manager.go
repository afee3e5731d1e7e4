package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/watchfolio/aristohk-scraper/internal/crawler"
	"github.com/watchfolio/aristohk-scraper/internal/database"
	"github.com/watchfolio/aristohk-scraper/internal/events"
)

// Job represents one queued brand crawl.
type Job struct {
	ID            string     `json:"id"`
	BrandSlug     string     `json:"brand_slug"`
	StartPage     int        `json:"start_page"`
	EndPage       int        `json:"end_page"`
	Status        string     `json:"status"`
	ProductsFound int        `json:"products_found"`
	CreatedAt     time.Time  `json:"created_at"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	Error         string     `json:"error,omitempty"`
}

// CrawlerFactory builds a crawler bounded to the job's page range.
type CrawlerFactory func(startPage, endPage int) *crawler.Crawler

// Manager queues crawl jobs in Postgres and runs them through the
// crawler, publishing an event per stored product.
type Manager struct {
	db         *database.DB
	newCrawler CrawlerFactory
	publisher  *events.Publisher
	logger     *slog.Logger
}

func NewManager(db *database.DB, factory CrawlerFactory, publisher *events.Publisher, logger *slog.Logger) *Manager {
	return &Manager{
		db:         db,
		newCrawler: factory,
		publisher:  publisher,
		logger:     logger.With("component", "job_manager"),
	}
}

// CreateJob enqueues a crawl. An empty brandSlug means all brands.
func (m *Manager) CreateJob(ctx context.Context, brandSlug string, startPage, endPage int) (*Job, error) {
	if startPage < 1 {
		startPage = 1
	}

	job := &Job{
		ID:        uuid.New().String(),
		BrandSlug: brandSlug,
		StartPage: startPage,
		EndPage:   endPage,
		Status:    "pending",
		CreatedAt: time.Now(),
	}

	query := `
		INSERT INTO scrape_jobs (id, brand_slug, start_page, end_page, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := m.db.Exec(ctx, query,
		job.ID, job.BrandSlug, job.StartPage, job.EndPage, job.Status, job.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	m.logger.Info("job created", "id", job.ID, "brand", job.BrandSlug)
	return job, nil
}

// GetJob fetches a job's current state.
func (m *Manager) GetJob(ctx context.Context, id string) (*Job, error) {
	query := `
		SELECT id, brand_slug, start_page, end_page, status,
			products_found, error_message, created_at, started_at, completed_at
		FROM scrape_jobs
		WHERE id = $1`

	job := &Job{}
	var errMsg *string
	err := m.db.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.BrandSlug, &job.StartPage, &job.EndPage, &job.Status,
		&job.ProductsFound, &errMsg, &job.CreatedAt, &job.StartedAt, &job.CompletedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	if errMsg != nil {
		job.Error = *errMsg
	}
	return job, nil
}

func (m *Manager) updateJobStatus(ctx context.Context, id, status string, productsFound int, jobErr error) error {
	query := `
		UPDATE scrape_jobs SET
			status = $2,
			products_found = $3,
			error_message = $4,
			started_at = CASE WHEN $2 = 'running' THEN CURRENT_TIMESTAMP ELSE started_at END,
			completed_at = CASE WHEN $2 IN ('completed', 'failed') THEN CURRENT_TIMESTAMP ELSE completed_at END
		WHERE id = $1`

	var errMsg *string
	if jobErr != nil {
		s := jobErr.Error()
		errMsg = &s
	}

	if _, err := m.db.Exec(ctx, query, id, status, productsFound, errMsg); err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}
	return nil
}
