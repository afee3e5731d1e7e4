package jobs

import (
	"context"
	"time"
)

// StartWorker polls for pending jobs until ctx is done.
func (m *Manager) StartWorker(ctx context.Context) {
	m.logger.Info("job worker started")

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("job worker stopping")
			return
		case <-ticker.C:
			m.processNextJob(ctx)
		}
	}
}

// processNextJob claims and runs the oldest pending job.
func (m *Manager) processNextJob(ctx context.Context) {
	query := `
		SELECT id, brand_slug, start_page, end_page
		FROM scrape_jobs
		WHERE status = 'pending'
		ORDER BY created_at
		LIMIT 1
		FOR UPDATE SKIP LOCKED`

	var jobID, brandSlug string
	var startPage, endPage int

	err := m.db.QueryRow(ctx, query).Scan(&jobID, &brandSlug, &startPage, &endPage)
	if err != nil {
		// No pending jobs.
		return
	}

	m.logger.Info("processing job", "id", jobID, "brand", brandSlug)

	if err := m.updateJobStatus(ctx, jobID, "running", 0, nil); err != nil {
		m.logger.Error("failed to update job status", "error", err)
		return
	}

	found, err := m.processJob(ctx, brandSlug, startPage, endPage)
	if err != nil {
		m.logger.Error("job failed", "id", jobID, "error", err)
		m.updateJobStatus(ctx, jobID, "failed", found, err)
		return
	}

	if err := m.updateJobStatus(ctx, jobID, "completed", found, nil); err != nil {
		m.logger.Error("failed to mark job as completed", "error", err)
	}

	m.logger.Info("job completed", "id", jobID, "products", found)
}

// processJob crawls the requested brand (or all brands) and publishes
// an event per extracted record. Publish failures are logged per
// record and do not abort the job.
func (m *Manager) processJob(ctx context.Context, brandSlug string, startPage, endPage int) (int, error) {
	records, err := m.newCrawler(startPage, endPage).CrawlAll(ctx, brandSlug)
	if err != nil {
		return 0, err
	}

	stored := 0
	for i := range records {
		if err := m.publisher.PublishProductScraped(ctx, &records[i]); err != nil {
			m.logger.Error("failed to publish product",
				"product_url", records[i].ProductURL, "error", err)
			continue
		}
		stored++
	}

	return stored, nil
}
