package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/watchfolio/aristohk-scraper/internal/models"
)

// UpsertProduct inserts a scraped record or replaces the existing row
// with the same product_url. The table mirrors the snapshot's field
// set; nullable columns carry the record's nil price/year directly.
func (db *DB) UpsertProduct(ctx context.Context, p *models.ProductRecord) error {
	query := `
		INSERT INTO products (
			product_url, brand, reference, description, condition,
			price_hkd, year, completeness, scraped_from, product_type,
			scraped_at, created
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (product_url) DO UPDATE SET
			brand = EXCLUDED.brand,
			reference = EXCLUDED.reference,
			description = EXCLUDED.description,
			condition = EXCLUDED.condition,
			price_hkd = EXCLUDED.price_hkd,
			year = EXCLUDED.year,
			completeness = EXCLUDED.completeness,
			scraped_at = EXCLUDED.scraped_at,
			updated_at = CURRENT_TIMESTAMP`

	_, err := db.pool.Exec(ctx, query,
		p.ProductURL, p.Brand, p.Reference, p.Description, p.Condition,
		p.PriceHKD, p.Year, p.Completeness, p.ScrapedFrom, p.ProductType,
		p.ScrapedAt, p.Created,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert product: %w", err)
	}

	return nil
}

// UpsertProductTx is UpsertProduct inside an existing transaction,
// used when the write must commit atomically with its outbox event.
func (db *DB) UpsertProductTx(ctx context.Context, tx pgx.Tx, p *models.ProductRecord) error {
	query := `
		INSERT INTO products (
			product_url, brand, reference, description, condition,
			price_hkd, year, completeness, scraped_from, product_type,
			scraped_at, created
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (product_url) DO UPDATE SET
			brand = EXCLUDED.brand,
			reference = EXCLUDED.reference,
			description = EXCLUDED.description,
			condition = EXCLUDED.condition,
			price_hkd = EXCLUDED.price_hkd,
			year = EXCLUDED.year,
			completeness = EXCLUDED.completeness,
			scraped_at = EXCLUDED.scraped_at,
			updated_at = CURRENT_TIMESTAMP`

	_, err := tx.Exec(ctx, query,
		p.ProductURL, p.Brand, p.Reference, p.Description, p.Condition,
		p.PriceHKD, p.Year, p.Completeness, p.ScrapedFrom, p.ProductType,
		p.ScrapedAt, p.Created,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert product: %w", err)
	}

	return nil
}

// GetProduct fetches one row by its product URL.
func (db *DB) GetProduct(ctx context.Context, productURL string) (*models.ProductRecord, error) {
	query := `
		SELECT product_url, brand, reference, description, condition,
			price_hkd, year, completeness, scraped_from, product_type,
			scraped_at, created
		FROM products
		WHERE product_url = $1`

	p := &models.ProductRecord{}
	err := db.pool.QueryRow(ctx, query, productURL).Scan(
		&p.ProductURL, &p.Brand, &p.Reference, &p.Description, &p.Condition,
		&p.PriceHKD, &p.Year, &p.Completeness, &p.ScrapedFrom, &p.ProductType,
		&p.ScrapedAt, &p.Created,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return p, nil
}

// CountProducts returns per-brand product counts.
func (db *DB) CountProducts(ctx context.Context) (map[string]int, error) {
	rows, err := db.pool.Query(ctx, `SELECT brand, COUNT(*) FROM products GROUP BY brand`)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var brand string
		var count int
		if err := rows.Scan(&brand, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[brand] = count
	}

	return counts, rows.Err()
}

// Schema is the DDL for the product and job tables; applied by
// deployment tooling, kept here so the queries and the schema stay in
// one package.
const Schema = `
CREATE TABLE IF NOT EXISTS products (
	product_url  TEXT PRIMARY KEY,
	brand        TEXT NOT NULL,
	reference    TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	condition    TEXT NOT NULL,
	price_hkd    BIGINT,
	year         INT,
	completeness TEXT NOT NULL DEFAULT '',
	scraped_from TEXT NOT NULL,
	product_type TEXT NOT NULL,
	scraped_at   TEXT NOT NULL,
	created      TEXT NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS scrape_jobs (
	id            UUID PRIMARY KEY,
	brand_slug    TEXT NOT NULL DEFAULT '',
	start_page    INT NOT NULL DEFAULT 1,
	end_page      INT NOT NULL DEFAULT 0,
	status        TEXT NOT NULL DEFAULT 'pending',
	products_found INT NOT NULL DEFAULT 0,
	error_message TEXT,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	started_at    TIMESTAMPTZ,
	completed_at  TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS outbox_event (
	id             UUID PRIMARY KEY,
	aggregate_type TEXT NOT NULL,
	aggregate_id   TEXT NOT NULL,
	event_type     TEXT NOT NULL,
	payload        JSONB NOT NULL,
	target_stream  TEXT NOT NULL,
	status         TEXT NOT NULL DEFAULT 'pending',
	retry_count    INT NOT NULL DEFAULT 0,
	error_message  TEXT,
	created_at     TIMESTAMPTZ NOT NULL,
	processed_at   TIMESTAMPTZ,
	next_retry_at  TIMESTAMPTZ
);
`

// EnsureSchema applies the DDL, useful in development and tests.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
