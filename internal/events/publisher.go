package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/watchfolio/aristohk-scraper/internal/database"
	"github.com/watchfolio/aristohk-scraper/internal/models"
)

// EventType represents the type of event
type EventType string

const (
	// EventTypeProductScraped is published when a product record has
	// been extracted and stored.
	EventTypeProductScraped EventType = "PRODUCT_SCRAPED"
)

// ProductScrapedPayload is the event body for PRODUCT_SCRAPED. It
// carries the whole record so consumers (currency conversion, search
// indexing) need no read-back.
type ProductScrapedPayload struct {
	EventID   string                `json:"event_id"`
	EventType string                `json:"event_type"`
	Timestamp time.Time             `json:"timestamp"`
	Product   *models.ProductRecord `json:"product"`
	Source    string                `json:"source"`
}

// Publisher writes events through the transactional outbox: the
// product upsert and its event commit or roll back together.
type Publisher struct {
	db     *database.DB
	outbox *database.OutboxRepository
	stream string
	logger *slog.Logger
}

// NewPublisher builds a Publisher targeting the given Redis stream.
// An empty stream falls back to the outbox default.
func NewPublisher(db *database.DB, stream string, logger *slog.Logger) *Publisher {
	return &Publisher{
		db:     db,
		outbox: database.NewOutboxRepository(db),
		stream: stream,
		logger: logger.With("component", "event_publisher"),
	}
}

// PublishProductScraped stores the record and its PRODUCT_SCRAPED
// event in one transaction.
func (p *Publisher) PublishProductScraped(ctx context.Context, record *models.ProductRecord) error {
	payload := &ProductScrapedPayload{
		EventID:   uuid.New().String(),
		EventType: string(EventTypeProductScraped),
		Timestamp: time.Now(),
		Product:   record,
		Source:    "scraper",
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	err = p.db.WithTx(ctx, func(tx pgx.Tx) error {
		if err := p.db.UpsertProductTx(ctx, tx, record); err != nil {
			return err
		}
		return p.outbox.InsertWithTx(ctx, tx, &database.OutboxEvent{
			AggregateType: "product",
			AggregateID:   record.ProductURL,
			EventType:     string(EventTypeProductScraped),
			Payload:       data,
			TargetStream:  p.stream,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to publish product scraped: %w", err)
	}

	p.logger.Debug("product scraped event queued",
		"event_id", payload.EventID,
		"product_url", record.ProductURL)

	return nil
}
