package database

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRedisClient is a mock for Redis client
type MockRedisClient struct {
	mock.Mock
}

func (m *MockRedisClient) XAdd(ctx context.Context, args *redis.XAddArgs) *redis.StringCmd {
	mockArgs := m.Called(ctx, args)
	cmd := redis.NewStringCmd(ctx)
	if mockArgs.Get(0) != nil {
		cmd.SetErr(mockArgs.Error(0))
	} else {
		cmd.SetVal("1234567890-0")
	}
	return cmd
}

func (m *MockRedisClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockOutboxRepository is a mock for OutboxRepository
type MockOutboxRepository struct {
	mock.Mock
}

func (m *MockOutboxRepository) GetPending(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*OutboxEvent), args.Error(1)
}

func (m *MockOutboxRepository) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOutboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, err error) error {
	args := m.Called(ctx, id, err)
	return args.Error(0)
}

func productScrapedEvent(t *testing.T) *OutboxEvent {
	t.Helper()

	payload, err := json.Marshal(map[string]any{
		"event_type":  "PRODUCT_SCRAPED",
		"product_url": "https://aristohk.com/rolex/126500-ln-0002/18692",
		"brand":       "ROLEX",
	})
	require.NoError(t, err)

	return &OutboxEvent{
		ID:            uuid.New(),
		AggregateType: "product",
		AggregateID:   "https://aristohk.com/rolex/126500-ln-0002/18692",
		EventType:     "PRODUCT_SCRAPED",
		Payload:       payload,
		TargetStream:  DefaultTargetStream,
		Status:        OutboxStatusPending,
		CreatedAt:     time.Now(),
	}
}

func TestRelayProcessEvents(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("publishes pending events and marks them processed", func(t *testing.T) {
		mockRedis := new(MockRedisClient)
		mockOutbox := new(MockOutboxRepository)

		relay := &Relay{
			redis:     mockRedis,
			outbox:    mockOutbox,
			logger:    logger,
			batchSize: 10,
		}

		event := productScrapedEvent(t)
		mockOutbox.On("GetPending", ctx, 10).Return([]*OutboxEvent{event}, nil)
		mockRedis.On("XAdd", ctx, mock.MatchedBy(func(args *redis.XAddArgs) bool {
			return args.Stream == DefaultTargetStream
		})).Return(nil)
		mockOutbox.On("MarkProcessed", ctx, event.ID).Return(nil)

		err := relay.processEvents(ctx)
		require.NoError(t, err)

		mockOutbox.AssertExpectations(t)
		mockRedis.AssertExpectations(t)
	})

	t.Run("marks event failed when redis publish fails", func(t *testing.T) {
		mockRedis := new(MockRedisClient)
		mockOutbox := new(MockOutboxRepository)

		relay := &Relay{
			redis:     mockRedis,
			outbox:    mockOutbox,
			logger:    logger,
			batchSize: 10,
		}

		event := productScrapedEvent(t)
		publishErr := errors.New("redis unavailable")

		mockOutbox.On("GetPending", ctx, 10).Return([]*OutboxEvent{event}, nil)
		mockRedis.On("XAdd", ctx, mock.Anything).Return(publishErr)
		mockOutbox.On("MarkFailed", ctx, event.ID, mock.Anything).Return(nil)

		err := relay.processEvents(ctx)
		require.NoError(t, err)

		mockOutbox.AssertExpectations(t)
		mockOutbox.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything)
	})

	t.Run("no pending events is a no-op", func(t *testing.T) {
		mockRedis := new(MockRedisClient)
		mockOutbox := new(MockOutboxRepository)

		relay := &Relay{
			redis:     mockRedis,
			outbox:    mockOutbox,
			logger:    logger,
			batchSize: 10,
		}

		mockOutbox.On("GetPending", ctx, 10).Return([]*OutboxEvent{}, nil)

		err := relay.processEvents(ctx)
		require.NoError(t, err)

		mockRedis.AssertNotCalled(t, "XAdd", mock.Anything, mock.Anything)
	})
}

func TestCalculateNextRetryTime(t *testing.T) {
	before := time.Now()

	first := calculateNextRetryTime(1)
	assert.True(t, first.After(before))

	// Backoff is capped at five minutes.
	capped := calculateNextRetryTime(20)
	assert.WithinDuration(t, before.Add(300*time.Second), capped, 2*time.Second)
}
