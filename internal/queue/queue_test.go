package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushPopOrder(t *testing.T) {
	q := NewInMemoryQueue()
	defer q.Close()

	require.NoError(t, q.Push(&Task{ID: "low", Priority: 1}))
	require.NoError(t, q.Push(&Task{ID: "high", Priority: 10}))
	assert.Equal(t, 2, q.Size())

	ctx := context.Background()

	task, err := q.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "high", task.ID)

	task, err = q.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "low", task.ID)
}

func TestPopAfterClose(t *testing.T) {
	q := NewInMemoryQueue()
	require.NoError(t, q.Push(&Task{ID: "last"}))
	require.NoError(t, q.Close())

	// Drains remaining tasks, then reports closed.
	task, err := q.Pop(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "last", task.ID)

	_, err = q.Pop(context.Background())
	assert.ErrorIs(t, err, ErrQueueClosed)

	assert.ErrorIs(t, q.Push(&Task{ID: "late"}), ErrQueueClosed)
}

func TestPopHonorsContext(t *testing.T) {
	q := NewInMemoryQueue()
	defer q.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := q.Pop(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
