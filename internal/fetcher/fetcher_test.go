package fetcher

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGetDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte(`<html><head><title>ROLEX | DAYTONA</title></head></html>`))
	}))
	defer srv.Close()

	f := New(Options{BaseDelay: time.Millisecond}, nil, testLogger())

	doc, err := f.GetDocument(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "ROLEX | DAYTONA", doc.Find("title").Text())
}

func TestGetDocumentRetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`<html><body>ok</body></html>`))
	}))
	defer srv.Close()

	f := New(Options{MaxRetries: 3, BaseDelay: time.Millisecond}, nil, testLogger())

	_, err := f.GetDocument(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGetDocumentGivesUpAfterRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := New(Options{MaxRetries: 2, BaseDelay: time.Millisecond}, nil, testLogger())

	_, err := f.GetDocument(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestGetDocumentHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := New(Options{MaxRetries: 3, BaseDelay: time.Minute}, nil, testLogger())

	_, err := f.GetDocument(ctx, srv.URL)
	assert.Error(t, err)
}
