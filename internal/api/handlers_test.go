package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchfolio/aristohk-scraper/internal/models"
	"github.com/watchfolio/aristohk-scraper/internal/parser"
)

func testRouter() http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandlers(parser.NewAristoParser(logger), nil, logger)
	return NewRouter(h)
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestExtractProduct(t *testing.T) {
	router := testRouter()

	html := `<html><head><title>ROLEX | 126500LN-0002</title></head><body>
		<h1>Rolex Cosmograph Daytona 126500LN-0002</h1>
		<p>HK$245,000 Release Year: 2023 Pre-owned With Box With Papers</p>
	</body></html>`

	rec := postJSON(t, router, "/api/v1/extract", ExtractRequest{
		HTML:       html,
		ProductURL: "https://aristohk.com/rolex/126500-ln-0002/18692",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var record models.ProductRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))

	assert.Equal(t, "ROLEX", record.Brand)
	assert.Equal(t, "126500LN-0002", record.Reference)
	assert.Equal(t, models.ConditionPreOwned, record.Condition)
	require.NotNil(t, record.PriceHKD)
	assert.Equal(t, 245000, *record.PriceHKD)
}

func TestExtractProductValidation(t *testing.T) {
	router := testRouter()

	rec := postJSON(t, router, "/api/v1/extract", ExtractRequest{HTML: "<html></html>"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", bytes.NewReader([]byte("{not json")))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJobsUnavailableWithoutDatabase(t *testing.T) {
	router := testRouter()

	rec := postJSON(t, router, "/api/v1/jobs", CreateJobRequest{BrandSlug: "rolex"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/some-id", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealth(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
