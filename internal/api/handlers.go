package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/watchfolio/aristohk-scraper/internal/jobs"
	"github.com/watchfolio/aristohk-scraper/internal/parser"
)

type Handlers struct {
	parser *parser.AristoParser
	jobs   *jobs.Manager
	logger *slog.Logger
}

func NewHandlers(p *parser.AristoParser, jobs *jobs.Manager, logger *slog.Logger) *Handlers {
	return &Handlers{
		parser: p,
		jobs:   jobs,
		logger: logger,
	}
}

// ExtractRequest carries a pre-fetched product page for extraction.
type ExtractRequest struct {
	HTML       string `json:"html"`
	ProductURL string `json:"product_url"`
}

// ExtractProduct runs the extraction engine over posted HTML. The
// server never fetches on behalf of this endpoint; callers bring the
// document.
func (h *Handlers) ExtractProduct(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.HTML == "" || req.ProductURL == "" {
		h.respondError(w, http.StatusBadRequest, "html and product_url are required")
		return
	}

	record, err := h.parser.ParseProductPage(req.HTML, req.ProductURL)
	if err != nil {
		h.logger.Error("extraction failed", "url", req.ProductURL, "error", err)
		h.respondError(w, http.StatusUnprocessableEntity, "could not extract product")
		return
	}

	h.respondJSON(w, http.StatusOK, record)
}

// CreateJobRequest enqueues a crawl job.
type CreateJobRequest struct {
	BrandSlug string `json:"brand_slug"`
	StartPage int    `json:"start_page"`
	EndPage   int    `json:"end_page"`
}

func (h *Handlers) CreateJob(w http.ResponseWriter, r *http.Request) {
	if h.jobs == nil {
		h.respondError(w, http.StatusServiceUnavailable, "job queue not configured")
		return
	}

	var req CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	job, err := h.jobs.CreateJob(r.Context(), req.BrandSlug, req.StartPage, req.EndPage)
	if err != nil {
		h.logger.Error("failed to create job", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to create job")
		return
	}

	h.respondJSON(w, http.StatusCreated, job)
}

func (h *Handlers) GetJob(w http.ResponseWriter, r *http.Request) {
	if h.jobs == nil {
		h.respondError(w, http.StatusServiceUnavailable, "job queue not configured")
		return
	}

	job, err := h.jobs.GetJob(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, http.StatusNotFound, "job not found")
		return
	}

	h.respondJSON(w, http.StatusOK, job)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
