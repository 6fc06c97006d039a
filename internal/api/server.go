package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fmuoria/applicant-pipeline/internal/board"
	"github.com/fmuoria/applicant-pipeline/internal/dashboard"
	"github.com/fmuoria/applicant-pipeline/internal/export"
	"github.com/fmuoria/applicant-pipeline/internal/models"
	"github.com/fmuoria/applicant-pipeline/internal/pipeline"
	"github.com/fmuoria/applicant-pipeline/internal/store"
)

// ShortlistPublisher copies a shortlist to an external tracker
type ShortlistPublisher interface {
	PublishShortlist(ctx context.Context, job models.Job, shortlist []models.ScoredApplicant) ([]string, error)
}

// ShortlistSummarizer writes a prose summary of a shortlist
type ShortlistSummarizer interface {
	Summarize(ctx context.Context, job models.Job, shortlist []models.ScoredApplicant) (string, error)
}

// Uploader accepts replacement data files for file backed stores
type Uploader interface {
	SaveUploadedFile(filename string, content io.Reader) (string, error)
}

// Server handles HTTP requests
type Server struct {
	backend    store.Backend
	publisher  ShortlistPublisher
	summarizer ShortlistSummarizer
}

// NewServer creates a new API server. publisher and summarizer may be nil,
// in which case their endpoints answer 503.
func NewServer(backend store.Backend, publisher ShortlistPublisher, summarizer ShortlistSummarizer) *Server {
	return &Server{
		backend:    backend,
		publisher:  publisher,
		summarizer: summarizer,
	}
}

// Router returns the HTTP router
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /dashboard", s.handleDashboard)
	mux.HandleFunc("GET /jobs", s.handleJobs)
	mux.HandleFunc("GET /jobs/{id}/applicants", s.handleApplicants)
	mux.HandleFunc("GET /jobs/{id}/stats", s.handleStats)
	mux.HandleFunc("GET /jobs/{id}/report.xlsx", s.handleReport)
	mux.HandleFunc("POST /jobs/{id}/shortlist", s.handleShortlist)
	mux.HandleFunc("GET /jobs/{id}/insight", s.handleInsight)
	mux.HandleFunc("PUT /applicants/{id}/status", s.handleSetStatus)
	mux.HandleFunc("POST /upload", s.handleUpload)
	mux.HandleFunc("GET /", s.handleRoot)

	return s.loggingMiddleware(mux)
}

// handleRoot provides API information
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.respondError(w, http.StatusNotFound, "not found")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"service": "Applicant Pipeline",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"GET /jobs":                   "Search jobs (q, location, type)",
			"GET /jobs/{id}/applicants":   "Ranked applicants (status, sort, best)",
			"GET /jobs/{id}/stats":        "Applicant counts per status",
			"GET /jobs/{id}/report.xlsx":  "Excel report of ranked applicants",
			"POST /jobs/{id}/shortlist":   "Publish best matches to Notion",
			"GET /jobs/{id}/insight":      "AI summary of best matches",
			"PUT /applicants/{id}/status": "Move an applicant to a new status",
			"POST /upload":                "Replace jobs.json or applicants.json (file store)",
			"GET /dashboard":              "Totals, status counts, recent and busiest jobs",
			"GET /health":                 "Health check",
		},
	})
}

// handleHealth provides a health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// handleDashboard aggregates the whole catalog
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.backend.ListJobs(r.Context())
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	applicants, err := s.backend.ListApplicants(r.Context())
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, dashboard.Summarize(jobs, applicants))
}

// handleJobs searches the job board
func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.backend.ListJobs(r.Context())
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	q := r.URL.Query()
	matches := pipeline.SearchJobs(jobs, pipeline.JobQuery{
		Text:     q.Get("q"),
		Location: q.Get("location"),
		Type:     q.Get("type"),
	})
	locations, types := pipeline.Facets(jobs)

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":      matches,
		"locations": locations,
		"types":     types,
	})
}

// handleApplicants returns a job's applicants ranked and presented per the query
func (s *Server) handleApplicants(w http.ResponseWriter, r *http.Request) {
	opts, err := presentOptions(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	b, ok := s.loadBoard(w, r)
	if !ok {
		return
	}
	job, _ := b.Job()

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"job":        job,
		"applicants": b.View(opts),
		"counts":     b.Counts(),
	})
}

// handleStats returns the per-status counts for a job
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	b, ok := s.loadBoard(w, r)
	if !ok {
		return
	}
	counts := b.Counts()

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"counts": counts,
		"total":  counts.Total(),
	})
}

// handleReport streams the ranked applicant workbook
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	b, ok := s.loadBoard(w, r)
	if !ok {
		return
	}
	job, _ := b.Job()

	report := export.Report{
		Job:        job,
		Applicants: b.Ranked(),
		Counts:     b.Counts(),
		Generated:  time.Now(),
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "applicants_"+job.ID+".xlsx"))
	if err := export.WriteExcel(report, w); err != nil {
		log.Printf("Failed to write report for job %s: %v", job.ID, err)
	}
}

// handleShortlist publishes the best matches of a job to Notion
func (s *Server) handleShortlist(w http.ResponseWriter, r *http.Request) {
	if s.publisher == nil {
		s.respondError(w, http.StatusServiceUnavailable, "shortlist publishing is not configured")
		return
	}

	job, shortlist, ok := s.bestMatches(w, r)
	if !ok {
		return
	}

	pageIDs, err := s.publisher.PublishShortlist(r.Context(), job, shortlist)
	if err != nil {
		log.Printf("Shortlist publish for job %s stopped after %d pages: %v", job.ID, len(pageIDs), err)
		s.respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "success",
		"published": len(pageIDs),
		"pages":     pageIDs,
	})
}

// handleInsight asks the language model about the best matches of a job
func (s *Server) handleInsight(w http.ResponseWriter, r *http.Request) {
	if s.summarizer == nil {
		s.respondError(w, http.StatusServiceUnavailable, "insight generation is not configured")
		return
	}

	job, shortlist, ok := s.bestMatches(w, r)
	if !ok {
		return
	}
	if len(shortlist) == 0 {
		s.respondError(w, http.StatusNotFound, "job has no matching applicants")
		return
	}

	summary, err := s.summarizer.Summarize(r.Context(), job, shortlist)
	if err != nil {
		s.respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"job":       job.ID,
		"shortlist": shortlist,
		"summary":   summary,
	})
}

type statusRequest struct {
	Status string `json:"status"`
}

// handleSetStatus moves an applicant to a new pipeline status
func (s *Server) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// A missing status is a malformed request, not a move back to applied.
	if strings.TrimSpace(req.Status) == "" {
		s.respondError(w, http.StatusBadRequest, "status is required")
		return
	}

	status, err := models.ParseStatus(req.Status)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := board.New(s.backend).SetStatus(r.Context(), r.PathValue("id"), status)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, updated)
}

// handleUpload replaces data files on stores that accept uploads
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	uploader, ok := s.backend.(Uploader)
	if !ok {
		s.respondError(w, http.StatusNotImplemented, "the configured store does not accept uploads")
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil { // 32 MB max
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Failed to parse form: %v", err))
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		s.respondError(w, http.StatusBadRequest, "no files uploaded")
		return
	}

	saved := make([]string, 0, len(files))
	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Failed to open uploaded file: %v", err))
			return
		}

		name := filepath.Base(fileHeader.Filename)
		_, err = uploader.SaveUploadedFile(name, file)
		file.Close()
		if err != nil {
			s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Failed to save file %s: %v", name, err))
			return
		}
		log.Printf("Saved file: %s", name)
		saved = append(saved, name)
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"files":  saved,
	})
}

func (s *Server) loadBoard(w http.ResponseWriter, r *http.Request) (*board.Board, bool) {
	b := board.New(s.backend)
	if err := b.Load(r.Context(), r.PathValue("id")); err != nil {
		s.respondStoreError(w, err)
		return nil, false
	}
	return b, true
}

// bestMatches loads a job and returns its best-match view, honouring ?status=
func (s *Server) bestMatches(w http.ResponseWriter, r *http.Request) (models.Job, []models.ScoredApplicant, bool) {
	b, ok := s.loadBoard(w, r)
	if !ok {
		return models.Job{}, nil, false
	}
	job, _ := b.Job()

	status := r.URL.Query().Get("status")
	if status == "" {
		status = pipeline.StatusAll
	}
	return job, b.View(pipeline.Options{Status: status, BestMatch: true}), true
}

// presentOptions reads status, sort and best from the query, defaulting to
// every status ordered newest first.
func presentOptions(r *http.Request) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	q := r.URL.Query()

	if v := q.Get("status"); v != "" {
		opts.Status = v
	}
	if v := q.Get("sort"); v != "" {
		opts.SortKey = v
	}
	if v := q.Get("best"); v != "" {
		best, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("best must be true or false, got %q", v)
		}
		opts.BestMatch = best
	}
	return opts, nil
}

// respondJSON sends a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON response: %v", err)
	}
}

// respondError sends an error response
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondStoreError maps store sentinel errors onto HTTP status codes
func (s *Server) respondStoreError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, store.ErrUnavailable):
		status = http.StatusServiceUnavailable
	}
	s.respondError(w, status, err.Error())
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}
