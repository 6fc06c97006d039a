// Package remote talks to the job portal REST API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/fmuoria/applicant-pipeline/internal/models"
	"github.com/fmuoria/applicant-pipeline/internal/store"
)

// Config holds connection settings for the job portal API
type Config struct {
	BaseURL string
	Token   string // optional bearer token
	Timeout time.Duration
}

// Client is a store.Backend backed by the job portal API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client. When a token is configured every
// request carries it as a bearer token.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	httpClient := &http.Client{Timeout: timeout}
	if cfg.Token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"})
		httpClient = oauth2.NewClient(context.Background(), src)
		httpClient.Timeout = timeout
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
	}
}

// FetchJob retrieves one job posting
func (c *Client) FetchJob(ctx context.Context, jobID string) (models.Job, error) {
	var job models.Job
	if err := c.do(ctx, http.MethodGet, "/api/jobs/"+url.PathEscape(jobID), nil, &job); err != nil {
		return models.Job{}, fmt.Errorf("failed to fetch job %s: %w", jobID, err)
	}
	return job, nil
}

// FetchApplicants retrieves the applicants of one job
func (c *Client) FetchApplicants(ctx context.Context, jobID string) ([]models.Applicant, error) {
	var applicants []models.Applicant
	err := c.do(ctx, http.MethodGet, "/api/applicants/job/"+url.PathEscape(jobID), nil, &applicants)
	if errors.Is(err, store.ErrNotFound) {
		return []models.Applicant{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch applicants for job %s: %w", jobID, err)
	}
	if applicants == nil {
		applicants = []models.Applicant{}
	}
	return applicants, nil
}

// UpdateApplicantStatus asks the API to move an applicant to a new status
func (c *Client) UpdateApplicantStatus(ctx context.Context, applicantID string, status models.Status) (models.Applicant, error) {
	body := struct {
		Status models.Status `json:"status"`
	}{Status: status}

	var updated models.Applicant
	path := "/api/applicants/" + url.PathEscape(applicantID) + "/status"
	if err := c.do(ctx, http.MethodPut, path, body, &updated); err != nil {
		return models.Applicant{}, fmt.Errorf("failed to update status of applicant %s: %w", applicantID, err)
	}
	return updated, nil
}

// ListJobs retrieves every job posting
func (c *Client) ListJobs(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	if err := c.do(ctx, http.MethodGet, "/api/jobs", nil, &jobs); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// ListApplicants retrieves every applicant across all jobs
func (c *Client) ListApplicants(ctx context.Context) ([]models.Applicant, error) {
	var applicants []models.Applicant
	if err := c.do(ctx, http.MethodGet, "/api/applicants", nil, &applicants); err != nil {
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}
	return applicants, nil
}

// do sends a JSON request and decodes a JSON response into out, mapping
// HTTP failures onto the store sentinel errors.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	detail := fmt.Sprintf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", store.ErrNotFound, detail)
	case resp.StatusCode == http.StatusConflict,
		resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", store.ErrConflict, detail)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: %s", store.ErrUnavailable, detail)
	default:
		return errors.New(detail)
	}
}
