// Package client provides a typed HTTP client for the jobradar v1 API
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jobradar/jobradar/internal/db/models"
	"github.com/jobradar/jobradar/internal/types"
)

// Client defaults
const (
	DefaultBaseURL = "http://localhost:8080"
	DefaultTimeout = 60 * time.Second
)

// Options configures the API client
type Options struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultOptions returns client options with default values
func DefaultOptions() *Options {
	return &Options{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// Client is a typed HTTP client for the v1 API
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a new API client
func New(opts *Options) (*Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", opts.BaseURL, err)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: opts.BaseURL,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// envelope mirrors the API response wrapper with the payload left raw
type envelope struct {
	Slug  types.Slug      `json:"slug"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("unexpected response (%d): %s", resp.StatusCode, string(raw))
	}
	if env.Slug != types.SuccessSlug {
		return fmt.Errorf("%s: %s", env.Slug, env.Error)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response payload: %w", err)
		}
	}
	return nil
}

// JobListParams are the query parameters for listing jobs
type JobListParams struct {
	Platform       string
	Remote         *bool
	Seniority      string
	EmploymentType string
	ActiveOnly     *bool
	Page           int
	Limit          int
}

func (p *JobListParams) encode() string {
	if p == nil {
		return ""
	}
	q := url.Values{}
	if p.Platform != "" {
		q.Set("platform", p.Platform)
	}
	if p.Remote != nil {
		q.Set("remote", strconv.FormatBool(*p.Remote))
	}
	if p.Seniority != "" {
		q.Set("seniority", p.Seniority)
	}
	if p.EmploymentType != "" {
		q.Set("employment_type", p.EmploymentType)
	}
	if p.ActiveOnly != nil {
		q.Set("active_only", strconv.FormatBool(*p.ActiveOnly))
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ListJobs returns a filtered, paginated job listing
func (c *Client) ListJobs(ctx context.Context, params *JobListParams) (*types.ListResponse[models.Job], error) {
	var out types.ListResponse[models.Job]
	if err := c.do(ctx, http.MethodGet, "/api/v1/jobs"+params.encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RunAll triggers a run over every enabled pair
func (c *Client) RunAll(ctx context.Context) (*types.RunSummary, error) {
	var out types.RunSummary
	if err := c.do(ctx, http.MethodPost, "/api/v1/scrape/run", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RunPlatform triggers a run scoped to one job board
func (c *Client) RunPlatform(ctx context.Context, platform string) (*types.RunSummary, error) {
	var out types.RunSummary
	if err := c.do(ctx, http.MethodPost, "/api/v1/scrape/run/"+url.PathEscape(platform), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Stats returns per-board pair health and job counts
func (c *Client) Stats(ctx context.Context) (*types.ScrapeStats, error) {
	var out types.ScrapeStats
	if err := c.do(ctx, http.MethodGet, "/api/v1/scrape/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSchedule returns the active cron schedule
func (c *Client) GetSchedule(ctx context.Context) (*types.CronConfigResponse, error) {
	var out types.CronConfigResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/schedule", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSchedule hot-swaps the recurring schedule
func (c *Client) UpdateSchedule(ctx context.Context, expression string) (*types.CronConfigResponse, error) {
	var out types.CronConfigResponse
	body := map[string]string{"expression": expression}
	if err := c.do(ctx, http.MethodPut, "/api/v1/schedule", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ScheduleSuggestions returns the advisory list of common schedules
func (c *Client) ScheduleSuggestions(ctx context.Context) ([]types.SuggestedExpression, error) {
	var out []types.SuggestedExpression
	if err := c.do(ctx, http.MethodGet, "/api/v1/schedule/suggestions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPairs returns the configured scrape pairs
func (c *Client) ListPairs(ctx context.Context) (*types.ListResponse[models.JobBoardCompany], error) {
	var out types.ListResponse[models.JobBoardCompany]
	if err := c.do(ctx, http.MethodGet, "/api/v1/pairs", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePair creates one scrape pair
func (c *Client) CreatePair(ctx context.Context, pair *models.JobBoardCompany) (*models.JobBoardCompany, error) {
	var out models.JobBoardCompany
	if err := c.do(ctx, http.MethodPost, "/api/v1/pairs", pair, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TogglePair flips a pair's enabled flag
func (c *Client) TogglePair(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/pairs/%d/toggle", id), nil, nil)
}
