package report

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/ykomori/riskfuse/internal/model"
	"github.com/ykomori/riskfuse/internal/worker"
)

// Client fetches assessment reports from the backend's report endpoint
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	maxBytes   int64
	limiter    *worker.Limiter
}

// NewClient creates a report client for the given backend
func NewClient(cfg model.HTTPConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		maxBytes:   cfg.MaxBodyBytes,
		limiter:    worker.NewLimiter(cfg.RequestsPerSecond, cfg.Burst),
	}
}

// FetchAssessment retrieves the final report for a project and returns
// its risk section.
func (c *Client) FetchAssessment(ctx context.Context, projectID string) (*model.Assessment, error) {
	endpoint, err := url.JoinPath(c.baseURL, "projects", projectID, "report")
	if err != nil {
		return nil, fmt.Errorf("build report URL: %w", err)
	}

	if err := c.limiter.Wait(ctx, endpoint); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return Parse(body)
}
