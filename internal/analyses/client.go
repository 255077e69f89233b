package analyses

import (
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
	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 512
)

// HTTPClient fetches analyses from the backend REST API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// ClientOptions configures NewHTTPClient.
type ClientOptions struct {
	// Token is sent as a bearer token when set.
	Token   string
	Timeout time.Duration
	// RPS caps outgoing requests per second. Zero or less disables pacing.
	RPS float64
}

// NewHTTPClient constructs a client for baseURL, e.g. https://api.example.com/api/v1.
func NewHTTPClient(baseURL string, opts ClientOptions) (*HTTPClient, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := &http.Client{}
	if token := strings.TrimSpace(opts.Token); token != "" {
		httpClient = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: token,
			TokenType:   "Bearer",
		}))
	}
	httpClient.Timeout = timeout

	limit := rate.Inf
	burst := 1
	if opts.RPS > 0 {
		limit = rate.Limit(opts.RPS)
		burst = max(1, int(opts.RPS))
	}

	return &HTTPClient{
		baseURL:    base,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, burst),
	}, nil
}

// GetByID fetches one analysis. A 404 maps to ErrNotFound.
func (c *HTTPClient) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	id := strings.TrimSpace(analysisID)
	if id == "" {
		return Analysis{}, ErrNotFound
	}
	var out Analysis
	if err := c.getJSON(ctx, "/analyses/"+url.PathEscape(id), &out); err != nil {
		return Analysis{}, err
	}
	if out.ID == "" {
		out.ID = id
	}
	return out, nil
}

// Latest fetches the most recent analysis. A 404, a null body or a record
// without an id all mean none exist yet.
func (c *HTTPClient) Latest(ctx context.Context) (*Analysis, error) {
	var out *Analysis
	if err := c.getJSON(ctx, "/analyses/latest", &out); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if out == nil || out.ID == "" {
		return nil, nil
	}
	return out, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, dst any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return fmt.Errorf("analysis backend timeout: %w", err)
		}
		return fmt.Errorf("analysis backend request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("analysis response parse: %w", err)
	}
	return nil
}

var _ Fetcher = (*HTTPClient)(nil)
