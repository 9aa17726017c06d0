// API service for making raw HTTP requests to the roster service
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/emx/internal/shared"
	"golang.org/x/time/rate"
)

const defaultBaseURL string = "http://localhost:5000"

// APIService performs raw HTTP requests against the roster service.
//
// Each request is retried up to retries times when it fails to send or comes back with a non-2xx status.
type APIService struct {
	baseURL    string
	httpClient *http.Client
	retries    int
	limiter    *rate.Limiter
	logger     *log.Logger
}

// APIOption configures an [APIService].
type APIOption func(*APIService)

// WithRetries sets how many times a failed request is re-sent.
func WithRetries(n int) APIOption {
	return func(a *APIService) {
		if n >= 0 {
			a.retries = n
		}
	}
}

// WithRateLimit caps outgoing requests per second; zero leaves requests unlimited.
func WithRateLimit(rps float64) APIOption {
	return func(a *APIService) {
		if rps > 0 {
			a.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithLogger sets the logger used for retry and failure reporting.
func WithLogger(l *log.Logger) APIOption {
	return func(a *APIService) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAPIService creates a new API service instance for the roster service.
func NewAPIService(baseURL string, client *http.Client, opts ...APIOption) *APIService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	a := &APIService{
		baseURL:    baseURL,
		httpClient: client,
		retries:    1,
		logger:     shared.DiscardLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// OK reports whether the status is 2xx.
func (r *APIResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Get performs a GET request to the specified path and returns the raw response.
func (a *APIService) Get(ctx context.Context, path string) (*APIResponse, error) {
	return a.do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with the given JSON data and returns the raw response.
func (a *APIService) Post(ctx context.Context, path string, data []byte) (*APIResponse, error) {
	return a.do(ctx, http.MethodPost, path, data)
}

// do sends the request, re-sending it after a failure until the retry budget is spent.
//
// The last response is returned even when its status is not 2xx; only send failures produce an error.
func (a *APIService) do(ctx context.Context, method, path string, data []byte) (*APIResponse, error) {
	var (
		resp *APIResponse
		err  error
	)

	for attempt := 0; attempt <= a.retries; attempt++ {
		if attempt > 0 {
			a.logger.Warn("retrying request", "method", method, "path", path, "attempt", attempt, "error", err)
		}

		resp, err = a.send(ctx, method, path, data)
		if err == nil && resp.OK() {
			return resp, nil
		}
		if err == nil {
			err = fmt.Errorf("status %d", resp.StatusCode)
		}
		if ctx.Err() != nil {
			break
		}
	}

	if resp != nil {
		return resp, nil
	}
	return nil, err
}

func (a *APIService) send(ctx context.Context, method, path string, data []byte) (*APIResponse, error) {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       raw,
	}

	var jsonData any
	if err := json.Unmarshal(raw, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}
