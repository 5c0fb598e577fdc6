package suppliers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"stayflow/config"
)

// httpClient performs one HTTP round-trip per operation against a supplier.
type httpClient struct {
	name    string
	baseURL string
	apiKey  string
	secret  string
	hc      *http.Client
	timeout time.Duration
}

// NewHTTPClient builds a supplier client from credentials. The timeout applies
// per call, so a hung upstream cannot stall a caller's retry budget.
func NewHTTPClient(cfg config.SupplierConfig, timeout time.Duration) Client {
	return &httpClient{
		name:    cfg.Name,
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		secret:  cfg.Secret,
		timeout: timeout,
		hc: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     30 * time.Second,
			},
		},
	}
}

func (c *httpClient) Name() string { return c.name }

// IsConfigured reports whether credentials are loaded. Callers must check this
// before invoking any operation.
func (c *httpClient) IsConfigured() bool {
	return c.baseURL != "" && c.secret != ""
}

func (c *httpClient) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	var out SearchResponse
	if err := c.post(ctx, "search", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) PreBook(ctx context.Context, req PreBookRequest) (*PreBookResponse, error) {
	var out PreBookResponse
	if err := c.post(ctx, "prebook", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) Book(ctx context.Context, req BookRequest) (*BookResponse, error) {
	var out BookResponse
	if err := c.post(ctx, "book", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) Cancel(ctx context.Context, req CancelRequest) (*CancelResponse, error) {
	var out CancelResponse
	if err := c.post(ctx, "cancel", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// post sends one JSON request and decodes the 2xx response into out.
// Every non-2xx response becomes a StatusError with the raw body attached.
func (c *httpClient) post(ctx context.Context, op string, payload any, out any) error {
	if !c.IsConfigured() {
		return fmt.Errorf("%s %s: %w", c.name, op, ErrNotConfigured)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s %s: marshal request: %w", c.name, op, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.baseURL+"/"+op, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s %s: build request: %w", c.name, op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.secret)

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", c.name, op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", c.name, op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Provider: c.name,
			Op:       op,
			Status:   resp.StatusCode,
			Body:     string(raw),
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", c.name, op, err)
	}
	return nil
}
