package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"teabloom-be/internal/logger"

	"go.uber.org/zap"
)

// Client is a thin client for a collection-oriented record store:
// CRUD per collection plus a realtime event subscription. It is the
// leaf dependency of every repository in this service.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ----------------- Auth -----------------

type AuthResult struct {
	Token  string          `json:"token"`
	Record json.RawMessage `json:"record"`
}

// AuthWithPassword exchanges credentials for a bearer token issued by the
// record store. The token is kept on the client for subsequent requests.
func (c *Client) AuthWithPassword(ctx context.Context, collection, identity, password string) (*AuthResult, error) {
	var res AuthResult
	path := fmt.Sprintf("/api/collections/%s/auth-with-password", collection)
	body := map[string]string{"identity": identity, "password": password}

	if err := c.do(ctx, http.MethodPost, path, nil, body, &res, false); err != nil {
		return nil, err
	}

	c.SetToken(res.Token)
	return &res, nil
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// ----------------- CRUD -----------------

type ListOptions struct {
	Filter  string
	Sort    string
	Page    int
	PerPage int
}

type listEnvelope struct {
	Page       int             `json:"page"`
	PerPage    int             `json:"perPage"`
	TotalItems int             `json:"totalItems"`
	Items      json.RawMessage `json:"items"`
}

type requestConfig struct {
	skipAuth bool
}

type RequestOption func(*requestConfig)

// WithoutAuth sends the request without a bearer token. Used as the raw
// fallback when an authenticated write is rejected by collection rules.
func WithoutAuth() RequestOption {
	return func(rc *requestConfig) { rc.skipAuth = true }
}

func (c *Client) Create(ctx context.Context, collection string, body, out any, opts ...RequestOption) error {
	rc := buildConfig(opts)
	path := fmt.Sprintf("/api/collections/%s/records", collection)
	return c.do(ctx, http.MethodPost, path, nil, body, out, !rc.skipAuth)
}

func (c *Client) Get(ctx context.Context, collection, id string, out any) error {
	path := fmt.Sprintf("/api/collections/%s/records/%s", collection, url.PathEscape(id))
	return c.do(ctx, http.MethodGet, path, nil, nil, out, true)
}

func (c *Client) Update(ctx context.Context, collection, id string, body, out any, opts ...RequestOption) error {
	rc := buildConfig(opts)
	path := fmt.Sprintf("/api/collections/%s/records/%s", collection, url.PathEscape(id))
	return c.do(ctx, http.MethodPatch, path, nil, body, out, !rc.skipAuth)
}

func (c *Client) Delete(ctx context.Context, collection, id string) error {
	path := fmt.Sprintf("/api/collections/%s/records/%s", collection, url.PathEscape(id))
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, true)
}

// List fetches a page of records and decodes them into items, which must be
// a pointer to a slice. It returns the store-reported total item count.
func (c *Client) List(ctx context.Context, collection string, opts ListOptions, items any) (int, error) {
	query := url.Values{}
	if opts.Filter != "" {
		query.Set("filter", opts.Filter)
	}
	if opts.Sort != "" {
		query.Set("sort", opts.Sort)
	}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PerPage > 0 {
		query.Set("perPage", strconv.Itoa(opts.PerPage))
	}

	var env listEnvelope
	path := fmt.Sprintf("/api/collections/%s/records", collection)
	if err := c.do(ctx, http.MethodGet, path, query, nil, &env, true); err != nil {
		return 0, err
	}

	if items != nil && len(env.Items) > 0 {
		if err := json.Unmarshal(env.Items, items); err != nil {
			return 0, fmt.Errorf("decode %s list: %w", collection, err)
		}
	}

	return env.TotalItems, nil
}

// ----------------- Transport -----------------

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, withAuth bool) error {
	log := logger.FromCtx(ctx).With(
		zap.String("method", method),
		zap.String("path", path),
	)

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withAuth {
		if token := c.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("record store request failed", zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read record store response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := apiMessage(respBody)
		log.Warn("record store returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg),
		)
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode record store response: %w", err)
		}
	}

	return nil
}

func apiMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return string(body)
}

func buildConfig(opts []RequestOption) requestConfig {
	var rc requestConfig
	for _, opt := range opts {
		opt(&rc)
	}
	return rc
}
