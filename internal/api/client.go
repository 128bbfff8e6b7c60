package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/syrianarchive/archivectl/internal/cache"
	"github.com/syrianarchive/archivectl/internal/session"
)

// Client is the token-refresh-aware HTTP client for the archive API.
//
// Every call attaches a bearer token when one is stored. On a 401 the client
// refreshes the access token exactly once and retries the original request
// exactly once; a second 401 surfaces as an authentication error. Refreshes
// are single-flight: concurrent 401s share one refresh call.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	store        *session.Store
	limiter      *EndpointLimiter
	respCache    cache.Cache
	cacheTTL     time.Duration
	userAgent    string
	maxBodyBytes int64

	refreshMu sync.Mutex
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the transport timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithMaxBodyBytes caps how much of a response body is read.
func WithMaxBodyBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBodyBytes = n
		}
	}
}

// WithRateLimiter enables local reject-not-queue rate limiting per endpoint.
func WithRateLimiter(l *EndpointLimiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithCache enables caching of GET responses with the given TTL.
func WithCache(rc cache.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.respCache = rc
		c.cacheTTL = ttl
	}
}

// WithInsecureTLS skips TLS certificate verification.
func WithInsecureTLS() Option {
	return func(c *Client) {
		c.httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
}

// NewClient creates a client rooted at baseURL, reading and updating tokens
// through the given session store.
func NewClient(baseURL string, store *session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		store:        store,
		userAgent:    "archivectl/0.1 (+https://github.com/syrianarchive/archivectl)",
		maxBodyBytes: 5_000_000,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store exposes the session store backing this client.
func (c *Client) Store() *session.Store { return c.store }

// request describes one API call.
type request struct {
	Method   string
	Endpoint string // path starting with "/", trailing slash included
	Params   url.Values
	Body     interface{} // marshaled to JSON when non-nil
	Out      interface{} // decoded from a 2xx JSON response when non-nil

	// Unauthenticated marks calls that never carry a bearer token and never
	// trigger a refresh (login, token refresh itself).
	Unauthenticated bool

	// NoCache bypasses the GET response cache for this call.
	NoCache bool

	// SkipLimit exempts the call from the local rate limiter. Only the token
	// refresh uses this; a throttled refresh would break the 401 retry cycle.
	SkipLimit bool
}

// Get issues an authenticated GET and decodes the response into out.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	return c.do(ctx, request{Method: http.MethodGet, Endpoint: endpoint, Params: params, Out: out})
}

// GetFresh is Get with the response cache bypassed.
func (c *Client) GetFresh(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	return c.do(ctx, request{Method: http.MethodGet, Endpoint: endpoint, Params: params, Out: out, NoCache: true})
}

// Post issues an authenticated POST.
func (c *Client) Post(ctx context.Context, endpoint string, body, out interface{}) error {
	return c.do(ctx, request{Method: http.MethodPost, Endpoint: endpoint, Body: body, Out: out})
}

// PostPublic issues an unauthenticated POST (login, token refresh).
func (c *Client) PostPublic(ctx context.Context, endpoint string, body, out interface{}) error {
	return c.do(ctx, request{Method: http.MethodPost, Endpoint: endpoint, Body: body, Out: out, Unauthenticated: true})
}

// Put issues an authenticated PUT.
func (c *Client) Put(ctx context.Context, endpoint string, body, out interface{}) error {
	return c.do(ctx, request{Method: http.MethodPut, Endpoint: endpoint, Body: body, Out: out})
}

// Patch issues an authenticated PATCH.
func (c *Client) Patch(ctx context.Context, endpoint string, body, out interface{}) error {
	return c.do(ctx, request{Method: http.MethodPatch, Endpoint: endpoint, Body: body, Out: out})
}

// Delete issues an authenticated DELETE and reports success as a boolean,
// swallowing the error per the documented contract for deletes.
func (c *Client) Delete(ctx context.Context, endpoint string) bool {
	return c.do(ctx, request{Method: http.MethodDelete, Endpoint: endpoint}) == nil
}

// do runs one request with rate limiting, caching and the single
// refresh-then-retry cycle on 401.
func (c *Client) do(ctx context.Context, req request) error {
	if c.limiter != nil && !req.SkipLimit && !c.limiter.Allow(req.Method+" "+req.Endpoint) {
		return &APIError{Kind: KindRateLimited, Message: fmt.Sprintf("rate limit: %s %s rejected locally", req.Method, req.Endpoint)}
	}

	fullURL := c.baseURL + req.Endpoint
	if len(req.Params) > 0 {
		fullURL += "?" + req.Params.Encode()
	}

	useCache := c.respCache != nil && req.Method == http.MethodGet && !req.NoCache && !req.Unauthenticated
	var cacheKey string
	if useCache {
		cacheKey = cache.Key(fullURL)
		if data, found := c.respCache.Get(cacheKey); found {
			if req.Out == nil {
				return nil
			}
			return json.Unmarshal(data, req.Out)
		}
	}

	var payload []byte
	if req.Body != nil {
		var err error
		payload, err = json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
	}

	access := ""
	if !req.Unauthenticated {
		access = c.store.Access()
	}

	status, body, err := c.send(ctx, req.Method, fullURL, payload, access)
	if err != nil {
		return err
	}

	// Exactly one refresh and one retry on 401; a second 401 propagates.
	if status == http.StatusUnauthorized && !req.Unauthenticated {
		if refreshErr := c.refreshAccess(ctx, access); refreshErr != nil {
			return refreshErr
		}

		status, body, err = c.send(ctx, req.Method, fullURL, payload, c.store.Access())
		if err != nil {
			return err
		}
		if status == http.StatusUnauthorized {
			return &APIError{
				Kind:    KindAuthentication,
				Status:  status,
				Message: "still unauthorized after token refresh",
				Body:    string(body),
			}
		}
	}

	if status < 200 || status >= 300 {
		return statusError(status, body)
	}

	if useCache {
		_ = c.respCache.Set(cacheKey, body, c.cacheTTL)
	}

	if req.Out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, req.Out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// send performs a single HTTP round trip. Transport failures come back as
// network errors and are never retried.
func (c *Client) send(ctx context.Context, method, fullURL string, payload []byte, access string) (int, []byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if access != "" {
		httpReq.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, nil, networkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes))
	if err != nil {
		return 0, nil, networkError(err)
	}

	return resp.StatusCode, body, nil
}

// refreshAccess exchanges the stored refresh token for a new access token.
// staleAccess is the token that just failed; if another goroutine already
// replaced it while we waited on the mutex, the refresh is skipped and its
// result reused. The refresh token itself is not rotated. On any failure the
// stored tokens are left untouched.
func (c *Client) refreshAccess(ctx context.Context, staleAccess string) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if current := c.store.Access(); current != "" && current != staleAccess {
		return nil
	}

	refresh := c.store.Refresh()
	if refresh == "" {
		return authenticationError("no refresh token stored")
	}

	var out struct {
		Access string `json:"access"`
	}
	err := c.do(ctx, request{
		Method:          http.MethodPost,
		Endpoint:        "/token/refresh/",
		Body:            map[string]string{"refresh": refresh},
		Out:             &out,
		Unauthenticated: true,
		SkipLimit:       true,
	})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Kind != KindNetwork {
			return &APIError{
				Kind:    KindAuthentication,
				Status:  apiErr.Status,
				Message: "token refresh rejected: " + apiErr.Message,
				Body:    apiErr.Body,
				cause:   apiErr,
			}
		}
		return fmt.Errorf("token refresh: %w", err)
	}
	if out.Access == "" {
		return authenticationError("token refresh returned no access token")
	}

	if err := c.store.SetAccess(out.Access); err != nil {
		return fmt.Errorf("store refreshed token: %w", err)
	}
	return nil
}
