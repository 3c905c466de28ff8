// Package mediawiki is a minimal MediaWiki Action API client covering
// the modules a Wikibase patch run needs: session management, entity
// lookup, entity editing and page text retrieval.
package mediawiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"
)

// maxResponseSize limits API response bodies to prevent memory exhaustion.
const maxResponseSize = 10 * 1024 * 1024 // 10MB

// Defaults for a production Wikidata client.
const (
	DefaultEndpoint  = "https://www.wikidata.org/w/api.php"
	DefaultUserAgent = "wikipatch/1.0 (https://github.com/c360studio/wikipatch)"

	// defaultMaxLag asks the API to reject writes while replication lag
	// exceeds this many seconds.
	// https://www.mediawiki.org/wiki/Manual:Maxlag_parameter
	defaultMaxLag = 5

	defaultMaxLagWait  = 5 * time.Second
	defaultEditRetries = 5
)

// APIError is an error envelope returned by the Action API.
type APIError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Info)
}

// Client talks to one MediaWiki Action API endpoint. Session cookies
// live in the HTTP client's cookie jar; the CSRF token and credentials
// are kept for transparent re-login when a bot session expires.
type Client struct {
	endpoint    string
	userAgent   string
	httpClient  *http.Client
	logger      *slog.Logger
	maxLag      int
	maxLagWait  time.Duration
	editRetries int

	mu        sync.Mutex
	csrfToken string
	username  string
	password  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. A cookie jar is installed
// if the client has none.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(client *Client) {
		client.userAgent = ua
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(client *Client) {
		client.logger = logger
	}
}

// WithEditRetries sets how many attempts an edit makes before giving up.
func WithEditRetries(n int) Option {
	return func(client *Client) {
		client.editRetries = n
	}
}

// WithMaxLagWait sets how long to wait before retrying a lagged edit.
func WithMaxLagWait(d time.Duration) Option {
	return func(client *Client) {
		client.maxLagWait = d
	}
}

// NewClient creates a client for the given API endpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:    endpoint,
		userAgent:   DefaultUserAgent,
		logger:      slog.Default(),
		maxLag:      defaultMaxLag,
		maxLagWait:  defaultMaxLagWait,
		editRetries: defaultEditRetries,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient.Jar == nil {
		jar, _ := cookiejar.New(nil)
		c.httpClient.Jar = jar
	}
	return c
}

// do performs one API call and decodes the response into out. API-level
// errors decode into an *APIError; module warnings are logged.
func (c *Client) do(ctx context.Context, method, action string, params url.Values, out any) error {
	params.Set("action", action)
	params.Set("format", "json")
	params.Set("maxlag", fmt.Sprint(c.maxLag))

	var req *http.Request
	var err error
	switch method {
	case http.MethodGet:
		req, err = http.NewRequestWithContext(ctx, method, c.endpoint+"?"+params.Encode(), nil)
	case http.MethodPost:
		req, err = http.NewRequestWithContext(ctx, method, c.endpoint, strings.NewReader(params.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	default:
		return fmt.Errorf("unsupported method %q", method)
	}
	if err != nil {
		return fmt.Errorf("building %s request: %w", action, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", action, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("reading %s response: %w", action, err)
	}

	var envelope struct {
		Error    *APIError                  `json:"error"`
		Warnings map[string]json.RawMessage `json:"warnings"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("decoding %s response: %w", action, err)
	}
	if envelope.Error != nil {
		return envelope.Error
	}
	for module, warning := range envelope.Warnings {
		c.logger.Warn("API warning", "module", module, "warning", string(warning))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", action, err)
	}
	return nil
}

// token fetches a fresh token of the given type ("login" or "csrf").
func (c *Client) token(ctx context.Context, tokenType string) (string, error) {
	params := url.Values{}
	params.Set("meta", "tokens")
	params.Set("type", tokenType)

	var resp struct {
		Query struct {
			Tokens map[string]string `json:"tokens"`
		} `json:"query"`
	}
	if err := c.do(ctx, http.MethodGet, "query", params, &resp); err != nil {
		return "", err
	}
	token, ok := resp.Query.Tokens[tokenType+"token"]
	if !ok || token == "" {
		return "", fmt.Errorf("no %s token in response", tokenType)
	}
	return token, nil
}

// Login authenticates a bot account and stores the session's CSRF
// token. Credentials are retained so an expired session can re-login
// mid-run.
func (c *Client) Login(ctx context.Context, username, password string) error {
	c.mu.Lock()
	c.username = username
	c.password = password
	c.mu.Unlock()
	return c.login(ctx)
}

func (c *Client) login(ctx context.Context) error {
	loginToken, err := c.token(ctx, "login")
	if err != nil {
		return fmt.Errorf("fetching login token: %w", err)
	}

	c.mu.Lock()
	params := url.Values{}
	params.Set("lgname", c.username)
	params.Set("lgpassword", c.password)
	params.Set("lgtoken", loginToken)
	c.mu.Unlock()

	var resp struct {
		Login struct {
			Result string `json:"result"`
			Reason string `json:"reason"`
		} `json:"login"`
	}
	if err := c.do(ctx, http.MethodPost, "login", params, &resp); err != nil {
		return fmt.Errorf("logging in: %w", err)
	}
	if resp.Login.Result != "Success" {
		return fmt.Errorf("login failed: %s", resp.Login.Reason)
	}

	csrfToken, err := c.token(ctx, "csrf")
	if err != nil {
		return fmt.Errorf("fetching csrf token: %w", err)
	}
	c.mu.Lock()
	c.csrfToken = csrfToken
	c.mu.Unlock()
	return nil
}

// Logout invalidates the current session.
func (c *Client) Logout(ctx context.Context) error {
	c.mu.Lock()
	token := c.csrfToken
	c.mu.Unlock()

	params := url.Values{}
	params.Set("token", token)
	if err := c.do(ctx, http.MethodPost, "logout", params, nil); err != nil {
		return fmt.Errorf("logging out: %w", err)
	}
	return nil
}

// sleep waits for d or until the context is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
