// ABOUTME: Public Go SDK for the parity analysis API
// ABOUTME: Client with functional options, retrying transport, and skills/context/engine sub-APIs

package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mailru/easyjson"

	httpsec "github.com/paritydotcx/paritycx/internal/http"
	"github.com/paritydotcx/paritycx/pkg/sdk/internal/httputil"
)

// Defaults and API constants.
const (
	DefaultBaseURL    = "https://api.parity.cx"
	DefaultTimeout    = 30 * time.Second
	DefaultRetries    = 3
	DefaultRetryDelay = time.Second

	APIVersion = "v1"
	UserAgent  = "parity-sdk-go/" + APIVersion
)

// API endpoints.
const (
	EndpointAnalyze  = "/" + APIVersion + "/analyze"
	EndpointSkills   = "/" + APIVersion + "/skills"
	EndpointContext  = "/" + APIVersion + "/context"
	EndpointPrograms = "/" + APIVersion + "/programs"
	EndpointHealth   = "/" + APIVersion + "/health"
)

// Config is the resolved, read-only client configuration.
type Config struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	Retries    int
	RetryDelay time.Duration
}

// Client talks to the parity API.
type Client struct {
	cfg  Config
	http *httputil.Client

	// Skills resolves and caches skill definitions.
	Skills *SkillsAPI
	// Context queries the vulnerability knowledge base.
	Context *ContextAPI

	engine *Engine
}

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	Config
	httpClient *http.Client
	sleeper    httputil.Sleeper
}

// WithAPIKey sets the bearer token sent on every request.
func WithAPIKey(key string) Option {
	return func(c *clientConfig) { c.APIKey = key }
}

// WithBaseURL sets the API base URL.
func WithBaseURL(u string) Option {
	return func(c *clientConfig) { c.BaseURL = u }
}

// WithTimeout bounds each HTTP attempt.
func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) { c.Timeout = d }
}

// WithRetries sets how many times a 5xx response is retried.
func WithRetries(n int) Option {
	return func(c *clientConfig) { c.Retries = n }
}

// WithRetryDelay sets the delay before the first retry; later retries double it.
func WithRetryDelay(d time.Duration) Option {
	return func(c *clientConfig) { c.RetryDelay = d }
}

// WithHTTPClient replaces the underlying HTTP client (tests, proxies).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientConfig) { c.httpClient = hc }
}

// New creates a Client. An API key is required.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{Config: Config{
		BaseURL:    DefaultBaseURL,
		Timeout:    DefaultTimeout,
		Retries:    DefaultRetries,
		RetryDelay: DefaultRetryDelay,
	}}
	for _, o := range opts {
		o(cfg)
	}

	if cfg.APIKey == "" {
		return nil, &ValidationError{Message: "API key is required"}
	}
	base, err := httputil.NormalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	cfg.BaseURL = base
	if cfg.httpClient == nil {
		cfg.httpClient = httpsec.SecureHTTPClient(cfg.Timeout)
	}

	httpOpts := []httputil.Option{
		httputil.WithHTTPClient(cfg.httpClient),
		httputil.WithRetries(cfg.Retries),
		httputil.WithBaseDelay(cfg.RetryDelay),
		httputil.WithHeader("Authorization", "Bearer "+cfg.APIKey),
		httputil.WithHeader("X-Parity-SDK-Version", APIVersion),
		httputil.WithHeader("User-Agent", UserAgent),
		httputil.WithHeader("Accept", "application/json"),
	}
	if cfg.sleeper != nil {
		httpOpts = append(httpOpts, httputil.WithSleeper(cfg.sleeper))
	}

	c := &Client{
		cfg:  cfg.Config,
		http: httputil.NewClient(base, httpOpts...),
	}
	c.Skills = newSkillsAPI(c)
	c.Context = newContextAPI(c)
	c.engine = &Engine{client: c}
	return c, nil
}

// Config returns a copy of the resolved configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// Engine returns the client-side analysis engine.
func (c *Client) Engine() *Engine {
	return c.engine
}

// Analyze reads, validates and submits a program, then applies the
// configured gates. See Engine.Analyze.
func (c *Client) Analyze(ctx context.Context, opts AnalyzeOptions) (*AnalysisResult, error) {
	return c.engine.Analyze(ctx, opts)
}

// GetProgram fetches a registered program by content hash.
func (c *Client) GetProgram(ctx context.Context, hash string) (*Program, error) {
	var p Program
	if err := c.getJSON(ctx, EndpointPrograms+"/"+url.PathEscape(hash), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPrograms fetches one page of registered programs.
func (c *Client) ListPrograms(ctx context.Context, page, limit int) (*ProgramList, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var list ProgramList
	if err := c.getJSON(ctx, EndpointPrograms, q, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// RegisterProgram registers a program hash with the registry.
func (c *Client) RegisterProgram(ctx context.Context, hash, framework, metadataURI string) (*Program, error) {
	body := map[string]string{"programHash": hash, "framework": framework, "metadataUri": metadataURI}
	var p Program
	if err := c.postJSON(ctx, EndpointPrograms, body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// RegistryStats fetches aggregate registry statistics.
func (c *Client) RegistryStats(ctx context.Context) (*RegistryStats, error) {
	var st RegistryStats
	if err := c.getJSON(ctx, EndpointPrograms+"/stats", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Health fetches the service health report.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.getJSON(ctx, EndpointHealth, nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, v any) error {
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return c.do(ctx, http.MethodGet, path, nil, v)
}

func (c *Client) postJSON(ctx context.Context, path string, body, v any) error {
	data, err := jsonBody(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, data, v)
}

func jsonBody(body any) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}
	return data, nil
}

// do sends a request and decodes a 2xx JSON body into v. Other statuses
// become *APIError.
func (c *Client) do(ctx context.Context, method, path string, body []byte, v any) error {
	raw, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	if u, ok := v.(easyjson.Unmarshaler); ok {
		if err := easyjson.Unmarshal(raw, u); err != nil {
			return fmt.Errorf("decoding %s response: %w", path, err)
		}
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

// send performs the request and returns the body of a 2xx response.
func (c *Client) send(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	resp, err := c.http.Do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, raw)
	}
	return raw, nil
}

// IsNotFound reports whether err is an API 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
