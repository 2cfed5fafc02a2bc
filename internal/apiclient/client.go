package apiclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Handler sends a request one step further down the interceptor chain
type Handler func(req *http.Request) (*http.Response, error)

// Interceptor sees every outgoing request and the result coming back.
// It may replace the request (clone + headers) or the error before returning.
type Interceptor func(req *http.Request, next Handler) (*http.Response, error)

// Config holds what the client needs to reach the remote API
type Config struct {
	BaseURL string
	// Transport overrides the outbound round tripper, mainly for tests
	Transport http.RoundTripper
}

// Client issues JSON requests against a fixed base URL.
// One attempt per call: no retry and no client-side timeout, the caller's context decides.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	interceptors []Interceptor
}

// New creates a Client for cfg.BaseURL
func New(cfg Config) *Client {
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(transport),
		},
	}
}

// Use appends interceptors. The first registered one runs outermost.
func (c *Client) Use(interceptors ...Interceptor) {
	c.interceptors = append(c.interceptors, interceptors...)
}

// FullURL returns the absolute URL of an endpoint
func (c *Client) FullURL(endpoint string) string {
	return c.baseURL + endpoint
}

// Get decodes the JSON response of GET endpoint?params into out (out may be nil)
func (c *Client) Get(ctx context.Context, endpoint string, params Params, out interface{}) error {
	return c.call(ctx, http.MethodGet, endpoint, params, nil, out)
}

func (c *Client) Post(ctx context.Context, endpoint string, body interface{}, params Params, out interface{}) error {
	return c.call(ctx, http.MethodPost, endpoint, params, body, out)
}

func (c *Client) Put(ctx context.Context, endpoint string, body interface{}, params Params, out interface{}) error {
	return c.call(ctx, http.MethodPut, endpoint, params, body, out)
}

func (c *Client) Patch(ctx context.Context, endpoint string, body interface{}, params Params, out interface{}) error {
	return c.call(ctx, http.MethodPatch, endpoint, params, body, out)
}

func (c *Client) Delete(ctx context.Context, endpoint string, params Params, out interface{}) error {
	return c.call(ctx, http.MethodDelete, endpoint, params, nil, out)
}

// GetFile fetches a binary payload (e.g. a PDF export) and its content type
func (c *Client) GetFile(ctx context.Context, endpoint string, params Params) ([]byte, string, error) {
	resp, err := c.Do(ctx, http.MethodGet, endpoint, params, nil)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", errors.Wrapf(err, "read %s", endpoint)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func (c *Client) call(ctx context.Context, method, endpoint string, params Params, body, out interface{}) error {
	resp, err := c.Do(ctx, method, endpoint, params, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "read %s %s", method, endpoint)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "decode %s %s", method, endpoint)
	}
	return nil
}

// Do builds the request, runs it through the interceptor chain and returns the raw
// response. Statuses >= 400 come back as *HTTPError unless an interceptor rewrites them.
func (c *Client) Do(ctx context.Context, method, endpoint string, params Params, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	u := c.FullURL(endpoint)
	if q := BuildQuery(params).Encode(); q != "" {
		u += "?" + q
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, errors.Wrapf(err, "build %s %s", method, endpoint)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.chain()(req)
}

func (c *Client) chain() Handler {
	h := Handler(c.send)
	for i := len(c.interceptors) - 1; i >= 0; i-- {
		ic, next := c.interceptors[i], h
		h = func(req *http.Request) (*http.Response, error) {
			return ic(req, next)
		}
	}
	return h
}

func (c *Client) send(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusBadRequest {
		return resp, nil
	}

	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return nil, &HTTPError{
		StatusCode: resp.StatusCode,
		Status:     http.StatusText(resp.StatusCode),
		Body:       body,
		URL:        req.URL.String(),
		Method:     req.Method,
	}
}
