package netstorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout is the default HTTP client timeout.
const DefaultTimeout = 30 * time.Second

// Client performs operations against a NetStorage host. All methods
// are safe for concurrent use: the configuration is immutable and no
// state is retained between calls.
type Client struct {
	config     *Config
	httpClient *http.Client
	signer     *Signer
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. Transport-level policy
// such as timeouts, retries and TLS settings belongs there.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets a logger for request tracing. Requests are only
// logged in verbose mode, and never with bodies or key material.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithSignerOptions forwards options to the request signer. Tests use
// this to pin the clock and nonce.
func WithSignerOptions(opts ...SignerOption) Option {
	return func(c *Client) {
		c.signer = NewSigner(c.config.KeyName, c.config.Key, opts...)
	}
}

// New creates a Client bound to the given config.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bound := *cfg
	c := &Client{
		config:     &bound,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		signer:     NewSigner(bound.KeyName, bound.Key),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Config returns the bound configuration.
func (c *Client) Config() *Config {
	return c.config
}

// requestParams describes one signed call.
type requestParams struct {
	method  string
	query   *ActionQuery
	headers map[string]string
	body    io.Reader
	size    int64
}

// newRequest assembles a fully addressed, signed request. The signed
// path and the URL path are the same normalized absolute path; caller
// headers override the signature headers.
func (c *Client) newRequest(ctx context.Context, path string, p requestParams) (*http.Request, error) {
	abs := normalizePath(path)
	rawURL := c.config.BaseURL() + "/" + strings.Trim(abs, "/")

	method := p.method
	if method == "" {
		method = http.MethodGet
	}

	body := p.body
	if body == nil {
		body = http.NoBody
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if p.body != nil && p.size >= 0 {
		req.ContentLength = p.size
	}

	c.signer.Sign(abs, p.query).Apply(req.Header)
	for k, v := range p.headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

// do executes one signed call and classifies the response. Transport
// failures pass through untouched; they are never read as protocol
// errors. It never retries.
func (c *Client) do(ctx context.Context, path string, p requestParams) (*Result, error) {
	if strings.Trim(path, "/") == "" {
		return nil, ErrEmptyPath
	}

	req, err := c.newRequest(ctx, path, p)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.logRequest(req, resp.StatusCode)

	return c.classify(resp.StatusCode, body)
}

// classify turns a raw HTTP response into a Result or an APIError, in
// the order: status >= 300 is a protocol error (body attached only in
// verbose mode); a 2xx non-XML body is a bare status result; a 2xx XML
// body is decoded.
func (c *Client) classify(statusCode int, body []byte) (*Result, error) {
	if statusCode >= 300 {
		apiErr := &APIError{StatusCode: statusCode}
		if c.config.Verbose && len(body) > 0 {
			apiErr.Body = string(body)
		}
		return nil, apiErr
	}

	if !looksLikeXML(body) {
		return &Result{Status: statusCode}, nil
	}

	data, err := ParseXMLResponse(body)
	if err != nil {
		return nil, err
	}
	return &Result{Status: statusCode, Data: data}, nil
}

func (c *Client) logRequest(req *http.Request, status int) {
	if c.logger == nil || !c.config.Verbose {
		return
	}
	c.logger.Debug("netstorage request",
		"method", req.Method,
		"url", req.URL.String(),
		"status", status,
	)
}

// Stat fetches the metadata of a remote path.
func (c *Client) Stat(ctx context.Context, path string) (*Result, error) {
	return c.do(ctx, path, requestParams{query: NewActionQuery(ActionStat)})
}

// DU reports disk usage of a remote directory.
func (c *Client) DU(ctx context.Context, path string) (*Result, error) {
	return c.do(ctx, path, requestParams{query: NewActionQuery(ActionDU)})
}

// Dir lists the contents of a remote directory.
func (c *Client) Dir(ctx context.Context, path string) (*Result, error) {
	return c.do(ctx, path, requestParams{query: NewActionQuery(ActionDir)})
}

// Delete removes a remote file.
func (c *Client) Delete(ctx context.Context, path string) (*Result, error) {
	return c.do(ctx, path, requestParams{
		method: http.MethodPut,
		query:  NewActionQuery(ActionDelete),
	})
}

// Mkdir creates a remote directory. The parent must already exist;
// see Create for materializing a whole chain.
func (c *Client) Mkdir(ctx context.Context, path string) (*Result, error) {
	return c.do(ctx, path, requestParams{
		method: http.MethodPut,
		query:  NewActionQuery(ActionMkdir),
	})
}

// Rmdir removes an empty remote directory.
func (c *Client) Rmdir(ctx context.Context, path string) (*Result, error) {
	return c.do(ctx, path, requestParams{
		method: http.MethodPut,
		query:  NewActionQuery(ActionRmdir),
	})
}

// Rename moves a remote file within the same cpcode.
func (c *Client) Rename(ctx context.Context, from, to string) (*Result, error) {
	query := NewActionQuery(ActionRename).Set("destination", normalizePath(to))
	return c.do(ctx, from, requestParams{
		method: http.MethodPut,
		query:  query,
	})
}

// Symlink creates a symbolic link at linkPath pointing to target.
func (c *Client) Symlink(ctx context.Context, target, linkPath string) (*Result, error) {
	query := NewActionQuery(ActionSymlink).Set("target", normalizePath(target))
	return c.do(ctx, linkPath, requestParams{
		method: http.MethodPut,
		query:  query,
	})
}

// Mtime sets the modification time of a remote path to t, encoded as
// whole-second unix time. A zero time fails with ErrInvalidDate before
// any request is issued.
func (c *Client) Mtime(ctx context.Context, path string, t time.Time) (*Result, error) {
	if t.IsZero() {
		return nil, ErrInvalidDate
	}
	query := NewActionQuery(ActionMtime).Set("mtime", strconv.FormatInt(t.Unix(), 10))
	return c.do(ctx, path, requestParams{
		method: http.MethodPut,
		query:  query,
	})
}

// Download streams a remote file. The caller must close the returned
// reader. On a non-2xx response the body is classified as an error and
// nothing is returned.
func (c *Client) Download(ctx context.Context, path string) (*Result, io.ReadCloser, error) {
	if strings.Trim(path, "/") == "" {
		return nil, nil, ErrEmptyPath
	}

	req, err := c.newRequest(ctx, path, requestParams{query: NewActionQuery(ActionDownload)})
	if err != nil {
		return nil, nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("do request: %w", err)
	}

	c.logRequest(req, resp.StatusCode)

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		_, classifyErr := c.classify(resp.StatusCode, body)
		return nil, nil, classifyErr
	}

	return &Result{Status: resp.StatusCode}, resp.Body, nil
}

// Upload streams a payload to an absolute remote path. The parent
// directory must already exist; see Create for the materializing
// variant. The source is drained at most once.
func (c *Client) Upload(ctx context.Context, src Source, path string) (*Result, error) {
	r, size, err := src.open()
	if err != nil {
		return nil, err
	}

	return c.do(ctx, path, requestParams{
		method: http.MethodPut,
		query:  NewActionQuery(ActionUpload),
		headers: map[string]string{
			"Content-Type": "application/octet-stream",
		},
		body: r,
		size: size,
	})
}

// FileExists composes Stat: a 404 is a definitive false, a stat result
// carrying a file-type attribute is true, and any other error
// propagates.
func (c *Client) FileExists(ctx context.Context, path string) (bool, error) {
	res, err := c.Stat(ctx, path)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.IsNotFound() {
			return false, nil
		}
		return false, err
	}

	attribs, ok := res.Attribs("stat", "file")
	if !ok {
		return false, nil
	}
	return attribs["type"] != "", nil
}
