package httpclient

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kbukum/restkit/codec"
	apperrors "github.com/kbukum/restkit/errors"
	"github.com/kbukum/restkit/logger"
)

// Client sends requests and records each exchange as a Transaction.
type Client struct {
	httpClient *http.Client
	config     Config
	codec      *codec.JSON
	log        *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client. The configured timeout
// is not applied to it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTransport sets the round tripper of the underlying client.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.httpClient.Transport = rt }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client from cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	tlsCfg, err := cfg.TLS.Build()
	if err != nil {
		return nil, err
	}
	if tlsCfg != nil {
		transport.TLSClientConfig = tlsCfg
	}

	c := &Client{
		httpClient: &http.Client{Transport: transport, Timeout: cfg.Timeout},
		config:     cfg,
		codec:      codec.New(cfg.CodecOptions()),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.WithComponent("httpclient")
	}
	c.log = c.log.WithFields(logger.Fields("client", cfg.Name))
	return c, nil
}

// Config returns the client's configuration.
func (c *Client) Config() Config { return c.config }

// Codec returns the codec built from the client's configuration.
func (c *Client) Codec() *codec.JSON { return c.codec }

// Logger returns the client's logger.
func (c *Client) Logger() *logger.Logger { return c.log }

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// ResolveURL resolves path against the base address. The result must be an
// absolute URL with a host.
func (c *Client) ResolveURL(path string) (*url.URL, error) {
	raw := path
	if c.config.BaseURL != "" && !isAbsolute(path) {
		raw = strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, invalidURI(raw).WithCause(err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, invalidURI(raw)
	}
	return u, nil
}

func invalidURI(raw string) *apperrors.Error {
	return &apperrors.Error{
		Message: fmt.Sprintf("request URI %q is not an absolute URI", raw),
		Code:    apperrors.CodeInvalidInput,
		Kind:    apperrors.KindValidation,
	}
}

func isAbsolute(path string) bool {
	u, err := url.Parse(path)
	return err == nil && u.IsAbs()
}

// Do sends req. The transaction is returned whenever the request was built,
// even when the exchange failed part-way; its StatusCode is 0 if no response
// arrived. HTTP error statuses are not errors here.
func (c *Client) Do(ctx context.Context, req Request) (*Transaction, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	tx := newTransaction(httpReq, req.Body)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		tx.Duration = time.Since(start)
		c.log.Debug("Request failed", logger.Fields(
			logger.FieldMethod, tx.Method, logger.FieldURL, tx.URL, logger.FieldError, err.Error()))
		return tx, classify(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	tx.StatusCode = resp.StatusCode
	tx.ResponseHeader = resp.Header.Clone()

	body, err := io.ReadAll(resp.Body)
	tx.setResponseBody(body)
	tx.Duration = time.Since(start)
	if err != nil {
		return tx, classify(ctx, fmt.Errorf("read response body: %w", err))
	}

	c.log.Debug("Request completed", logger.Fields(
		logger.FieldMethod, tx.Method,
		logger.FieldURL, tx.URL,
		logger.FieldStatus, tx.StatusCode,
		logger.FieldDuration, tx.Duration.Milliseconds(),
	))
	return tx, nil
}

func (c *Client) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	u, err := c.ResolveURL(req.Path)
	if err != nil {
		return nil, err
	}
	if len(req.Query) > 0 {
		q := u.Query()
		for k, vs := range req.Query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, invalidURI(u.String()).WithCause(err)
	}

	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, vs := range req.Header {
		httpReq.Header.Del(k)
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if len(req.Body) > 0 && httpReq.Header.Get("Content-Type") == "" && req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}

	auth := c.config.Auth
	if req.Auth != nil {
		auth = req.Auth
	}
	auth.apply(httpReq)

	return httpReq, nil
}

// classify turns a transport fault into a failure record.
func classify(ctx context.Context, err error) *apperrors.Error {
	if stderrors.Is(err, context.Canceled) || stderrors.Is(ctx.Err(), context.Canceled) {
		return apperrors.Canceled(err)
	}
	var ne net.Error
	if stderrors.Is(err, context.DeadlineExceeded) || (stderrors.As(err, &ne) && ne.Timeout()) {
		return apperrors.Timeout(err)
	}
	return apperrors.Transport(err)
}
