package rest

import (
	"net/http"

	"github.com/kbukum/restkit/codec"
	"github.com/kbukum/restkit/httpclient"
	"github.com/kbukum/restkit/observability"
)

// Client is a JSON-focused client that wraps the base HTTP client.
type Client struct {
	http    *httpclient.Client
	metrics *observability.Metrics
}

// New creates a REST client from cfg. An Accept: application/json header is
// added unless cfg already sets one.
func New(cfg httpclient.Config, opts ...httpclient.Option) (*Client, error) {
	headers := make(map[string]string, len(cfg.Headers)+1)
	for k, v := range cfg.Headers {
		headers[k] = v
	}
	if _, ok := headers["Accept"]; !ok {
		headers["Accept"] = "application/json"
	}
	cfg.Headers = headers

	c, err := httpclient.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return NewFromClient(c), nil
}

// NewFromClient creates a REST client from an existing HTTP client.
func NewFromClient(c *httpclient.Client) *Client {
	return &Client{http: c, metrics: observability.ClientMetrics()}
}

// HTTP returns the underlying HTTP client.
func (c *Client) HTTP() *httpclient.Client {
	return c.http
}

// RequestOption configures a single call.
type RequestOption func(*call)

type call struct {
	req      httpclient.Request
	codec    *codec.JSON
	validate bool
}

// WithQuery adds query parameters to the request.
func WithQuery(params map[string]string) RequestOption {
	return func(c *call) {
		if c.req.Query == nil {
			c.req.Query = make(map[string][]string, len(params))
		}
		for k, v := range params {
			c.req.Query.Add(k, v)
		}
	}
}

// WithHeaders sets request headers, replacing the client defaults with the
// same names.
func WithHeaders(headers map[string]string) RequestOption {
	return func(c *call) {
		for k, v := range headers {
			c.header().Set(k, v)
		}
	}
}

// WithHeader sets every value of one request header.
func WithHeader(key string, values ...string) RequestOption {
	return func(c *call) {
		h := c.header()
		h.Del(key)
		for _, v := range values {
			h.Add(key, v)
		}
	}
}

// WithAuth overrides authentication for the request.
func WithAuth(auth *httpclient.AuthConfig) RequestOption {
	return func(c *call) {
		c.req.Auth = auth
	}
}

// WithCodec encodes the body and decodes the response with opts instead of
// the client's codec settings.
func WithCodec(opts codec.Options) RequestOption {
	return func(c *call) {
		c.codec = codec.New(opts)
	}
}

// WithValidation validates a struct body with its validate tags before it is
// sent. A rejected body is never sent.
func WithValidation() RequestOption {
	return func(c *call) {
		c.validate = true
	}
}

func (c *call) header() http.Header {
	if c.req.Header == nil {
		c.req.Header = make(http.Header)
	}
	return c.req.Header
}
