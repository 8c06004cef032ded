package httpclient

import (
	"net/http"
	"net/url"
)

// Request describes an outbound HTTP request.
type Request struct {
	// Method is the HTTP method. Defaults to GET.
	Method string
	// Path is resolved against the client's BaseURL unless it is absolute.
	Path string
	// Header is merged over the client's default headers.
	Header http.Header
	// Query is added to the URL's query string.
	Query url.Values
	// Body is sent as-is; the caller encodes values before building the request.
	Body []byte
	// ContentType is set when Body is non-empty and Header has none.
	ContentType string
	// Auth overrides the client-level auth for this request.
	Auth *AuthConfig
}
