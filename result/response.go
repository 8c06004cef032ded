package result

import (
	"bytes"
	"io"
	"net/http"

	"github.com/kbukum/restkit/codec"
	apperrors "github.com/kbukum/restkit/errors"
)

// ContentTypeJSON is the content type of serialized envelopes.
const ContentTypeJSON = "application/json; charset=utf-8"

// Response is a snapshot of a result ready to be written by a server.
type Response struct {
	StatusCode  int
	Header      http.Header
	ContentType string

	body  []byte
	err   error
	codec codec.Codec
}

// ResponseOption configures Response.
type ResponseOption func(*responseConfig)

type responseConfig struct {
	codec codec.Codec
}

// WithResponseCodec serializes the envelope with c instead of the default codec.
func WithResponseCodec(c codec.Codec) ResponseOption {
	return func(o *responseConfig) {
		if c != nil {
			o.codec = c
		}
	}
}

func responseOptions(opts []ResponseOption) *responseConfig {
	o := &responseConfig{codec: codec.Default()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func newResponse(c codec.Codec, status int, header http.Header, body []byte, err error) *Response {
	if header == nil {
		header = make(http.Header)
	}
	return &Response{
		StatusCode:  status,
		Header:      header,
		ContentType: ContentTypeJSON,
		body:        body,
		err:         err,
		codec:       c,
	}
}

// Body returns the serialized envelope.
func (r *Response) Body() ([]byte, error) {
	return r.body, r.err
}

// WriteTo writes the serialized envelope to w.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	return bytes.NewReader(r.body).WriteTo(w)
}

// framingHeaders describe the body of the response they were received with
// and are never copied onto a re-serialized envelope.
var framingHeaders = map[string]struct{}{
	"Content-Length":    {},
	"Transfer-Encoding": {},
	"Content-Encoding":  {},
	"Connection":        {},
	"Content-Type":      {},
}

// CopyHeaders adds every header value of r to dst, except framing headers.
// Content-Type is always the envelope's.
func (r *Response) CopyHeaders(dst http.Header) {
	for k, vs := range r.Header {
		if _, skip := framingHeaders[http.CanonicalHeaderKey(k)]; skip {
			continue
		}
		for _, v := range vs {
			dst.Add(k, v)
		}
	}
	dst.Set("Content-Type", r.ContentType)
}

// ServeHTTP writes the status line, the headers and the envelope. An
// envelope that failed to encode is replaced by a 500 internal error envelope.
func (r *Response) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	if r.err != nil {
		r = NewHTTPVoid().
			WithError(apperrors.Internal(r.err)).
			Response(WithResponseCodec(r.codec))
		if r.err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}
	r.CopyHeaders(w.Header())
	w.WriteHeader(r.StatusCode)
	_, _ = r.WriteTo(w)
}

// Responder is implemented by results that can be written as a response.
type Responder interface {
	Response(opts ...ResponseOption) *Response
}
