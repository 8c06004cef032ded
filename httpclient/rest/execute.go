package rest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/restkit/codec"
	apperrors "github.com/kbukum/restkit/errors"
	"github.com/kbukum/restkit/httpclient"
	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/observability"
	"github.com/kbukum/restkit/result"
	"github.com/kbukum/restkit/validation"
)

const spanName = "rest.Execute"

// Get performs a GET request and decodes the response into T.
func Get[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) *Response[T] {
	return Execute[T](ctx, c, http.MethodGet, path, nil, opts...)
}

// Post performs a POST request with body and decodes the response into T.
func Post[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) *Response[T] {
	return Execute[T](ctx, c, http.MethodPost, path, body, opts...)
}

// Put performs a PUT request with body and decodes the response into T.
func Put[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) *Response[T] {
	return Execute[T](ctx, c, http.MethodPut, path, body, opts...)
}

// Patch performs a PATCH request with body and decodes the response into T.
func Patch[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) *Response[T] {
	return Execute[T](ctx, c, http.MethodPatch, path, body, opts...)
}

// Delete performs a DELETE request and decodes the response into T.
func Delete[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) *Response[T] {
	return Execute[T](ctx, c, http.MethodDelete, path, nil, opts...)
}

// Execute sends one request and captures its outcome.
//
// body may be nil, a string, a []byte, an io.Reader (read fully before
// sending) or any value encoded with the codec. The status is the response's
// status, or 200 when no response was received. A response body shaped like
// a result envelope is unwrapped into the Response; any other 2xx body is
// decoded into T; a non-2xx body becomes an HTTP error with that status.
func Execute[T any](ctx context.Context, c *Client, method, path string, body any, opts ...RequestOption) (resp *Response[T]) {
	resp = newResponse[T]()
	if c == nil || c.http == nil {
		resp.WithErrorAndStatus(apperrors.New("rest: nil client", apperrors.CodeInvalidInput).
			WithKind(apperrors.KindValidation), http.StatusOK)
		return resp
	}

	cl := &call{
		req:   httpclient.Request{Method: method, Path: path},
		codec: c.http.Codec(),
	}
	for _, opt := range opts {
		opt(cl)
	}

	ctx, span := observability.StartSpan(ctx, spanName,
		attribute.String(observability.AttrMethod, method),
		attribute.String(observability.AttrURL, path),
	)
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			resp.WithErrorAndStatus(
				apperrors.Internal(fmt.Errorf("rest: panic during %s %s: %v", method, path, p)),
				resp.StatusCode(),
			)
		}
		finish(ctx, c, span, cl, resp, time.Since(start))
	}()

	if cl.validate {
		if err := validateBody(body); err != nil {
			resp.WithError(err)
			return resp
		}
	}
	if err := cl.encode(body); err != nil {
		resp.WithErrorAndStatus(err, http.StatusOK)
		return resp
	}

	tx, err := c.http.Do(ctx, cl.req)
	resp.record(tx)
	if tx != nil && tx.StatusCode != 0 {
		resp.WithHeaders(tx.ResponseHeader)
	}
	if err != nil {
		status := http.StatusOK
		if tx != nil && tx.StatusCode != 0 {
			status = tx.StatusCode
		}
		resp.WithErrorAndStatus(err, status)
		return resp
	}

	data, err := tx.ResponseBody(context.WithoutCancel(ctx))
	if err != nil {
		resp.WithErrorAndStatus(apperrors.Transport(err), tx.StatusCode)
		return resp
	}
	interpret(cl.codec, resp.HTTPResult, tx.StatusCode, data)
	return resp
}

// encode turns body into request bytes.
func (cl *call) encode(body any) error {
	switch b := body.(type) {
	case nil:
		return nil
	case string:
		cl.req.Body = []byte(b)
		cl.req.ContentType = "text/plain; charset=utf-8"
	case []byte:
		cl.req.Body = b
		cl.req.ContentType = "application/octet-stream"
	case io.Reader:
		data, err := io.ReadAll(b)
		if err != nil {
			return apperrors.Transport(fmt.Errorf("read request body: %w", err))
		}
		cl.req.Body = data
		cl.req.ContentType = "application/octet-stream"
	default:
		data, err := cl.codec.Marshal(b)
		if err != nil {
			return (&apperrors.Error{
				Message: "Unable to encode request body",
				Code:    apperrors.CodeCodec,
				Kind:    apperrors.KindCodec,
			}).WithCause(err)
		}
		cl.req.Body = data
		cl.req.ContentType = result.ContentTypeJSON
	}
	return nil
}

func validateBody(body any) error {
	if body == nil {
		return nil
	}
	v := reflect.ValueOf(body)
	for v.Kind() == reflect.Pointer && !v.IsNil() {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	return validation.Struct(body)
}

// interpret folds a received response into r.
func interpret[T any](c codec.Codec, r *result.HTTPResult[T], status int, body []byte) {
	env, ok, err := result.DecodeEnvelope(c, body)
	if ok {
		if err != nil {
			r.WithErrorAndStatus(apperrors.Codec(err, body), status)
			return
		}
		r.ReadEnvelope(c, env, status)
		return
	}

	if !apperrors.IsSuccessStatus(status) {
		r.WithErrorAndStatus(protocolError(c, status, body), status)
		return
	}

	var v T
	if _, void := any(v).(result.Void); void || len(bytes.TrimSpace(body)) == 0 {
		r.WithStatusCode(status)
		return
	}
	if err := c.Unmarshal(body, &v); err != nil {
		if s, text := any(&v).(*string); text && !c.Valid(body) {
			*s = string(body)
			r.WithValue(v).WithStatusCode(status)
			return
		}
		r.WithErrorAndStatus(apperrors.Codec(err, body), status)
		return
	}
	r.WithValue(v).WithStatusCode(status)
}

// protocolError describes a non-2xx response without an envelope. A body
// with a numeric status is kept as the problem detail.
func protocolError(c codec.Codec, status int, body []byte) *apperrors.Error {
	var pd *apperrors.ProblemDetails
	if len(bytes.TrimSpace(body)) > 0 {
		candidate := &apperrors.ProblemDetails{}
		if err := c.Unmarshal(body, candidate); err == nil && candidate.Status != 0 {
			pd = candidate
		}
	}
	e := apperrors.NewHTTP(status, pd).WithKind(apperrors.KindProtocol)
	if pd == nil && len(body) > 0 {
		if p, ok := e.Problem(); ok {
			p.Detail = apperrors.Snippet(body, 256)
		}
	}
	return e
}

// finish records the call on its span, the client metrics and the log.
func finish[T any](ctx context.Context, c *Client, span trace.Span, cl *call, resp *Response[T], elapsed time.Duration) {
	url := cl.req.Path
	if txs := resp.Transactions(); len(txs) > 0 {
		url = txs[len(txs)-1].URL
		span.SetAttributes(attribute.String(observability.AttrURL, url))
	}

	o := observability.Outcome{
		Method:     cl.req.Method,
		StatusCode: resp.StatusCode(),
		Duration:   elapsed,
		Err:        resp.Err(),
	}
	fields := logger.Fields(
		logger.FieldMethod, cl.req.Method,
		logger.FieldURL, url,
		logger.FieldStatus, o.StatusCode,
		logger.FieldDuration, elapsed.Milliseconds(),
	)
	if e := resp.LastError(); e != nil {
		o.ErrorCode, o.ErrorKind = e.Code, e.Kind.String()
		fields[logger.FieldError] = e.Error()
		fields[logger.FieldErrorCode] = e.Code
	}
	fields[logger.FieldOutcome] = o.Label()

	observability.EndSpan(span, o)
	c.metrics.Record(ctx, o)
	c.http.Logger().Debug("Call finished", fields)
}
