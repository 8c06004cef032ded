package httpclient

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Transaction is one recorded request/response exchange. Bodies are read at
// most once and cached.
type Transaction struct {
	Method         string
	URL            string
	StatusCode     int
	RequestHeader  http.Header
	ResponseHeader http.Header
	Duration       time.Duration

	request  *body
	response *body
}

// StringTransaction is a Transaction with both bodies read as text.
type StringTransaction struct {
	Method     string
	URL        string
	StatusCode int
	Request    string
	Response   string
}

type body struct {
	once sync.Once
	open func() (io.ReadCloser, error)
	data []byte
	err  error
}

func (b *body) read(ctx context.Context) ([]byte, error) {
	if b == nil {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.once.Do(func() {
		if b.open == nil {
			return
		}
		rc, err := b.open()
		if err != nil {
			b.err = err
			return
		}
		defer func() { _ = rc.Close() }()
		b.data, b.err = io.ReadAll(rc)
	})
	return b.data, b.err
}

func bufferedBody(data []byte) *body {
	b := &body{data: data}
	b.once.Do(func() {})
	return b
}

func newTransaction(req *http.Request, reqBody []byte) *Transaction {
	return &Transaction{
		Method:        req.Method,
		URL:           req.URL.String(),
		RequestHeader: req.Header.Clone(),
		request:       bufferedBody(reqBody),
	}
}

func (t *Transaction) setResponseBody(data []byte) {
	t.response = bufferedBody(data)
}

// FromExchange records an exchange made outside Client. Bodies are read
// lazily: the request through req.GetBody, the response from resp.Body.
func FromExchange(req *http.Request, resp *http.Response) *Transaction {
	t := &Transaction{
		Method:        req.Method,
		URL:           req.URL.String(),
		RequestHeader: req.Header.Clone(),
		request:       &body{open: req.GetBody},
	}
	if resp != nil {
		t.StatusCode = resp.StatusCode
		t.ResponseHeader = resp.Header.Clone()
		rc := resp.Body
		t.response = &body{open: func() (io.ReadCloser, error) { return rc, nil }}
	}
	return t
}

// RequestBody returns the request body.
func (t *Transaction) RequestBody(ctx context.Context) ([]byte, error) {
	return t.request.read(ctx)
}

// ResponseBody returns the response body.
func (t *Transaction) ResponseBody(ctx context.Context) ([]byte, error) {
	return t.response.read(ctx)
}

// Text reads both bodies as text.
func (t *Transaction) Text(ctx context.Context) (StringTransaction, error) {
	st := StringTransaction{Method: t.Method, URL: t.URL, StatusCode: t.StatusCode}
	req, err := t.RequestBody(ctx)
	if err != nil {
		return st, err
	}
	resp, err := t.ResponseBody(ctx)
	if err != nil {
		return st, err
	}
	st.Request, st.Response = string(req), string(resp)
	return st, nil
}

// ReadTransactions reads every transaction's bodies concurrently. The result
// has one entry per input, in input order; the first failure aborts the rest.
func ReadTransactions(ctx context.Context, txs []*Transaction) ([]StringTransaction, error) {
	out := make([]StringTransaction, len(txs))
	g, gctx := errgroup.WithContext(ctx)
	for i, tx := range txs {
		if tx == nil {
			continue
		}
		g.Go(func() error {
			st, err := tx.Text(gctx)
			if err != nil {
				return err
			}
			out[i] = st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
