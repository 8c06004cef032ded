package rest

import (
	"context"

	"github.com/kbukum/restkit/httpclient"
	"github.com/kbukum/restkit/result"
)

// Response is the outcome of one or more calls: an HTTP result plus the
// exchanges that produced it.
type Response[T any] struct {
	*result.HTTPResult[T]

	transactions []*httpclient.Transaction
}

type transactor interface {
	Transactions() []*httpclient.Transaction
}

func newResponse[T any]() *Response[T] {
	return &Response[T]{HTTPResult: result.NewHTTP[T]()}
}

// Transactions returns the recorded exchanges in the order they happened.
func (r *Response[T]) Transactions() []*httpclient.Transaction {
	return r.transactions
}

// ReadTransactions reads the bodies of every recorded exchange as text.
func (r *Response[T]) ReadTransactions(ctx context.Context) ([]httpclient.StringTransaction, error) {
	return httpclient.ReadTransactions(ctx, r.transactions)
}

// WithResult folds other in like HTTPResult.WithResult and adopts its
// exchanges when other is a Response.
func (r *Response[T]) WithResult(other result.Outcome, appendValues bool) *Response[T] {
	if other == nil {
		return r
	}
	r.HTTPResult.WithResult(other, appendValues)
	r.adopt(other)
	return r
}

// Success folds other in without its value, adopts its exchanges, and
// reports whether other succeeded.
func (r *Response[T]) Success(other result.Outcome) bool {
	if other == nil {
		return true
	}
	ok := r.HTTPResult.Success(other)
	r.adopt(other)
	return ok
}

func (r *Response[T]) adopt(other result.Outcome) {
	if t, ok := other.(transactor); ok {
		r.transactions = append(r.transactions, t.Transactions()...)
	}
}

func (r *Response[T]) record(tx *httpclient.Transaction) {
	if tx != nil {
		r.transactions = append(r.transactions, tx)
	}
}
