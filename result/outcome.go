package result

import (
	"net/http"

	apperrors "github.com/kbukum/restkit/errors"
)

// Void is the value type of results that carry no value.
type Void struct{}

// Outcome is the read side shared by every result.
type Outcome interface {
	IsSuccess() bool
	IsError() bool
	HasValue() bool
	Errors() []*apperrors.Error
	// AnyValue returns the value boxed as any.
	AnyValue() (any, bool)
}

// HTTPOutcome is an Outcome with HTTP metadata.
type HTTPOutcome interface {
	Outcome
	StatusCode() int
	Header() http.Header
}

// core holds the state common to Result and HTTPResult.
type core[T any] struct {
	value    T
	hasValue bool
	errs     []*apperrors.Error
}

// Value returns the value, or the zero value when absent.
func (c *core[T]) Value() T { return c.value }

// HasValue reports whether a value was set.
func (c *core[T]) HasValue() bool { return c.hasValue }

// AnyValue returns the value boxed as any.
func (c *core[T]) AnyValue() (any, bool) { return c.value, c.hasValue }

// Errors returns the accumulated errors in order.
func (c *core[T]) Errors() []*apperrors.Error { return c.errs }

// LastError returns the most recently appended error, or nil.
func (c *core[T]) LastError() *apperrors.Error {
	if len(c.errs) == 0 {
		return nil
	}
	return c.errs[len(c.errs)-1]
}

// IsError reports whether any error was appended.
func (c *core[T]) IsError() bool { return len(c.errs) > 0 }

// IsSuccess reports whether no error was appended.
func (c *core[T]) IsSuccess() bool { return len(c.errs) == 0 }

// Err converts the outcome to a Go error: nil on success, otherwise the last
// error. The returned error unwraps to its cause.
func (c *core[T]) Err() error {
	if e := c.LastError(); e != nil {
		return e
	}
	return nil
}

// Get returns the value together with Err.
func (c *core[T]) Get() (T, error) {
	return c.value, c.Err()
}

func (c *core[T]) cloneCore() core[T] {
	cc := core[T]{value: c.value, hasValue: c.hasValue}
	if c.errs != nil {
		cc.errs = cloneErrors(c.errs)
	}
	return cc
}

func cloneErrors(errs []*apperrors.Error) []*apperrors.Error {
	out := make([]*apperrors.Error, 0, len(errs))
	for _, e := range errs {
		if e != nil {
			out = append(out, e.Clone())
		}
	}
	return out
}
