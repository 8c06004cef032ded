package result

import (
	"github.com/kbukum/restkit/codec"
	apperrors "github.com/kbukum/restkit/errors"
)

// Result is the outcome of an operation: a value, errors, or both.
type Result[T any] struct {
	core[T]
}

// New creates an empty, successful result without a value.
func New[T any]() *Result[T] {
	return &Result[T]{}
}

// NewVoid creates an empty result that will never carry a value.
func NewVoid() *Result[Void] {
	return &Result[Void]{}
}

// FromValue creates a result holding v.
func FromValue[T any](v T) *Result[T] {
	return New[T]().WithValue(v)
}

// FromError creates a failed result from err.
func FromError[T any](err error) *Result[T] {
	return New[T]().WithError(err)
}

func (r *Result[T]) apply(u update) *Result[T] {
	for _, o := range u.results {
		r.apply(nested(o, u.resultValues))
	}
	r.applyValue(&u)
	r.applyErrors(&u)
	return r
}

// WithValue sets the value.
func (r *Result[T]) WithValue(v T) *Result[T] {
	return r.apply(update{value: v, hasValue: true, setValue: true})
}

// WithoutValue clears the value.
func (r *Result[T]) WithoutValue() *Result[T] {
	return r.apply(update{setValue: true})
}

// WithError normalizes err and appends it. A nil err is ignored.
func (r *Result[T]) WithError(err error) *Result[T] {
	return r.apply(update{errs: []*apperrors.Error{apperrors.From(err)}})
}

// WithErrorMessage appends an error built from a message and code.
func (r *Result[T]) WithErrorMessage(message, code string) *Result[T] {
	return r.apply(update{errs: []*apperrors.Error{apperrors.New(message, code)}})
}

// WithErrors appends errs in order.
func (r *Result[T]) WithErrors(errs ...*apperrors.Error) *Result[T] {
	return r.apply(update{errs: errs})
}

// WithResult folds other in: its errors are appended and, when appendValues
// is set and the value types match, its value replaces this one.
func (r *Result[T]) WithResult(other Outcome, appendValues bool) *Result[T] {
	if other == nil {
		return r
	}
	return r.apply(update{results: []Outcome{other}, resultValues: appendValues})
}

// Success folds other in without its value and reports whether other
// succeeded.
func (r *Result[T]) Success(other Outcome) bool {
	if other == nil {
		return true
	}
	r.WithResult(other, false)
	return !other.IsError()
}

// Clone returns an independent copy.
func (r *Result[T]) Clone() *Result[T] {
	return &Result[T]{core: r.cloneCore()}
}

// Encode serializes the result envelope with c.
func (r *Result[T]) Encode(c codec.Codec) ([]byte, error) {
	return encodeEnvelope(c, &r.core, nil)
}

// MarshalJSON serializes the envelope with the default codec.
func (r *Result[T]) MarshalJSON() ([]byte, error) {
	return r.Encode(codec.Default())
}

// UnmarshalJSON reads an envelope produced by MarshalJSON.
func (r *Result[T]) UnmarshalJSON(data []byte) error {
	c := codec.Default()
	env, ok, err := DecodeEnvelope(c, data)
	if err != nil {
		return err
	}
	if !ok {
		return errNotEnvelope
	}
	*r = Result[T]{}
	r.ReadEnvelope(c, env)
	return nil
}

// ReadEnvelope folds a decoded envelope into r: the value first, then the
// errors. A value that does not decode into T becomes a codec error.
func (r *Result[T]) ReadEnvelope(c codec.Codec, env *Envelope) *Result[T] {
	u, _ := envelopeUpdate[T](c, env)
	return r.apply(u)
}

// Response builds the server response for r. A plain result always answers
// 200; use HTTPResult to control the status line.
func (r *Result[T]) Response(opts ...ResponseOption) *Response {
	o := responseOptions(opts)
	body, err := r.Clone().Encode(o.codec)
	return newResponse(o.codec, 200, nil, body, err)
}
