package result

import (
	"net/http"

	"github.com/kbukum/restkit/codec"
	apperrors "github.com/kbukum/restkit/errors"
)

// HTTPResult is a Result with a status code and response headers.
//
// Until a status is recorded it is derived from the errors: the last error's
// status when it is an HTTP error, 500 for any other error, 200 otherwise.
// Appending errors records the status they imply; an explicit status set in
// the same call wins.
type HTTPResult[T any] struct {
	core[T]
	status int
	header http.Header
}

// NewHTTP creates an empty HTTP result.
func NewHTTP[T any]() *HTTPResult[T] {
	return &HTTPResult[T]{}
}

// NewHTTPVoid creates an empty HTTP result that will never carry a value.
func NewHTTPVoid() *HTTPResult[Void] {
	return &HTTPResult[Void]{}
}

// HTTPFromValue creates an HTTP result holding v.
func HTTPFromValue[T any](v T) *HTTPResult[T] {
	return NewHTTP[T]().WithValue(v)
}

// HTTPFromError creates a failed HTTP result from err.
func HTTPFromError[T any](err error) *HTTPResult[T] {
	return NewHTTP[T]().WithError(err)
}

// HTTPFromStatusCode creates an HTTP result with status set. Non-2xx codes
// carry a default HTTP error.
func HTTPFromStatusCode[T any](status int) *HTTPResult[T] {
	return NewHTTP[T]().WithStatusCode(status)
}

func (r *HTTPResult[T]) apply(u update) *HTTPResult[T] {
	for _, o := range u.results {
		r.apply(nested(o, u.resultValues))
	}
	r.applyValue(&u)
	r.applyErrors(&u)

	switch {
	case u.setStatus:
		r.status = u.status
		if u.orError && !apperrors.IsSuccessStatus(u.status) && len(r.errs) == 0 {
			r.errs = append(r.errs, apperrors.NewHTTP(u.status, nil))
		}
	case len(u.errs) > 0:
		for _, e := range u.errs {
			if e != nil {
				r.status = impliedStatus(e)
			}
		}
	}

	r.header = mergeHeader(r.header, u.header, u.appendHeader)
	return r
}

// StatusCode returns the recorded status, or the status derived from errors.
func (r *HTTPResult[T]) StatusCode() int {
	if r.status != 0 {
		return r.status
	}
	return derivedStatus(r.errs)
}

// Header returns the response headers. The map is owned by r.
func (r *HTTPResult[T]) Header() http.Header {
	if r.header == nil {
		r.header = make(http.Header)
	}
	return r.header
}

// WithValue sets the value.
func (r *HTTPResult[T]) WithValue(v T) *HTTPResult[T] {
	return r.apply(update{value: v, hasValue: true, setValue: true})
}

// WithoutValue clears the value.
func (r *HTTPResult[T]) WithoutValue() *HTTPResult[T] {
	return r.apply(update{setValue: true})
}

// WithError normalizes err and appends it. A nil err is ignored.
func (r *HTTPResult[T]) WithError(err error) *HTTPResult[T] {
	return r.apply(update{errs: []*apperrors.Error{apperrors.From(err)}})
}

// WithErrorMessage appends an error built from a message and code.
func (r *HTTPResult[T]) WithErrorMessage(message, code string) *HTTPResult[T] {
	return r.apply(update{errs: []*apperrors.Error{apperrors.New(message, code)}})
}

// WithErrors appends errs in order.
func (r *HTTPResult[T]) WithErrors(errs ...*apperrors.Error) *HTTPResult[T] {
	return r.apply(update{errs: errs})
}

// WithResult folds other in. Errors are appended; an HTTP outcome also
// brings its status and replaces the headers it carries. With appendValues
// and matching value types, other's value replaces this one.
func (r *HTTPResult[T]) WithResult(other Outcome, appendValues bool) *HTTPResult[T] {
	if other == nil {
		return r
	}
	return r.apply(update{results: []Outcome{other}, resultValues: appendValues})
}

// Success folds other in without its value and reports whether other
// succeeded.
func (r *HTTPResult[T]) Success(other Outcome) bool {
	if other == nil {
		return true
	}
	r.WithResult(other, false)
	return !other.IsError()
}

// WithStatusCode sets the status explicitly. A code outside 2xx adds a
// default HTTP error when the result has no error yet.
func (r *HTTPResult[T]) WithStatusCode(status int) *HTTPResult[T] {
	return r.apply(update{status: status, setStatus: true, orError: true})
}

// WithProblemDetails sets the status and always attaches an HTTP error
// carrying pd, even for a 2xx status.
func (r *HTTPResult[T]) WithProblemDetails(status int, pd *apperrors.ProblemDetails) *HTTPResult[T] {
	return r.apply(update{
		errs:      []*apperrors.Error{apperrors.NewHTTP(status, pd)},
		status:    status,
		setStatus: true,
	})
}

// WithProblem is WithProblemDetails built from discrete fields.
func (r *HTTPResult[T]) WithProblem(status int, p apperrors.Problem) *HTTPResult[T] {
	return r.apply(update{
		errs:      []*apperrors.Error{(&apperrors.Error{}).SetProblem(status, p)},
		status:    status,
		setStatus: true,
	})
}

// WithErrorAndStatus appends err and records status in one step, so the
// status is not replaced by the one err implies.
func (r *HTTPResult[T]) WithErrorAndStatus(err error, status int) *HTTPResult[T] {
	return r.apply(update{
		errs:      []*apperrors.Error{apperrors.From(err)},
		status:    status,
		setStatus: status != 0,
	})
}

// WithHeader replaces the values of the named response header.
func (r *HTTPResult[T]) WithHeader(key string, values ...string) *HTTPResult[T] {
	return r.apply(update{header: http.Header{key: values}})
}

// WithHeaderAppend appends values to the named response header.
func (r *HTTPResult[T]) WithHeaderAppend(key string, values ...string) *HTTPResult[T] {
	return r.apply(update{header: http.Header{key: values}, appendHeader: true})
}

// WithHeaders replaces every header present in h.
func (r *HTTPResult[T]) WithHeaders(h http.Header) *HTTPResult[T] {
	return r.apply(update{header: h})
}

// Clone returns an independent copy.
func (r *HTTPResult[T]) Clone() *HTTPResult[T] {
	return &HTTPResult[T]{
		core:   r.cloneCore(),
		status: r.status,
		header: r.header.Clone(),
	}
}

// Encode serializes the result envelope with c.
func (r *HTTPResult[T]) Encode(c codec.Codec) ([]byte, error) {
	status := r.StatusCode()
	return encodeEnvelope(c, &r.core, &status)
}

// MarshalJSON serializes the envelope with the default codec.
func (r *HTTPResult[T]) MarshalJSON() ([]byte, error) {
	return r.Encode(codec.Default())
}

// UnmarshalJSON reads an envelope produced by MarshalJSON.
func (r *HTTPResult[T]) UnmarshalJSON(data []byte) error {
	c := codec.Default()
	env, ok, err := DecodeEnvelope(c, data)
	if err != nil {
		return err
	}
	if !ok {
		return errNotEnvelope
	}
	*r = HTTPResult[T]{}
	r.ReadEnvelope(c, env, http.StatusOK)
	return nil
}

// ReadEnvelope folds a decoded envelope into r: the value, then the errors,
// then the envelope's status code, or fallbackStatus when it has none.
func (r *HTTPResult[T]) ReadEnvelope(c codec.Codec, env *Envelope, fallbackStatus int) *HTTPResult[T] {
	u, _ := envelopeUpdate[T](c, env)
	r.apply(u)

	status := fallbackStatus
	if env.HasStatus {
		status = env.StatusCode
	}
	if status == 0 {
		return r
	}
	return r.WithStatusCode(status)
}

// Response snapshots r for a server to write: status line, headers and the
// JSON envelope of a clone.
func (r *HTTPResult[T]) Response(opts ...ResponseOption) *Response {
	o := responseOptions(opts)
	snap := r.Clone()
	body, err := snap.Encode(o.codec)
	return newResponse(o.codec, snap.StatusCode(), snap.header, body, err)
}
