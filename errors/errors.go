package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
)

// DefaultMessage is used when a fault carries no text of its own.
const DefaultMessage = "An unexpected error occurred."

// Error is a single failure record.
//
// An Error is HTTP-aware when it was tagged through NewHTTP, SetStatusCode or
// SetProblem, or when its Detail carries a numeric "status" member.
type Error struct {
	// Message is a human-readable description.
	Message string
	// Code is a machine-readable error code.
	Code string
	// Detail is an optional structured payload, usually *ProblemDetails.
	Detail any
	// Cause is the fault that produced this error, if any.
	Cause error
	// Inner holds aggregated sub-errors in order.
	Inner []*Error
	// Kind classifies where the failure came from.
	Kind Kind

	status int
	http   bool
}

// New creates an error with a message and code.
func New(message, code string) *Error {
	return &Error{Message: message, Code: code}
}

// Newf creates an error with a formatted message and no code.
func Newf(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// FromCause builds a record from a caught fault. The message is taken from the
// fault, the code is left empty.
func FromCause(cause error) *Error {
	e := &Error{}
	return e.WithCause(cause)
}

// NewHTTP creates an HTTP error for status with an optional problem detail.
func NewHTTP(status int, pd *ProblemDetails) *Error {
	return (&Error{}).SetStatusCode(status, pd)
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	return msg
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error { return e.Cause }

// WithMessage sets the message and returns the receiver.
func (e *Error) WithMessage(message string) *Error {
	e.Message = message
	e.normalizeMessage()
	return e
}

// WithCode sets the code and returns the receiver.
func (e *Error) WithCode(code string) *Error {
	e.Code = code
	return e
}

// WithDetail sets the structured detail and returns the receiver.
func (e *Error) WithDetail(detail any) *Error {
	e.Detail = detail
	return e
}

// WithCause sets the causing fault and returns the receiver. A blank message
// is filled from the cause.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	e.normalizeMessage()
	return e
}

// WithInner appends inner errors and returns the receiver.
func (e *Error) WithInner(inner ...*Error) *Error {
	for _, in := range inner {
		if in != nil {
			e.Inner = append(e.Inner, in)
		}
	}
	return e
}

// WithKind sets the failure kind and returns the receiver.
func (e *Error) WithKind(kind Kind) *Error {
	e.Kind = kind
	return e
}

func (e *Error) normalizeMessage() {
	if e.Message != "" || e.Cause == nil {
		return
	}
	e.Message = e.Cause.Error()
	if e.Message == "" {
		e.Message = DefaultMessage
	}
}

// SetStatusCode tags the error as HTTP with the given status. A default
// problem detail is created when pd is nil. Code becomes the UPPER_SNAKE status
// name and Message "StatusCode: <Name>" unless a message was already supplied.
// pd is copied, so later edits to the caller's value do not reach the error.
func (e *Error) SetStatusCode(status int, pd *ProblemDetails) *Error {
	if pd == nil {
		pd = &ProblemDetails{Title: http.StatusText(status)}
	} else {
		pd = pd.Clone()
	}
	pd.Status = status
	e.http = true
	e.status = status
	e.Detail = pd
	e.Code = CodeForStatus(status)
	if e.Message == "" {
		e.Message = "StatusCode: " + StatusName(status)
	}
	return e
}

// SetProblem tags the error as HTTP and builds its problem detail from
// discrete fields. Unset fields are omitted from the payload.
func (e *Error) SetProblem(status int, p Problem) *Error {
	pd := &ProblemDetails{
		Type:     p.Type,
		Title:    p.Title,
		Detail:   p.Detail,
		Instance: p.Instance,
	}
	if len(p.Extensions) > 0 {
		pd.Extensions = cloneMap(p.Extensions)
	}
	if p.Message != "" {
		e.Message = p.Message
	}
	e.SetStatusCode(status, pd)
	if p.Code != "" {
		e.Code = p.Code
	}
	return e
}

// IsHTTP reports whether the error carries an HTTP status.
func (e *Error) IsHTTP() bool {
	if e.http {
		return true
	}
	_, ok := detailStatus(e.Detail)
	return ok
}

// StatusCode returns the explicit status, falling back to the problem detail's
// status and then to 0.
func (e *Error) StatusCode() int {
	if e.status != 0 {
		return e.status
	}
	if s, ok := detailStatus(e.Detail); ok {
		return s
	}
	return 0
}

// Problem returns the detail as problem details when it has that shape.
func (e *Error) Problem() (*ProblemDetails, bool) {
	switch d := e.Detail.(type) {
	case *ProblemDetails:
		return d, d != nil
	case ProblemDetails:
		return &d, true
	}
	if _, ok := detailStatus(e.Detail); !ok {
		return nil, false
	}
	pd, err := problemFromAny(e.Detail)
	if err != nil {
		return nil, false
	}
	return pd, true
}

// Clone returns an independent copy. Detail payloads and inner errors are
// deep-copied; the cause is shared.
func (e *Error) Clone() *Error {
	if e == nil {
		return nil
	}
	c := *e
	c.Detail = cloneDetail(e.Detail)
	if e.Inner != nil {
		c.Inner = make([]*Error, len(e.Inner))
		for i, in := range e.Inner {
			c.Inner[i] = in.Clone()
		}
	}
	return &c
}

// --- Common Error Constructors ---

// NotFound creates a 404 error for a missing resource.
func NotFound(resource string) *Error {
	return (&Error{Message: fmt.Sprintf("The requested %s was not found.", resource)}).
		SetStatusCode(http.StatusNotFound, nil)
}

// Unauthorized creates a 401 error.
func Unauthorized(message string) *Error {
	return (&Error{Message: message}).SetStatusCode(http.StatusUnauthorized, nil)
}

// Forbidden creates a 403 error.
func Forbidden(message string) *Error {
	return (&Error{Message: message}).SetStatusCode(http.StatusForbidden, nil)
}

// Validation creates a 400 error for invalid input.
func Validation(message string) *Error {
	e := (&Error{Message: message, Kind: KindValidation}).SetStatusCode(http.StatusBadRequest, nil)
	e.Code = CodeInvalidInput
	return e
}

// Internal creates a 500 error wrapping cause.
func Internal(cause error) *Error {
	e := (&Error{Message: "An internal error occurred.", Cause: cause}).
		SetStatusCode(http.StatusInternalServerError, nil)
	e.Code = CodeInternal
	return e
}

// Transport creates a plain error for a request that got no response.
func Transport(cause error) *Error {
	return (&Error{Code: CodeTransport, Kind: KindTransport}).WithCause(cause)
}

// Timeout creates a plain error for a request that exceeded its deadline.
func Timeout(cause error) *Error {
	return (&Error{
		Message: "The request took too long.",
		Code:    CodeTimeout,
		Kind:    KindTransport,
	}).WithCause(cause)
}

// Canceled creates the error recorded when a context is canceled.
func Canceled(cause error) *Error {
	if cause == nil {
		cause = context.Canceled
	}
	return &Error{
		Message: "The operation was canceled.",
		Code:    CodeCanceled,
		Kind:    KindCanceled,
		Cause:   cause,
	}
}

// Codec creates an error for a body that could not be decoded. A snippet of
// the body is included in the message.
func Codec(cause error, body []byte) *Error {
	msg := "Unable to decode response body"
	if len(body) > 0 {
		msg += ": " + Snippet(body, snippetLimit)
	}
	return &Error{Message: msg, Code: CodeCodec, Kind: KindCodec, Cause: cause}
}

const snippetLimit = 256

// Snippet returns at most limit bytes of body, marking truncation.
func Snippet(body []byte, limit int) string {
	if len(body) <= limit {
		return string(body)
	}
	return string(body[:limit]) + "..."
}

// From normalizes any error into a record. An *Error anywhere in the chain is
// returned as-is; context cancellation becomes a canceled record.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e
	}
	if stderrors.Is(err, context.Canceled) {
		return Canceled(err)
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return Timeout(err)
	}
	return FromCause(err)
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}
