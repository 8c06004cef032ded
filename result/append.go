package result

import (
	"net/http"

	apperrors "github.com/kbukum/restkit/errors"
)

// update describes one mutation. Every With* method builds one and applies it.
//
// Precedence:
//   - errors accumulate unless replaceErrors is set
//   - setValue replaces the value wholesale, including its absence
//   - an explicit status wins over the status implied by errors in the same update
//   - header values replace per key unless appendHeader is set
//   - nested outcomes are folded in first, each as its own update
type update struct {
	value    any
	hasValue bool
	setValue bool

	errs          []*apperrors.Error
	replaceErrors bool

	status    int
	setStatus bool
	// orError synthesizes an HTTP error for a non-2xx status when none exists.
	orError bool

	header       http.Header
	appendHeader bool

	results      []Outcome
	resultValues bool
}

// applyValue folds the value part of u into c. A value whose type does not
// match T is ignored.
func (c *core[T]) applyValue(u *update) {
	if !u.setValue {
		return
	}
	if !u.hasValue {
		var zero T
		c.value, c.hasValue = zero, false
		return
	}
	if u.value == nil {
		var zero T
		c.value, c.hasValue = zero, true
		return
	}
	if v, ok := u.value.(T); ok {
		c.value, c.hasValue = v, true
	}
}

func (c *core[T]) applyErrors(u *update) {
	if u.replaceErrors {
		c.errs = nil
	}
	for _, e := range u.errs {
		if e != nil {
			c.errs = append(c.errs, e)
		}
	}
}

// nested turns another outcome into an update. Errors are cloned so the two
// owners never share a problem payload.
func nested(o Outcome, values bool) update {
	u := update{errs: cloneErrors(o.Errors())}
	if values {
		u.value, u.hasValue = o.AnyValue()
		u.setValue = true
	}
	if h, ok := o.(HTTPOutcome); ok {
		u.status, u.setStatus = h.StatusCode(), true
		u.header = h.Header()
	}
	return u
}

// impliedStatus is the status an appended error forces onto an HTTP result.
func impliedStatus(e *apperrors.Error) int {
	if e.IsHTTP() {
		if s := e.StatusCode(); s != 0 {
			return s
		}
	}
	return http.StatusInternalServerError
}

// derivedStatus applies when no status was ever recorded.
func derivedStatus(errs []*apperrors.Error) int {
	if len(errs) == 0 {
		return http.StatusOK
	}
	return impliedStatus(errs[len(errs)-1])
}

func mergeHeader(dst, src http.Header, appendValues bool) http.Header {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(http.Header, len(src))
	}
	for k, vs := range src {
		key := http.CanonicalHeaderKey(k)
		if appendValues {
			dst[key] = append(dst[key], vs...)
			continue
		}
		dst[key] = append([]string(nil), vs...)
	}
	return dst
}
