package httpclient

import (
	apperrors "github.com/kbukum/restkit/errors"
)

// IsTimeout reports whether err is a request that exceeded its deadline.
func IsTimeout(err error) bool {
	e, ok := apperrors.As(err)
	return ok && e.Code == apperrors.CodeTimeout
}

// IsTransport reports whether err is a request that got no response,
// including timeouts.
func IsTransport(err error) bool {
	return apperrors.KindOf(err) == apperrors.KindTransport
}

// IsCanceled reports whether err is a request aborted by its context.
func IsCanceled(err error) bool {
	return apperrors.IsCanceled(err)
}
