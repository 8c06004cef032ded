package errors

import (
	"context"
	stderrors "errors"
)

// Kind classifies the origin of a failure.
type Kind int

const (
	// KindUnknown is an application error with no transport origin.
	KindUnknown Kind = iota
	// KindTransport is a connection or DNS failure, or a timeout.
	KindTransport
	// KindProtocol is a non-2xx response with no recognizable envelope.
	KindProtocol
	// KindEnvelope is an error reproduced from a received envelope.
	KindEnvelope
	// KindCodec is a body that is not valid JSON or does not fit the target type.
	KindCodec
	// KindCanceled is an operation aborted by its context.
	KindCanceled
	// KindValidation is rejected input.
	KindValidation
)

var kindNames = map[Kind]string{
	KindUnknown:    "unknown",
	KindTransport:  "transport",
	KindProtocol:   "protocol",
	KindEnvelope:   "envelope",
	KindCodec:      "codec",
	KindCanceled:   "canceled",
	KindValidation: "validation",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// KindOf returns the kind of the first *Error in err's chain. Context
// cancellation is reported as KindCanceled even when not wrapped.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	if stderrors.Is(err, context.Canceled) {
		return KindCanceled
	}
	return KindUnknown
}

// IsCanceled reports whether err represents a canceled operation.
func IsCanceled(err error) bool {
	return err != nil && KindOf(err) == KindCanceled
}
