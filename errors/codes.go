package errors

import (
	"net/http"
	"strconv"
	"strings"
	"unicode"
)

// Transport and codec codes.
const (
	// CodeTransport marks a request that never produced an HTTP response.
	CodeTransport = "TRANSPORT_ERROR"
	// CodeTimeout marks a request that exceeded its deadline.
	CodeTimeout = "TIMEOUT"
	// CodeCanceled marks an operation aborted by its context.
	CodeCanceled = "CANCELED"
	// CodeCodec marks a body that could not be encoded or decoded.
	CodeCodec = "CODEC_ERROR"
)

// Application codes.
const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeInvalidToken = "INVALID_TOKEN"
	CodeInternal     = "INTERNAL_ERROR"
)

// CodeForStatus renders the name of an HTTP status as UPPER_SNAKE, e.g.
// 404 becomes NOT_FOUND. Unknown statuses render as STATUS_<n>.
func CodeForStatus(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "STATUS_" + strconv.Itoa(status)
	}
	text = strings.ReplaceAll(text, "'", "")

	var b strings.Builder
	sep := false
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if sep && b.Len() > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToUpper(r))
			sep = false
			continue
		}
		sep = true
	}
	return b.String()
}

// StatusName renders the name of an HTTP status in PascalCase, e.g. 404
// becomes NotFound. Unknown statuses render as the bare number.
func StatusName(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return strconv.Itoa(status)
	}
	var b strings.Builder
	upper := true
	for _, r := range text {
		switch {
		case r == '\'':
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if upper {
				r = unicode.ToUpper(r)
			}
			b.WriteRune(r)
			upper = false
		default:
			upper = true
		}
	}
	return b.String()
}

// IsSuccessStatus reports whether status is in the 2xx range.
func IsSuccessStatus(status int) bool {
	return status >= 200 && status <= 299
}
