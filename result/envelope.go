package result

import (
	"bytes"
	stderrors "errors"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/kbukum/restkit/codec"
	apperrors "github.com/kbukum/restkit/errors"
)

// Envelope property names, before the codec's naming policy is applied.
const (
	PropValue      = "Value"
	PropHasValue   = "HasValue"
	PropErrors     = "Errors"
	PropIsSuccess  = "IsSuccess"
	PropStatusCode = "StatusCode"
)

var envelopeProps = map[string]struct{}{
	"value":      {},
	"hasvalue":   {},
	"errors":     {},
	"issuccess":  {},
	"statuscode": {},
}

var errNotEnvelope = stderrors.New("result: document is not a result envelope")

// Envelope is a decoded result envelope. Value is kept raw until the target
// type is known.
type Envelope struct {
	Value      jsoniter.RawMessage
	HasValue   *bool
	Errors     []*apperrors.Error
	IsSuccess  *bool
	StatusCode int
	HasStatus  bool
}

// errorEntry is the wire shape of one error.
type errorEntry struct {
	Message     string
	Code        string
	Detail      any
	InnerErrors []errorEntry `json:",omitempty"`
}

func toEntry(e *apperrors.Error) errorEntry {
	en := errorEntry{Message: e.Message, Code: e.Code, Detail: e.Detail}
	for _, in := range e.Inner {
		if in != nil {
			en.InnerErrors = append(en.InnerErrors, toEntry(in))
		}
	}
	return en
}

func encodeEnvelope[T any](c codec.Codec, r *core[T], status *int) ([]byte, error) {
	var value any
	if r.hasValue {
		value = r.value
	}
	entries := make([]errorEntry, 0, len(r.errs))
	for _, e := range r.errs {
		entries = append(entries, toEntry(e))
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	write := func(prop string, v any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		name, err := c.Marshal(c.Name(prop))
		if err != nil {
			return err
		}
		val, err := c.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(val)
		return nil
	}

	if err := write(PropValue, value); err != nil {
		return nil, err
	}
	if err := write(PropHasValue, r.hasValue); err != nil {
		return nil, err
	}
	if err := write(PropErrors, entries); err != nil {
		return nil, err
	}
	if err := write(PropIsSuccess, r.IsSuccess()); err != nil {
		return nil, err
	}
	if status != nil {
		if err := write(PropStatusCode, *status); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// IsEnvelope reports whether a JSON object's properties look like a result
// envelope: a non-empty subset of value, hasValue, errors, isSuccess and
// statusCode, compared case-insensitively.
func IsEnvelope(props map[string]jsoniter.RawMessage) bool {
	if len(props) == 0 {
		return false
	}
	for k := range props {
		if _, ok := envelopeProps[strings.ToLower(k)]; !ok {
			return false
		}
	}
	return true
}

// DecodeEnvelope parses body as a result envelope. ok is false when body is
// not a JSON object or its properties are not envelope properties; err is set
// only when an envelope's own members are malformed.
func DecodeEnvelope(c codec.Codec, body []byte) (env *Envelope, ok bool, err error) {
	var props map[string]jsoniter.RawMessage
	if err := c.Unmarshal(body, &props); err != nil || !IsEnvelope(props) {
		return nil, false, nil
	}

	env = &Envelope{}
	for k, raw := range props {
		switch strings.ToLower(k) {
		case "value":
			if !isNull(raw) {
				env.Value = raw
			}
		case "hasvalue":
			var b bool
			if err := c.Unmarshal(raw, &b); err != nil {
				return nil, true, err
			}
			env.HasValue = &b
		case "issuccess":
			var b bool
			if err := c.Unmarshal(raw, &b); err != nil {
				return nil, true, err
			}
			env.IsSuccess = &b
		case "statuscode":
			if isNull(raw) {
				continue
			}
			if err := c.Unmarshal(raw, &env.StatusCode); err != nil {
				return nil, true, err
			}
			env.HasStatus = true
		case "errors":
			if isNull(raw) {
				continue
			}
			var entries []map[string]jsoniter.RawMessage
			if err := c.Unmarshal(raw, &entries); err != nil {
				return nil, true, err
			}
			for _, entry := range entries {
				env.Errors = append(env.Errors, decodeError(c, entry))
			}
		}
	}
	return env, true, nil
}

// decodeError rebuilds one error entry. A detail with a numeric status makes
// it an HTTP error.
func decodeError(c codec.Codec, entry map[string]jsoniter.RawMessage) *apperrors.Error {
	e := &apperrors.Error{Kind: apperrors.KindEnvelope}
	var detail, inner jsoniter.RawMessage
	for k, raw := range entry {
		switch strings.ToLower(k) {
		case "message":
			e.Message = decodeText(c, raw)
		case "code":
			e.Code = decodeText(c, raw)
		case "detail":
			detail = raw
		case "innererrors":
			inner = raw
		}
	}

	if len(detail) > 0 && !isNull(detail) {
		var generic any
		if err := c.Unmarshal(detail, &generic); err == nil {
			e.Detail = generic
		}
		if e.IsHTTP() {
			pd := &apperrors.ProblemDetails{}
			if err := c.Unmarshal(detail, pd); err == nil {
				message, code := e.Message, e.Code
				e.SetStatusCode(pd.Status, pd)
				e.Message, e.Code = message, code
			}
		}
	}

	if len(inner) > 0 && !isNull(inner) {
		var entries []map[string]jsoniter.RawMessage
		if err := c.Unmarshal(inner, &entries); err == nil {
			for _, en := range entries {
				e.Inner = append(e.Inner, decodeError(c, en))
			}
		}
	}
	return e
}

// envelopeUpdate converts env into an update for a result of T. A value that
// does not decode into T is reported as a codec error inside the update.
func envelopeUpdate[T any](c codec.Codec, env *Envelope) (update, error) {
	u := update{errs: env.Errors}

	hasValue := env.Value != nil
	if env.HasValue != nil && !*env.HasValue {
		hasValue = false
	}
	if !hasValue {
		return u, nil
	}

	var v T
	if err := c.Unmarshal(env.Value, &v); err != nil {
		u.errs = append(u.errs, apperrors.Codec(err, env.Value))
		return u, err
	}
	u.value, u.hasValue, u.setValue = v, true, true
	return u, nil
}

// decodeText reads a JSON string. Any other non-null value is kept as its
// raw JSON text.
func decodeText(c codec.Codec, raw []byte) string {
	if isNull(raw) {
		return ""
	}
	var s string
	if err := c.Unmarshal(raw, &s); err != nil {
		return string(bytes.TrimSpace(raw))
	}
	return s
}

func isNull(raw []byte) bool {
	return len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null"
}
