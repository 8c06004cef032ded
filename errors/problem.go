package errors

import (
	"math"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ProblemDetails is an RFC 7807 problem payload. Extensions are flattened into
// the top-level JSON object.
type ProblemDetails struct {
	Type       string
	Title      string
	Status     int
	Detail     string
	Instance   string
	Extensions map[string]any
}

// Problem holds the discrete fields accepted by SetProblem. Message and Code
// apply to the error itself; the rest build the problem detail.
type Problem struct {
	Message    string
	Code       string
	Title      string
	Detail     string
	Instance   string
	Type       string
	Extensions map[string]any
}

// MarshalJSON writes the standard members that are set plus every extension.
func (p ProblemDetails) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, 5+len(p.Extensions))
	for k, v := range p.Extensions {
		m[k] = v
	}
	if p.Type != "" {
		m["type"] = p.Type
	}
	if p.Title != "" {
		m["title"] = p.Title
	}
	if p.Status != 0 {
		m["status"] = p.Status
	}
	if p.Detail != "" {
		m["detail"] = p.Detail
	}
	if p.Instance != "" {
		m["instance"] = p.Instance
	}
	return json.Marshal(m)
}

// UnmarshalJSON reads standard members case-insensitively and keeps the rest
// as extensions.
func (p *ProblemDetails) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*p = ProblemDetails{}
	for k, v := range m {
		switch strings.ToLower(k) {
		case "type":
			p.Type, _ = v.(string)
		case "title":
			p.Title, _ = v.(string)
		case "status":
			p.Status, _ = asInt(v)
		case "detail":
			p.Detail, _ = v.(string)
		case "instance":
			p.Instance, _ = v.(string)
		default:
			if p.Extensions == nil {
				p.Extensions = make(map[string]any)
			}
			p.Extensions[k] = v
		}
	}
	return nil
}

// Clone returns a deep copy.
func (p *ProblemDetails) Clone() *ProblemDetails {
	if p == nil {
		return nil
	}
	c := *p
	if p.Extensions != nil {
		c.Extensions = cloneMap(p.Extensions)
	}
	return &c
}

// detailStatus extracts a numeric status from a problem-shaped detail.
func detailStatus(detail any) (int, bool) {
	switch d := detail.(type) {
	case nil:
		return 0, false
	case *ProblemDetails:
		if d == nil || d.Status == 0 {
			return 0, false
		}
		return d.Status, true
	case ProblemDetails:
		return d.Status, d.Status != 0
	case map[string]any:
		for k, v := range d {
			if strings.EqualFold(k, "status") {
				return asInt(v)
			}
		}
		return 0, false
	case jsoniter.RawMessage:
		return rawStatus(d)
	case []byte:
		return rawStatus(d)
	}
	return 0, false
}

func rawStatus(raw []byte) (int, bool) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return 0, false
	}
	return detailStatus(m)
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float32:
		return asInt(float64(n))
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

func problemFromAny(v any) (*ProblemDetails, error) {
	var raw []byte
	switch d := v.(type) {
	case jsoniter.RawMessage:
		raw = d
	case []byte:
		raw = d
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	pd := &ProblemDetails{}
	if err := json.Unmarshal(raw, pd); err != nil {
		return nil, err
	}
	return pd, nil
}

func cloneDetail(detail any) any {
	switch d := detail.(type) {
	case *ProblemDetails:
		return d.Clone()
	case ProblemDetails:
		return *d.Clone()
	case map[string]any:
		return cloneMap(d)
	case []any:
		return cloneSlice(d)
	case jsoniter.RawMessage:
		return append(jsoniter.RawMessage(nil), d...)
	case []byte:
		return append([]byte(nil), d...)
	}
	return detail
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	c := make(map[string]any, len(m))
	for k, v := range m {
		c[k] = cloneDetail(v)
	}
	return c
}

func cloneSlice(s []any) []any {
	c := make([]any, len(s))
	for i, v := range s {
		c[i] = cloneDetail(v)
	}
	return c
}
