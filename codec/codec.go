package codec

import (
	jsoniter "github.com/json-iterator/go"
)

// Codec encodes and decodes JSON documents.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	// Name renders a property name under the codec's naming policy.
	Name(property string) string
	// Valid reports whether data is a well-formed JSON document.
	Valid(data []byte) bool
}

// Options configures a JSON codec.
type Options struct {
	Naming          Naming `yaml:"naming" mapstructure:"naming"`
	CaseInsensitive bool   `yaml:"case_insensitive" mapstructure:"case_insensitive"`
}

// DefaultOptions returns the web defaults: camelCase names, case-insensitive reads.
func DefaultOptions() Options {
	return Options{Naming: NamingCamelCase, CaseInsensitive: true}
}

// JSON is a Codec backed by json-iterator.
type JSON struct {
	api  jsoniter.API
	opts Options
}

// New creates a JSON codec for opts.
func New(opts Options) *JSON {
	api := jsoniter.Config{
		EscapeHTML:             true,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
		CaseSensitive:          !opts.CaseInsensitive,
	}.Froze()
	if opts.Naming != NamingNone {
		api.RegisterExtension(&namingExtension{naming: opts.Naming})
	}
	return &JSON{api: api, opts: opts}
}

var defaultCodec = New(DefaultOptions())

// Default returns the shared codec built from DefaultOptions.
func Default() *JSON { return defaultCodec }

// Options returns the options the codec was built with.
func (j *JSON) Options() Options { return j.opts }

// Marshal encodes v.
func (j *JSON) Marshal(v any) ([]byte, error) { return j.api.Marshal(v) }

// Unmarshal decodes data into v.
func (j *JSON) Unmarshal(data []byte, v any) error { return j.api.Unmarshal(data, v) }

// Name renders property under the naming policy.
func (j *JSON) Name(property string) string { return j.opts.Naming.Apply(property) }

// Valid reports whether data is well-formed JSON.
func (j *JSON) Valid(data []byte) bool { return j.api.Valid(data) }
