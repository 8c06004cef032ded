package codec

import (
	"strings"
	"unicode"

	jsoniter "github.com/json-iterator/go"
)

// Naming is the policy applied to property names on write.
type Naming int

const (
	// NamingCamelCase lower-cases the leading word: StatusCode -> statusCode.
	NamingCamelCase Naming = iota
	// NamingNone keeps Go field names as they are.
	NamingNone
)

// ParseNaming maps a config value to a Naming. Unknown values fall back to camelCase.
func ParseNaming(s string) Naming {
	switch strings.ToLower(s) {
	case "none", "pascal", "default":
		return NamingNone
	}
	return NamingCamelCase
}

func (n Naming) String() string {
	if n == NamingNone {
		return "none"
	}
	return "camelCase"
}

// Apply renders a Go property name under the policy.
func (n Naming) Apply(name string) string {
	if n == NamingNone {
		return name
	}
	return camelCase(name)
}

func camelCase(s string) string {
	r := []rune(s)
	for i := 0; i < len(r); i++ {
		if !unicode.IsUpper(r[i]) {
			break
		}
		// keep the first letter of the next word in an acronym run: HTTPStatus -> httpStatus
		if i > 0 && i+1 < len(r) && !unicode.IsUpper(r[i+1]) {
			break
		}
		r[i] = unicode.ToLower(r[i])
	}
	return string(r)
}

// namingExtension renames exported struct fields without an explicit json name.
type namingExtension struct {
	jsoniter.DummyExtension
	naming Naming
}

func (e *namingExtension) UpdateStructDescriptor(sd *jsoniter.StructDescriptor) {
	for _, binding := range sd.Fields {
		name := binding.Field.Name()
		if name == "" || !unicode.IsUpper([]rune(name)[0]) {
			continue
		}
		if tag, ok := binding.Field.Tag().Lookup("json"); ok {
			first := strings.Split(tag, ",")[0]
			if first == "-" || first != "" {
				continue
			}
		}
		renamed := e.naming.Apply(name)
		binding.ToNames = []string{renamed}
		binding.FromNames = []string{renamed}
	}
}
