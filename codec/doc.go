// Package codec provides the JSON codec used to encode and decode result
// envelopes and the values they carry.
//
// Two options are recognized: the naming policy applied to property names
// that have no explicit json tag, and case-insensitive property matching on
// decode.
//
//	c := codec.New(codec.Options{Naming: codec.NamingCamelCase, CaseInsensitive: true})
//	data, err := c.Marshal(v)
package codec
