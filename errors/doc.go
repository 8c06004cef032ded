// Package errors provides the failure records carried by results.
//
// An Error is a single failure: message, machine-readable code, optional
// structured detail, the causing fault and an ordered chain of inner errors.
// The HTTP capability is a tag on the same type: an error created with NewHTTP
// or SetStatusCode carries a status code and an RFC 7807 problem detail.
package errors
