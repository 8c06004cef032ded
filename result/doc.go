// Package result wraps the outcome of an operation in a single value that
// carries a value, errors, or both.
//
// Result[T] is the plain outcome; HTTPResult[T] adds a status code and
// response headers. Both mutate in place: every With* method updates the
// receiver and returns it, so calls chain.
//
//	r := result.NewHTTP[[]Forecast]()
//	if !r.Success(callUpstream(ctx)) {
//		return r.Response()
//	}
//	r.WithValue(forecasts)
//
// Results serialize to the JSON envelope
//
//	{"value": ..., "hasValue": true, "errors": [...], "isSuccess": true, "statusCode": 200}
//
// and DecodeEnvelope reads it back. Results are not safe for concurrent
// mutation.
package result
