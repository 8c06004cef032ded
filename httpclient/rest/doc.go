// Package rest executes JSON calls and captures every outcome in a result.
//
// Execute never returns a Go error. Transport faults, non-2xx statuses,
// malformed bodies and cancellation all land in the returned Response as
// failure records, next to whatever status and headers were received.
//
//	c, _ := rest.New(httpclient.Config{BaseURL: "https://api.example.com"})
//	resp := rest.Get[[]Forecast](ctx, c, "/resultweather")
//	if resp.IsError() {
//	    return resp.LastError()
//	}
//
// A body shaped like a result envelope is unwrapped: its value, errors and
// status code are folded into the Response as if produced locally.
package rest
