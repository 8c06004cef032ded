// Package httpclient is the transport layer under the REST pipeline: it
// resolves request URLs against a base address, buffers bodies, sends the
// request and records the exchange as a Transaction.
//
// Transport faults come back as *errors.Error values classified by kind
// (transport, timeout, canceled); HTTP status codes are never treated as
// errors here. The rest subpackage turns transactions into results.
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.example.com",
//	    Timeout: 30 * time.Second,
//	    Auth:    httpclient.BearerAuth("my-token"),
//	})
//
//	tx, err := client.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: "/users/123"})
package httpclient
