// Package server provides an HTTP server built on Gin, with h2c so other
// http.Handler mounts can share the port.
//
// Handlers answer with result envelopes through Handle and Respond: the
// result's status code becomes the response status, its headers are copied
// onto the response and the envelope is written with the server's codec.
//
// # Middleware
//
// Built-in middleware (server/middleware):
//
//   - RequestID: X-Request-Id generation and propagation
//   - RequestLogger: request logging by status class
//   - CORS: cross-origin headers and preflight
//   - BodySizeLimit: request body limit with a 413 envelope
//   - Recovery: panics become 500 envelopes
//   - Observe: server spans and http.server metrics
//   - Auth: JWT bearer authentication with 401 envelopes
//
// # Endpoints
//
// Built-in endpoints (server/endpoint): /health, /live, /ready and /info.
package server
