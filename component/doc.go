// Package component manages the lifecycle of long-lived parts of a service,
// such as the HTTP server and outbound clients.
//
// Components start in registration order and stop in reverse order.
package component
