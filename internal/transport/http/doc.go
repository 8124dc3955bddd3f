// Package http provides the HTTP transport layer for the dashboard API:
// chi routing, query validation, and RFC 7807 error responses. Handlers
// depend on service interfaces so tests can substitute fakes.
package http
