// Package app assembles the dashboard server: configuration, logging,
// tracing, the dataset store, the dashboard service and the HTTP router,
// with graceful shutdown on interrupt.
package app
