// Package shared provides common utilities and test helpers used across
// the codebase. It holds functionality that does not belong to any specific
// domain or architectural layer.
//
// The testutil subpackage provides a log-capturing slog handler and
// dataset fixture builders used by package tests. Nothing here carries
// business logic.
package shared
