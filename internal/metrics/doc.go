// Package metrics is a library of stateless aggregation functions over the
// canonical delivered-sales table and its auxiliary tables (orders,
// products, customers, reviews). Every function is pure: deterministic
// inputs produce deterministic outputs, inputs are never mutated, and there
// is no I/O. Concurrent invocation is always safe.
//
// Undefined ratios (growth against a zero or missing base) are represented
// by the Ratio type rather than a raw float NaN, so callers handle the
// undefined case explicitly. Empty inputs yield documented zero values or
// empty slices, never a panic.
//
// Money is decimal throughout; only final ratios and means degrade to
// float64.
package metrics
