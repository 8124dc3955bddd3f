// Package dataset provides data loading and preparation for the e-commerce
// analytics core. It reads the raw transactional CSV tables, normalizes date
// columns, joins order items to orders into the canonical delivered-sales
// table, and caches the prepared snapshot for the session.
//
// # Components
//
//   - types.go: raw and canonical row types
//   - loader.go: concurrent CSV ingestion with header mapping and BOM handling
//   - prepare.go: normalization, joins, and range filters
//   - cache.go: session-scoped store with injectable invalidation key
//
// # Data Flow
//
//	CSV files → Loader → Tables → Prepare → Data.Delivered → metrics package
//
// All preparation functions are side-effect free: they return new slices and
// never mutate their inputs. Unparseable dates coerce to nil and propagate;
// join mismatches drop silently under inner-join semantics.
package dataset
