// Package docgen renders PDF and HTML documents from placeholder-bearing
// HTML templates populated from an external data source.
//
// Templates carry tokens delimited by "[#" and "#]". The expression inside
// a token is namespaced: ~input (root input row), ~config and ~translate
// (external lookups), ~formula (formula engine), ~data (data placeholder
// rows and aggregates), ~file (resolved file name), or a bare name for a
// data placeholder's rendered block. Data placeholders are named,
// queryable, row-iterating sub-templates that nest recursively; resolution
// is depth first and query result order is preserved.
//
// The core package defines the collaborator interfaces (DataSource,
// ConfigStore, Translator, FormulaEngine, Rasterizer, Sink); ready-made
// implementations live under adapters/ and sources/.
package docgen
