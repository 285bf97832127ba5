// Package cli implements the modelgraph command-line interface.
//
// # Commands
//
//   - fetch: Download an environment's content model through the management API
//   - layout: Lay out a model and write the frame as JSON
//   - render: Write a model as Graphviz DOT or SVG
//   - explore: Browse a model interactively in the terminal
//   - views: List the available views
//   - serve: Run the inspect-mode HTTP API
//   - snapshot: Inspect stored snapshots
//   - cache: Manage the management API response cache
//
// # Configuration
//
// Commands read the TOML file given by --config, or the default location;
// see package config. Flags override file values.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging through
// charmbracelet/log.
package cli
