// Package store defines the opaque result-store interface consumed by
// the core (spec.md §6.3), plus an in-memory implementation for tests
// and a YAML-file-backed implementation for the CLI.
package store
