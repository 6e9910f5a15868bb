// Package services executes simulation requests and persists their results.
//
// The Runner is the entry point: it expands a RunRequest into its trials,
// runs them concurrently with deterministic per-trial seeds, aggregates the
// outcomes and saves a RunRecord. Both the CLI and the HTTP API go through
// it, so a request replayed with the same seed produces the same record.
//
// Two ResultStore implementations are provided: InMemoryStore for tests and
// the standalone simulator, and PostgresStore for deployments that keep run
// history.
package services
