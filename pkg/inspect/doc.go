// Package inspect is the observability surface of the engine: a Prometheus
// observer for composition events, an OpenTelemetry tracing middleware, and
// an HTTP server exposing a finalized tree's resolved snapshots plus a
// WebSocket stream of live attribute patches.
//
// Nothing in here participates in merge semantics. The core stays pure; the
// inspector watches it through the tree.Observer hook and the rebind sink.
package inspect
