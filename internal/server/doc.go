// Package server implements the podhub HTTP API surface.
//
// Owns:
//   - HTTP routing, handlers, and request/response contracts
//   - The bearer-token authorization gate and manager role gate
//   - The JSON document store and its persistence
//   - The sqlite audit log for gated mutations
//
// Does not own:
//   - Wire DTO definitions (internal/shared)
//   - Process configuration and startup (cmd/podhub-server)
//
// Invariants:
//   - JSON responses go through writeJSON; error bodies are {"error": msg}
//   - Every route except /health, /metrics, and anonymous login passes
//     the gate; manager-only routes additionally pass requireManager
//   - Store mutations persist synchronously before the handler replies
package server
