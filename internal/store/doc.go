// Package store provides SQLite-backed durable storage for conformance
// run reports: the outcome of a replay, a violation quantification, or an
// alignment, recorded against the graph and trace that produced it.
//
// This is an ambient concern, not part of the execution kernel's contract:
// no Marking is ever persisted here (§7), only the result of a search that
// has already run to completion or exhausted its budget.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes.
//   - synchronous=NORMAL: balance durability against write latency.
//   - busy_timeout=5000: wait for locks up to 5 seconds before failing.
//   - foreign_keys=ON: set, although the schema's single runs table
//     declares no foreign keys.
package store
