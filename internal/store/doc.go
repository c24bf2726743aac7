// Package store provides a SQLite-backed journal of scenario runs.
//
// Every run records the scenario it executed, its pass/fail outcome and the
// full ordered trace of emissions. Stored traces can be replayed: the
// scenario is run again and the new trace is compared with the journaled
// one event by event.
//
// # Ordering
//
// Runs and emissions are ordered by logical sequence numbers, never by wall
// time. All queries order by seq so results are identical across reads.
//
// # Integrity
//
// Scenarios and events are stored as canonical JSON alongside their
// content hashes (see internal/ir). Reads recompute the hashes and fail on
// mismatch.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: emissions are deleted with their run
package store
