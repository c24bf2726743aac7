// Package ir defines the scenario and trace representation used by the
// scenario tooling: scenario graphs, mutation steps, assertions and the trace
// events a run records.
//
// All hashing goes through MarshalCanonical, which produces RFC 8785 style
// JSON: object keys sorted by UTF-16 code units, NFC normalised strings, no
// HTML escaping, and no floats or nulls. Hashes are SHA-256 with a versioned
// domain prefix so the same bytes never collide across record types.
package ir
