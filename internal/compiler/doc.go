// Package compiler turns scenario sources into validated ir.Scenario values.
//
// Validation runs in two layers. An embedded CUE schema checks structure:
// required fields, node kinds, step operations and scalar-only values. Go
// code then checks the graph itself: input references and arity, function
// names, which operations each source accepts, and dependency cycles.
//
// CUE scenario files are compiled with the CUE Go API and unified with the
// same schema, so YAML, JSON and CUE scenarios share one definition.
package compiler
