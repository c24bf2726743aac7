// Package diff computes ordered edit scripts between two list snapshots.
//
// The pipeline has two stages. Sections splits the inputs into alternating
// runs of equal and differing elements using a longest common subsequence.
// Align then turns each differing run into concrete operations with an
// Aligner. The resulting Script, applied left to right with a cursor,
// transforms the old sequence into the new one.
package diff
