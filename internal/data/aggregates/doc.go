// Package aggregates contains the infrastructure implementation of the
// enlistment negotiation aggregate contract.
//
// The implementation composes table-level repos from internal/data/repos
// and owns the transaction boundary for every invariant-critical write:
// preconditions are re-checked against row state inside the transaction and
// commits go through status-guarded compare-and-set updates, so a failed
// operation never leaves a partial transition visible.
package aggregates
