// Package aggregates defines the domain-facing contract of the enlistment
// negotiation aggregate.
//
// The contract intentionally avoids persistence/transport detail: it names
// the semantic write boundary where the offer/agreement/rent invariants
// must be enforced atomically, and the canonical error codes operations
// fail with.
package aggregates
