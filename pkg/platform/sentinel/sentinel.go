// Package sentinel holds sentinel errors for infrastructure facts. Stores
// return these (optionally wrapped) so services can translate them into
// domain errors without depending on a concrete store implementation.
//
// These represent factual states about stored resources:
//   - ErrNotFound: record does not exist, or a scoped write matched nothing
//   - ErrAlreadyUsed: resource (an email in the ledger) is reserved by
//     someone else
//
// For validation failures use pkg/domain-errors directly.
package sentinel

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrAlreadyUsed = errors.New("already used")
)
