// Package ledger records the history of a hand as a hash-chained log.
//
// # Core Components
//
// Blockchain: an append-only log of the moves of one hand, every block
// linked to the previous one by its hash.
//
// Block: a single accepted poker action or applied gate together with the
// public table state it produced.
//
// # Usage
//
// Create a blockchain with the state after the blinds, then append a block
// for every accepted move. Verify can be called at any time to check that the
// history was not altered.
package ledger
