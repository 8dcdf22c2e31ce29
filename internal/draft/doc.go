// Package draft implements the constrained-random team search.
//
// A Catalog indexes entities by canonical type pair. The Selector picks six
// pairs that share no type label, the Drafter takes one random entity from
// each chosen bucket, and the Validator rejects drafts with repeated numbers
// or evolution links reported by a RelationOracle. The Assembler drives the
// whole search with explicit attempt ceilings so that an infeasible catalog
// ends in an error instead of looping forever.
//
// Nothing in this package performs I/O directly. Relation data comes in
// through the RelationOracle interface and randomness through Rand, so every
// step can be exercised with in-memory fakes and a seeded source.
package draft
