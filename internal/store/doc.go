// Package store provides the appointment store for consultas.
//
// The whole collection lives under a single key ([CollectionKey]) of a
// [kv.Store] as a JSON list. Nothing is cached: every operation reads the
// full collection, and every mutation writes it back.
//
// # Operations
//
//   - [Store.ListAll] returns every record in insertion order
//   - [Store.ListForCurrentMonth] keeps records dated in the clock's current month
//   - [Store.Upsert] replaces a record with the same id in place, or appends
//   - [Store.Delete] removes every record with the given id
//
// # Failure semantics
//
// A missing or malformed collection reads as empty and is logged, never
// returned. Adapter failures are returned as [*StorageError], which matches
// [ErrStorageUnavailable] with errors.Is.
//
// # Concurrency
//
// Mutations on one Store value are serialized, so concurrent Upsert and
// Delete calls cannot overwrite each other's changes. Reads are not locked.
package store
