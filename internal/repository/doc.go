// Package repository defines the data access interface for the timer registry.
//
// The registry maps timer IDs to immutable timer records. It supports
// insertion, point lookup and a read-only listing. There are no update or
// delete operations and no expiry: entries live until the process exits.
//
// # Implementations
//
// The memory subpackage is the default registry: a plain map guarded by a
// single mutex. The sqlite subpackage keeps the same contract on an
// in-memory SQLite database and exists for deployments that want the
// registry to be inspectable with SQL.
//
// # Concurrency
//
// Every implementation serializes all operations through one exclusive
// critical section over the whole mapping. An insert that has returned is
// visible to every later lookup.
//
// # Testing
//
// The repositorytest subpackage holds a conformance suite that each
// implementation runs against itself.
package repository
