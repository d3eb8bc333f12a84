// Package graph provides the read-only view of a finished orbit graph and the
// one-shot primitive that hands it from the builder to its readers.
//
// # Why Graph Package Exists
//
// During the build phase the orbit graph is split across two collaborators:
// the node registry (identifier → handle) and the topology store (handles and
// edges). Readers should not have to know about either, and they must never
// observe the graph while it is still being written.
//
// The graph package solves both problems:
//   - **Snapshot** combines the frozen topology with a private copy of the
//     identifier table into one immutable value
//   - **Broadcast** publishes exactly one Snapshot (or one failure) to any number
//     of waiting readers
//
// # Architecture
//
//	┌──────────────────────┐        ┌─────────────────────────┐
//	│  Concurrent Builder  │ writes │  Registry (mutex)       │
//	│  (single writer)     ├───────►│   ├─ identifier table   │
//	└──────────┬───────────┘        │   └─ topology store     │
//	           │ Freeze()           └─────────────────────────┘
//	           ▼
//	┌──────────────────────┐
//	│   Broadcast.Publish  │  happens-before every Wait() return
//	└──────────┬───────────┘
//	     ┌─────┴──────┐
//	     ▼            ▼
//	 Ancestor     Shortest
//	 count        path
//
// # Thread-Safety
//
// A Snapshot is immutable: every method may be called from any number of
// goroutines without locking. The Broadcast's channel close is the single
// synchronisation barrier between build-phase writers and readers.
//
// # Lifecycle
//
//  1. **Creation:** the registry builds the Snapshot when it is frozen
//  2. **Publication:** the builder publishes it through a Broadcast
//  3. **Reading:** analytics wait on the Broadcast and traverse the Snapshot
//  4. **Disposal:** the Snapshot is dropped when the run ends
package graph
