// Package registry provides the node registry: the single owner of the orbit
// graph while it is being built.
//
// The Registry maps object identifiers (the opaque strings used in orbit
// records, e.g. "COM" or "YOU") to dense nodeid.Handle values and applies
// every mutation of the topology store. One mutex guards both the identifier
// table and the edge set, so that:
//   - resolving an identifier that has never been seen allocates exactly one
//     handle, however many goroutines race on it
//   - every handle an edge refers to already exists in the table
//
// The critical sections are one map lookup plus, at most, one node or edge
// insert. When the build phase ends, Freeze turns the registry read-only and
// returns the graph.Snapshot that readers share.
package registry
