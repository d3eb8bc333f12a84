// Package analytics answers queries against a finished graph.Snapshot.
//
// Two queries are provided and both are read-only, so any number of them may
// run concurrently over the same snapshot without locking:
//   - AncestorCount sums, over every node, the number of other nodes reachable
//     by following orbit edges (direct plus indirect orbits)
//   - OrbitalTransfers counts the hops between the bodies two objects orbit,
//     treating edges as undirected
//
// Orbit direction matters when counting who orbits whom but not when counting
// hops between bodies; the asymmetry is deliberate.
package analytics
