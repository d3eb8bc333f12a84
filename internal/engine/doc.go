// Package engine runs one complete orbit-map pipeline.
//
// A run has two phases joined by a graph.Broadcast:
//
//	source ──lines──▶ Produce ──records──▶ Build ──▶ Broadcast
//	                                                   │
//	                          ┌────────────────────────┴───────┐
//	                          ▼                                ▼
//	                   AncestorCount                    OrbitalTransfers
//
// The build phase is an errgroup: the producer and the builder share its
// context, so a parse failure cancels the builder and a builder failure
// cancels the producer. The analytics goroutines are started before the
// build and block on the broadcast; they run concurrently over the published
// snapshot or never run at all if the build fails. A failure in one query is
// reported in the Result and does not affect the other.
package engine
