/*
Package builder is the concurrent graph builder: it drains the stream of orbit
records and materialises the orbit graph inside a node registry.

The build is a three-stage process:

 1. Production: Produce reads lines from a source.Source, parses them with an
    orbit.LineParser and hands each record to the builder over an unbuffered
    channel. The handoff has zero capacity, so at most one parsed record is in
    flight and input order is preserved.

 2. Commitment: for every record, Build starts two resolution tasks, one for
    the object and one for the target, on an errgroup. Each task takes the
    registry lock only for its own lookup or insert. When both have finished,
    the edge object -> target (weight 1) is committed, and only then is the
    next record received. The two resolutions of one record are the only work
    that ever runs concurrently against the registry.

 3. Publication: when the channel is closed, the registry is frozen and the
    resulting graph.Snapshot is published through a graph.Broadcast, if one is
    attached, and returned.

Any failure (a parse error surfacing through the shared context, a registry
error, cancellation) aborts the build: no edge is committed for the failing
record, nothing is published, and the error is returned to the caller.
Nothing is retried.
*/
package builder
