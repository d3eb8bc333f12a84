// internal/nodeid/doc.go

/*
Package nodeid provides the dense integer handle used to address bodies in
the orbit graph.

A Handle is assigned by the node registry on the first sighting of an object
identifier and stays valid for the lifetime of the graph it belongs to.
Handles are allocated sequentially from zero, so they double as slice
indexes into the graph store's adjacency tables.
*/
package nodeid
