// Package inmemorytopology provides an in-memory, adjacency-list
// implementation of the topologystore.Store interface. It is designed for
// graphs that fit comfortably in memory and never need to be persisted.
package inmemorytopology
