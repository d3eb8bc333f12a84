// internal/nodeid/types.go
package nodeid

import "strconv"

// Handle is the dense, zero-based index of a node in one graph.
type Handle int

// Invalid is returned alongside errors and never addresses a real node.
const Invalid Handle = -1

// Valid reports whether h could address a node.
func (h Handle) Valid() bool {
	return h >= 0
}

// Index returns the handle as a slice index.
func (h Handle) Index() int {
	return int(h)
}

// String renders the handle as `#n`, or `#invalid`.
func (h Handle) String() string {
	if !h.Valid() {
		return "#invalid"
	}
	return "#" + strconv.Itoa(int(h))
}
