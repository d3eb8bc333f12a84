package testutil

import (
	"fmt"
	"strings"
)

// ExampleMap returns the eleven-record reference map. Its total orbit count
// is 42.
func ExampleMap() []string {
	return []string{
		"COM)B", "B)C", "C)D", "D)E", "E)F", "B)G",
		"G)H", "D)I", "E)J", "J)K", "K)L",
	}
}

// TransferMap returns ExampleMap plus YOU and SAN. Its total orbit count is
// 54 and the transfer count between them is 4, along K J E D I.
func TransferMap() []string {
	return append(ExampleMap(), "K)YOU", "I)SAN")
}

// Chain returns n records forming a single line N0)N1)...)Nn.
func Chain(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("N%d)N%d", i, i+1)
	}
	return lines
}

// Text joins records into file content with a trailing newline.
func Text(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
