// internal/nodeid/types_test.go
package nodeid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandle(t *testing.T) {
	testCases := []struct {
		name      string
		handle    Handle
		wantValid bool
		wantStr   string
	}{
		{name: "zero", handle: 0, wantValid: true, wantStr: "#0"},
		{name: "positive", handle: 42, wantValid: true, wantStr: "#42"},
		{name: "invalid sentinel", handle: Invalid, wantValid: false, wantStr: "#invalid"},
		{name: "negative", handle: -7, wantValid: false, wantStr: "#invalid"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantValid, tc.handle.Valid())
			assert.Equal(t, tc.wantStr, tc.handle.String())
		})
	}
}
