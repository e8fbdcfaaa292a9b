package epss

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cvss-scorer/cvss"
)

func TestExploitMaturityFor(t *testing.T) {
	tests := []struct {
		score           float64
		v2, v3, v4, def string
	}{
		{-1, "ND", "X", "X", "X"},
		{0, "U", "U", "U", "U"},
		{0.049, "U", "U", "U", "U"},
		{0.05, "POC", "P", "P", "P"},
		{0.19, "POC", "P", "P", "P"},
		{0.2, "F", "F", "P", "F"},
		{0.49, "F", "F", "P", "F"},
		{0.5, "H", "H", "A", "H"},
		{0.97, "H", "H", "A", "H"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.v2, ExploitMaturityFor(cvss.V2, tt.score), "2.0 %v", tt.score)
		assert.Equal(t, tt.v3, ExploitMaturityFor(cvss.V30, tt.score), "3.0 %v", tt.score)
		assert.Equal(t, tt.v3, ExploitMaturityFor(cvss.V31, tt.score), "3.1 %v", tt.score)
		assert.Equal(t, tt.v4, ExploitMaturityFor(cvss.V40, tt.score), "4.0 %v", tt.score)
		assert.Equal(t, tt.def, EPSSToExploitMaturity(tt.score), "default %v", tt.score)
	}
}
