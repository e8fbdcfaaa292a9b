package cvss

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundUp(t *testing.T) {
	// floating point noise just above a decimal
	assert.Equal(t, 4.1, roundUp30(4.000000000000001))
	assert.Equal(t, 4.0, roundUp31(4.000000000000001))

	for _, f := range []func(float64) float64{roundUp30, roundUp31} {
		assert.Equal(t, 4.1, f(4.02))
		assert.Equal(t, 4.0, f(4.0))
		assert.Equal(t, 0.0, f(0))
		assert.Equal(t, 10.0, f(10))
	}
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 4.3, round1(4.25))
	assert.Equal(t, 4.2, round1(4.24))
	assert.Equal(t, 0.0, round1(0.04))

	// float noise just below a half
	assert.Equal(t, 1.8, round1(1.7499999999999998))
	assert.Equal(t, 5.0, round1(4.9499999999999993))
	assert.Equal(t, 8.6, round1(8.549999999999999))
	assert.Equal(t, 1.7, round1(1.7499))
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0.0, clampScore(-1.2))
	assert.Equal(t, 10.0, clampScore(10.4))
	assert.Equal(t, 5.5, clampScore(5.5))
}
