package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeat(t *testing.T) {
	assert.Equal(t, 0.0, Heat(0))
	assert.Equal(t, 1.0, Heat(1))
	assert.Equal(t, 0.0, Heat(-0.5))
	assert.Equal(t, 1.0, Heat(1.5))
	assert.InDelta(t, 0.42, Heat(0.42), 1e-9)

	// Monotone on [0, 1].
	prev := -1.0
	for f := 0.0; f <= 1.0; f += 0.05 {
		h := Heat(f)
		assert.Greater(t, h, prev)
		prev = h
	}
}

func TestHeatColor(t *testing.T) {
	assert.Equal(t, "#ffffff", HeatColor(0))
	assert.Equal(t, "#ff0000", HeatColor(1))
	assert.Equal(t, "#ff7f7f", HeatColor(0.5))

	// Out-of-range input clamps rather than producing bad hex.
	assert.Equal(t, "#ff0000", HeatColor(2))
	assert.Equal(t, "#ffffff", HeatColor(-1))
}
