package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLatLon(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"north latitude", "32.95N", 32.95},
		{"west longitude", "100.53W", -100.53},
		{"east longitude", "100.53E", 100.53},
		{"south latitude", "45.5S", -45.5},
		{"lowercase hemisphere", "32.95n", 32.95},
		{"lowercase west", "100.53w", -100.53},
		{"surrounding whitespace", "  32.95N ", 32.95},
		{"integer magnitude", "90N", 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseLatLon(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestParseLatLon_SignedZero(t *testing.T) {
	// "0.0S" may parse to -0.0 or 0.0; both compare equal to zero.
	v, err := ParseLatLon("0.0S")
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestParseLatLon_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty string", ""},
		{"whitespace only", "   "},
		{"bad hemisphere letter", "45X"},
		{"no numeric prefix", "N"},
		{"garbage prefix", "abcN"},
		{"bare number", "32.95"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLatLon(tt.input)
			require.Error(t, err)
			var pe *ParseError
			assert.ErrorAs(t, err, &pe)
		})
	}
}

func TestParseCoordinate(t *testing.T) {
	t.Run("space separated", func(t *testing.T) {
		c, err := ParseCoordinate("32.95N 100.53W")
		require.NoError(t, err)
		assert.Equal(t, Coordinate{Lat: 32.95, Lon: -100.53}, c)
	})

	t.Run("comma separated", func(t *testing.T) {
		c, err := ParseCoordinate("40.71N,74.01W")
		require.NoError(t, err)
		assert.Equal(t, Coordinate{Lat: 40.71, Lon: -74.01}, c)
	})

	t.Run("too few components", func(t *testing.T) {
		_, err := ParseCoordinate("32.95N")
		var pe *ParseError
		assert.ErrorAs(t, err, &pe)
	})

	t.Run("out of range latitude", func(t *testing.T) {
		_, err := ParseCoordinate("95.0N 100.53W")
		var pe *ParseError
		assert.ErrorAs(t, err, &pe)
	})
}
