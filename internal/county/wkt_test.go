package county

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWKT_Polygon(t *testing.T) {
	poly, err := parseWKT("POLYGON ((-98 39, -97 39, -97 40, -98 40, -98 39))")
	require.NoError(t, err)
	require.Len(t, poly, 1)
	assert.Len(t, poly[0], 5)
	assert.Equal(t, -98.0, poly[0][0].X)
	assert.Equal(t, 39.0, poly[0][0].Y)
}

func TestParseWKT_MultiPolygon(t *testing.T) {
	poly, err := parseWKT("MULTIPOLYGON (((-98 39, -97 39, -97 40, -98 39)), ((-96 41, -95 41, -95 42, -96 41)))")
	require.NoError(t, err)
	assert.Len(t, poly, 2)
}

func TestParseWKT_PolygonWithHole(t *testing.T) {
	poly, err := parseWKT("POLYGON ((-98 39, -94 39, -94 43, -98 43, -98 39), (-97 40, -95 40, -95 42, -97 40))")
	require.NoError(t, err)
	assert.Len(t, poly, 2)
}

func TestParseWKT_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"wrong geometry type", "POINT (-98 39)"},
		{"empty string", ""},
		{"no rings", "POLYGON ()"},
		{"unbalanced parens", "POLYGON ((-98 39, -97 39, -97 40"},
		{"too few points", "POLYGON ((-98 39, -97 39))"},
		{"non numeric coordinate", "POLYGON ((-98 39, x 39, -97 40, -98 39))"},
		{"missing latitude", "POLYGON ((-98 39, -97, -97 40, -98 39))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseWKT(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestPadGeoID(t *testing.T) {
	assert.Equal(t, "01001", padGeoID("1001"))
	assert.Equal(t, "48113", padGeoID("48113"))
	assert.Equal(t, "01001", padGeoID(" 01001 "))
}
