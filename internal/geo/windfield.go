package geo

import (
	"math"

	"github.com/emberwatch/fire-impact-service/internal/domain"
)

// WindField is a regular lat/lon grid of wind velocity components around a
// spread origin, for rendering vector overlays. U is the eastward component
// and V the northward component, indexed [row][col] with rows following Lat
// and columns following Lon.
type WindField struct {
	Lat []float64   `json:"lat"`
	Lon []float64   `json:"lon"`
	U   [][]float64 `json:"u"`
	V   [][]float64 `json:"v"`
}

// NewWindField samples a uniform wind over a gridSize × gridSize graticule
// spanning spanDeg degrees centered on the origin. The components point in
// the blows-to direction: a wind FROM the north yields negative V everywhere.
func NewWindField(origin domain.Coordinate, wind domain.WindVector, gridSize int, spanDeg float64) *WindField {
	rad := wind.DirectionDeg * math.Pi / 180
	u := -wind.Speed * math.Sin(rad)
	v := -wind.Speed * math.Cos(rad)

	lat := make([]float64, gridSize)
	lon := make([]float64, gridSize)
	for i := 0; i < gridSize; i++ {
		frac := 0.0
		if gridSize > 1 {
			frac = float64(i)/float64(gridSize-1) - 0.5
		}
		lat[i] = origin.Lat + frac*spanDeg
		lon[i] = origin.Lon + frac*spanDeg
	}

	uGrid := make([][]float64, gridSize)
	vGrid := make([][]float64, gridSize)
	for i := range uGrid {
		uGrid[i] = make([]float64, gridSize)
		vGrid[i] = make([]float64, gridSize)
		for j := range uGrid[i] {
			uGrid[i][j] = u
			vGrid[i][j] = v
		}
	}

	return &WindField{Lat: lat, Lon: lon, U: uGrid, V: vGrid}
}
