package geo

import (
	"math"

	"github.com/ctessum/geom"

	"github.com/emberwatch/fire-impact-service/internal/domain"
)

// spreadSamples is the number of boundary vertices on a spread polygon.
// 64 keeps polygon area within a fraction of a percent of the true ellipse
// while keeping intersection cost low.
const spreadSamples = 64

// SpreadEngine turns validated spread requests into planar spread polygons.
// It is pure and safe for concurrent use.
type SpreadEngine struct {
	proj *Projection
}

// NewSpreadEngine builds a SpreadEngine over the given projection.
func NewSpreadEngine(p *Projection) *SpreadEngine {
	return &SpreadEngine{proj: p}
}

// PlanarSpread computes the wind-stretched spread ellipse for a request, in
// planar meters.
//
// The ellipse has its minor semi-axis equal to the base radius and its major
// semi-axis equal to base times the wind stretch factor, aligned with the
// blows-to bearing. The ellipse center is displaced half the axis difference
// downwind, so the ignition origin sits inside the ellipse but off-center,
// with more of the footprint ahead of the fire than behind it. Calm wind
// degenerates to a circle centered on the origin.
func (e *SpreadEngine) PlanarSpread(req domain.SpreadRequest) (geom.Polygon, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	center, err := e.proj.ToPlanar(req.Origin)
	if err != nil {
		return nil, err
	}

	base := req.RadiusKm * 1000
	a := base * req.Wind.StretchFactor()
	b := base

	bearing := req.Wind.BlowsToDeg() * math.Pi / 180
	// Compass bearing to planar direction: 0 deg is +y (north), 90 deg is
	// +x (east).
	dx := math.Sin(bearing)
	dy := math.Cos(bearing)

	shift := (a - b) / 2
	cx := center.X + shift*dx
	cy := center.Y + shift*dy

	ring := make([]geom.Point, 0, spreadSamples)
	for i := 0; i < spreadSamples; i++ {
		theta := 2 * math.Pi * float64(i) / float64(spreadSamples)
		// Ellipse in axis-aligned form, major axis along +y, then rotated
		// onto the blows-to bearing.
		x := b * math.Sin(theta)
		y := a * math.Cos(theta)
		xr := cx + x*dy + y*dx
		yr := cy - x*dx + y*dy
		ring = append(ring, geom.Point{X: xr, Y: yr})
	}

	return geom.Polygon{ring}, nil
}

// Spread computes the spread polygon and returns both its planar form, for
// intersection math, and its geographic outer ring, for presentation.
func (e *SpreadEngine) Spread(req domain.SpreadRequest) (geom.Polygon, []domain.Coordinate, error) {
	planar, err := e.PlanarSpread(req)
	if err != nil {
		return nil, nil, err
	}
	ring, err := e.proj.GeographicRing(planar)
	if err != nil {
		return nil, nil, err
	}
	return planar, ring, nil
}
