// Package geo holds the projection and spread-geometry machinery. All area
// math happens in a planar equal-area projection; geographic coordinates only
// appear at the edges, on the way in and on the way out.
package geo

import (
	"fmt"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/proj"

	"github.com/emberwatch/fire-impact-service/internal/domain"
)

// ConusAlbersProj is the USA Contiguous Albers Equal Area projection
// (EPSG:5070). Equal-area is load-bearing here: intersection fractions are
// ratios of planar areas, so the projection must not distort relative area
// across the CONUS extent.
const ConusAlbersProj = "+proj=aea +lat_1=29.5 +lat_2=45.5 +lat_0=23 +lon_0=-96 +x_0=0 +y_0=0 +ellps=GRS80 +units=m +no_defs"

const geographicProj = "+proj=longlat"

// Projection converts between WGS-84 geographic coordinates and a planar
// projected plane in meters. Safe for concurrent use once constructed.
type Projection struct {
	forward proj.Transformer // lon/lat degrees -> planar meters
	inverse proj.Transformer // planar meters -> lon/lat degrees
}

// NewProjection builds a Projection onto the plane described by the given
// proj4 string.
func NewProjection(planar string) (*Projection, error) {
	geoSR, err := proj.Parse(geographicProj)
	if err != nil {
		return nil, fmt.Errorf("parsing geographic projection: %w", err)
	}
	planarSR, err := proj.Parse(planar)
	if err != nil {
		return nil, fmt.Errorf("parsing planar projection: %w", err)
	}

	forward, err := geoSR.NewTransform(planarSR)
	if err != nil {
		return nil, fmt.Errorf("creating forward transform: %w", err)
	}
	inverse, err := planarSR.NewTransform(geoSR)
	if err != nil {
		return nil, fmt.Errorf("creating inverse transform: %w", err)
	}

	return &Projection{forward: forward, inverse: inverse}, nil
}

// NewConusProjection builds the default CONUS Albers equal-area projection.
func NewConusProjection() (*Projection, error) {
	return NewProjection(ConusAlbersProj)
}

// ToPlanar projects a geographic coordinate onto the planar grid, in meters.
func (p *Projection) ToPlanar(c domain.Coordinate) (geom.Point, error) {
	gg, err := geom.Point{X: c.Lon, Y: c.Lat}.Transform(p.forward)
	if err != nil {
		return geom.Point{}, fmt.Errorf("projecting (%g, %g): %w", c.Lat, c.Lon, err)
	}
	pt, ok := gg.(geom.Point)
	if !ok {
		return geom.Point{}, fmt.Errorf("projecting (%g, %g): unexpected geometry %T", c.Lat, c.Lon, gg)
	}
	return pt, nil
}

// ToGeographic inverts a planar point back to a geographic coordinate.
func (p *Projection) ToGeographic(pt geom.Point) (domain.Coordinate, error) {
	gg, err := pt.Transform(p.inverse)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("unprojecting (%g, %g): %w", pt.X, pt.Y, err)
	}
	out, ok := gg.(geom.Point)
	if !ok {
		return domain.Coordinate{}, fmt.Errorf("unprojecting (%g, %g): unexpected geometry %T", pt.X, pt.Y, gg)
	}
	return domain.Coordinate{Lat: out.Y, Lon: out.X}, nil
}

// PolygonToPlanar projects a geographic polygon onto the planar grid.
func (p *Projection) PolygonToPlanar(poly geom.Polygon) (geom.Polygonal, error) {
	gg, err := poly.Transform(p.forward)
	if err != nil {
		return nil, fmt.Errorf("projecting polygon: %w", err)
	}
	planar, ok := gg.(geom.Polygonal)
	if !ok {
		return nil, fmt.Errorf("projecting polygon: unexpected geometry %T", gg)
	}
	return planar, nil
}

// GeographicRing inverts a planar polygon's outer ring back to geographic
// coordinates, in vertex order, for presentation on a map.
func (p *Projection) GeographicRing(poly geom.Polygon) ([]domain.Coordinate, error) {
	if len(poly) == 0 {
		return nil, nil
	}
	ring := make([]domain.Coordinate, 0, len(poly[0]))
	for _, pt := range poly[0] {
		c, err := p.ToGeographic(pt)
		if err != nil {
			return nil, err
		}
		ring = append(ring, c)
	}
	return ring, nil
}
