// Package domain models wind-conditioned fire-spread requests and their
// population-impact results.
//
// # Coordinate Conventions
//
// Coordinates are WGS-84 decimal degrees everywhere a value crosses a package
// boundary. Projected (planar, meter-based) coordinates exist only inside the
// geo and impact packages and are never persisted or returned.
//
// Directional coordinate strings, as found in the upstream climate datasets:
//
//	"32.95N"  → +32.95    "100.53W" → -100.53
//	N and E are positive, S and W are negative. The hemisphere letter is the
//	final character and is case-insensitive. See [ParseLatLon].
//
// # Wind Conventions
//
// Wind direction follows the meteorological convention: the bearing the wind
// blows FROM, in compass degrees (0° = north, 90° = east). Fire spreads the
// opposite way, along the "blows-to" bearing:
//
//	blows_to = (direction + 180) mod 360
//
// The downwind elongation of the spread ellipse is governed by a bounded
// stretch factor:
//
//	stretch = 1 + speed/100
//
// so calm air (speed 0) yields an exact circle and a 60-unit wind yields a
// 1.6× major axis. The stretch law is deliberately tame; it models downwind
// bias, not fire physics.
//
// # Impact Accounting
//
// A county's exposure is its intersection fraction: the share of its
// equal-area planar footprint covered by the spread polygon. Contributing
// population = population × fraction, summed into the request total without
// intermediate rounding; rounding is a presentation concern. Counties that do
// not intersect the polygon are excluded from results entirely rather than
// reported with a zero fraction.
//
// Affected counties are ranked by contributing population, descending, with
// ties broken by county ID so identical inputs always produce identical
// orderings.
package domain
