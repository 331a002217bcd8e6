package county

import (
	"math"
	"sort"

	"github.com/ctessum/geom"
)

// MatchStrategy controls nearest-county annotation: counties whose centroid
// lies within RadiusKm of the query point are returned; if none qualify, the
// FallbackK nearest are returned instead so the caller always gets context.
type MatchStrategy struct {
	RadiusKm  float64
	FallbackK int
}

// DefaultMatchStrategy covers roughly one county ring in the rural west
// while keeping dense eastern results short.
func DefaultMatchStrategy() MatchStrategy {
	return MatchStrategy{RadiusKm: 150, FallbackK: 5}
}

// Nearest returns counties ranked by centroid distance from a planar point,
// per the strategy. Equal distances break ties by county ID so results are
// deterministic.
func (s *Set) Nearest(pt geom.Point, strat MatchStrategy) []*County {
	type scored struct {
		county *County
		dist   float64
	}

	ranked := make([]scored, 0, len(s.counties))
	for _, c := range s.counties {
		ctr := c.Centroid()
		ranked = append(ranked, scored{
			county: c,
			dist:   math.Hypot(ctr.X-pt.X, ctr.Y-pt.Y),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].dist != ranked[j].dist {
			return ranked[i].dist < ranked[j].dist
		}
		return ranked[i].county.ID < ranked[j].county.ID
	})

	radiusM := strat.RadiusKm * 1000
	var out []*County
	for _, r := range ranked {
		if r.dist <= radiusM {
			out = append(out, r.county)
		}
	}
	if len(out) > 0 {
		return out
	}

	k := strat.FallbackK
	if k > len(ranked) {
		k = len(ranked)
	}
	out = make([]*County, 0, k)
	for _, r := range ranked[:k] {
		out = append(out, r.county)
	}
	return out
}
