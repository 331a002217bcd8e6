// Package county loads, indexes, and serves the county boundary and
// population dataset. Boundaries arrive as WKT in geographic coordinates and
// are projected once at load time; all queries afterward run against planar
// geometry through an in-memory rtree.
package county

import (
	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
)

// County is one county with its projected boundary and census population.
// The embedded Polygonal is in planar meters, so County satisfies
// rtree.Spatial directly.
type County struct {
	geom.Polygonal

	ID         string
	Name       string
	State      string
	Population float64

	// Area is the planar footprint in square meters, precomputed at load
	// time because it is reused on every impact request.
	Area float64

	centroid geom.Point
}

// Centroid returns the planar center of the county's bounding box. Good
// enough for nearest-county ranking, much cheaper than a true centroid.
func (c *County) Centroid() geom.Point { return c.centroid }

// Set is an immutable, spatially indexed collection of counties. Safe for
// concurrent use after construction.
type Set struct {
	counties []*County
	tree     *rtree.Rtree
	byID     map[string]*County
	skipped  int
}

func newSet(counties []*County, skipped int) *Set {
	tree := rtree.NewTree(25, 50)
	byID := make(map[string]*County, len(counties))
	for _, c := range counties {
		tree.Insert(c)
		byID[c.ID] = c
	}
	return &Set{counties: counties, tree: tree, byID: byID, skipped: skipped}
}

// Len returns the number of counties in the set.
func (s *Set) Len() int { return len(s.counties) }

// Skipped returns how many boundary rows were dropped at load time for
// unparseable geometry.
func (s *Set) Skipped() int { return s.skipped }

// All returns every county. Callers must not mutate the result.
func (s *Set) All() []*County { return s.counties }

// ByID looks a county up by its five-digit GEOID.
func (s *Set) ByID(id string) (*County, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// Candidates returns the counties whose bounding boxes overlap b. This is
// the rtree prefilter; callers still need an exact intersection test.
func (s *Set) Candidates(b *geom.Bounds) []*County {
	hits := s.tree.SearchIntersect(b)
	out := make([]*County, 0, len(hits))
	for _, hit := range hits {
		out = append(out, hit.(*County))
	}
	return out
}
