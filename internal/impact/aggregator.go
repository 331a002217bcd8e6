// Package impact computes population impact for a spread request: spread
// polygon, county intersections, contributions, and ranking.
package impact

import (
	"context"
	"log/slog"
	"time"

	"github.com/ctessum/geom"

	"github.com/emberwatch/fire-impact-service/internal/county"
	"github.com/emberwatch/fire-impact-service/internal/domain"
	"github.com/emberwatch/fire-impact-service/internal/geo"
	"github.com/emberwatch/fire-impact-service/internal/observability"
)

// minCountyArea is the planar area in square meters below which a county is
// treated as degenerate and contributes nothing. The smallest real county is
// on the order of 1e7 m2, so this only catches collapsed geometry.
const minCountyArea = 1e-6

// Aggregator runs the full impact computation. Stateless between requests;
// safe for concurrent use.
type Aggregator struct {
	proj    *geo.Projection
	engine  *geo.SpreadEngine
	store   *county.Store
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewAggregator wires the projection, spread engine, and county store
// together.
func NewAggregator(proj *geo.Projection, engine *geo.SpreadEngine, store *county.Store, logger *slog.Logger, metrics *observability.Metrics) *Aggregator {
	return &Aggregator{proj: proj, engine: engine, store: store, logger: logger, metrics: metrics}
}

// NearestCounty is one entry of the nearest-county annotation attached to a
// result for callers that want locational context around the ignition point.
type NearestCounty struct {
	CountyID string `json:"county_id"`
	Name     string `json:"name"`
	State    string `json:"state"`
}

// Nearest returns the counties closest to the origin per the strategy,
// whether or not the spread polygon touches them.
func (a *Aggregator) Nearest(ctx context.Context, origin domain.Coordinate, strat county.MatchStrategy) ([]NearestCounty, error) {
	set, err := a.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	pt, err := a.proj.ToPlanar(origin)
	if err != nil {
		return nil, err
	}

	matches := set.Nearest(pt, strat)
	out := make([]NearestCounty, 0, len(matches))
	for _, c := range matches {
		out = append(out, NearestCounty{CountyID: c.ID, Name: c.Name, State: c.State})
	}
	return out, nil
}

// Compute builds the spread polygon for req, intersects it with the county
// set, and returns ranked per-county contributions. An empty county list is
// a valid result, not an error: the polygon may fall outside every county.
func (a *Aggregator) Compute(ctx context.Context, req domain.SpreadRequest) (*domain.AggregateResult, error) {
	start := time.Now()

	planar, ring, err := a.engine.Spread(req)
	if err != nil {
		a.metrics.ImpactRequests.WithLabelValues("invalid").Inc()
		return nil, err
	}

	set, err := a.store.Get(ctx)
	if err != nil {
		a.metrics.ImpactRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	affected := a.intersect(planar, set)
	domain.RankAffected(affected)

	result := &domain.AggregateResult{
		TotalContributingPopulation: domain.TotalContributing(affected),
		Counties:                    affected,
		SpreadPolygon:               ring,
		ComputedAt:                  domain.Now(),
	}

	a.metrics.ImpactRequests.WithLabelValues("success").Inc()
	a.metrics.ImpactDuration.Observe(time.Since(start).Seconds())
	a.metrics.CountiesMatched.Observe(float64(len(affected)))
	a.logger.Debug("impact computed",
		"counties", len(affected),
		"total_population", result.TotalContributingPopulation,
		"radius_km", req.RadiusKm,
		"wind_speed", req.Wind.Speed)

	return result, nil
}

// intersect runs the rtree prefilter over the polygon's bounding box, then
// the exact clip against each candidate.
func (a *Aggregator) intersect(planar geom.Polygon, set *county.Set) []domain.AffectedCounty {
	var affected []domain.AffectedCounty
	for _, c := range set.Candidates(planar.Bounds()) {
		clipped := c.Polygonal.Intersection(planar)
		if clipped == nil {
			continue
		}
		interArea := clipped.Area()
		if interArea <= 0 {
			continue
		}

		fraction := 0.0
		if c.Area > minCountyArea {
			fraction = interArea / c.Area
		}
		if fraction > 1 {
			// Clipping noise can push the ratio a hair past 1.
			fraction = 1
		}

		affected = append(affected, domain.AffectedCounty{
			CountyID:               c.ID,
			Name:                   c.Name,
			State:                  c.State,
			Population:             c.Population,
			IntersectionFraction:   fraction,
			ContributingPopulation: c.Population * fraction,
		})
	}
	return affected
}
