package domain

import (
	"sort"
	"time"
)

// AffectedCounty is one county's share of a spread polygon. Created fresh per
// request; never mutated after the result is returned.
type AffectedCounty struct {
	CountyID string `json:"county_id"`
	Name     string `json:"name"`
	State    string `json:"state"`

	Population float64 `json:"population"`

	// IntersectionFraction is the share of the county's equal-area planar
	// footprint covered by the spread polygon, in [0, 1].
	IntersectionFraction float64 `json:"intersection_fraction"`

	// ContributingPopulation = Population × IntersectionFraction, unrounded.
	ContributingPopulation float64 `json:"contributing_population"`
}

// AggregateResult is the terminal output of one spread-impact computation.
type AggregateResult struct {
	TotalContributingPopulation float64          `json:"total_contributing_population"`
	Counties                    []AffectedCounty `json:"counties"`
	SpreadPolygon               []Coordinate     `json:"spread_polygon"`
	ComputedAt                  time.Time        `json:"computed_at"`
}

// RankAffected sorts counties by contributing population descending, ties
// broken by county ID ascending. The sort is stable so identical inputs
// always yield identical orderings.
func RankAffected(counties []AffectedCounty) {
	sort.SliceStable(counties, func(i, j int) bool {
		if counties[i].ContributingPopulation != counties[j].ContributingPopulation {
			return counties[i].ContributingPopulation > counties[j].ContributingPopulation
		}
		return counties[i].CountyID < counties[j].CountyID
	})
}

// TotalContributing sums contributing populations. Zero with no affected
// counties, which is a valid, non-error outcome.
func TotalContributing(counties []AffectedCounty) float64 {
	var total float64
	for _, c := range counties {
		total += c.ContributingPopulation
	}
	return total
}
