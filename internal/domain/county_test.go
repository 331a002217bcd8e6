package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankAffected(t *testing.T) {
	counties := []AffectedCounty{
		{CountyID: "48113", ContributingPopulation: 1200},
		{CountyID: "48085", ContributingPopulation: 90000},
		{CountyID: "48397", ContributingPopulation: 1200},
		{CountyID: "48121", ContributingPopulation: 45000},
	}

	RankAffected(counties)

	ids := make([]string, len(counties))
	for i, c := range counties {
		ids[i] = c.CountyID
	}
	// Descending by contribution; the 1200 tie resolves by ID ascending.
	assert.Equal(t, []string{"48085", "48121", "48113", "48397"}, ids)
}

func TestRankAffected_Deterministic(t *testing.T) {
	build := func() []AffectedCounty {
		return []AffectedCounty{
			{CountyID: "c", ContributingPopulation: 10},
			{CountyID: "a", ContributingPopulation: 10},
			{CountyID: "b", ContributingPopulation: 10},
		}
	}

	first := build()
	second := build()
	RankAffected(first)
	RankAffected(second)
	assert.Equal(t, first, second)
}

func TestTotalContributing(t *testing.T) {
	counties := []AffectedCounty{
		{ContributingPopulation: 100.5},
		{ContributingPopulation: 200.25},
		{ContributingPopulation: 0},
	}
	assert.InDelta(t, 300.75, TotalContributing(counties), 1e-9)

	assert.Zero(t, TotalContributing(nil))
	assert.Zero(t, TotalContributing([]AffectedCounty{}))
}
