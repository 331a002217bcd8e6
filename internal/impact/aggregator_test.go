package impact

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberwatch/fire-impact-service/internal/county"
	"github.com/emberwatch/fire-impact-service/internal/domain"
	"github.com/emberwatch/fire-impact-service/internal/geo"
	"github.com/emberwatch/fire-impact-service/internal/observability"
)

const boundariesFixture = `GEOID,COUNTY,STATE,BORDERS
48113,Dallas County,Texas,"POLYGON ((-97.0 32.5, -96.5 32.5, -96.5 33.0, -97.0 33.0, -97.0 32.5))"
48085,Collin County,Texas,"POLYGON ((-96.8 33.0, -96.3 33.0, -96.3 33.4, -96.8 33.4, -96.8 33.0))"
01001,Autauga County,Alabama,"POLYGON ((-86.9 32.3, -86.4 32.3, -86.4 32.7, -86.9 32.7, -86.9 32.3))"
`

const populationFixture = `GEOID,POP_ESTIMATE_2023
48113,2600840
48085,1195359
01001,59285
`

func newTestAggregator(t *testing.T) *Aggregator {
	t.Helper()

	dir := t.TempDir()
	boundaries := filepath.Join(dir, "counties.csv")
	population := filepath.Join(dir, "population.csv")
	require.NoError(t, os.WriteFile(boundaries, []byte(boundariesFixture), 0o644))
	require.NoError(t, os.WriteFile(population, []byte(populationFixture), 0o644))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	proj, err := geo.NewConusProjection()
	require.NoError(t, err)

	loader := county.NewLoader(proj, nil, logger)
	store := county.NewStore(func(ctx context.Context) (*county.Set, error) {
		return loader.Load(ctx, boundaries, population)
	})

	return NewAggregator(proj, geo.NewSpreadEngine(proj), store, logger,
		observability.NewMetricsForTesting())
}

func TestAggregator_Compute_CountyFullyCovered(t *testing.T) {
	agg := newTestAggregator(t)

	// 100 km radius centered on Dallas County swallows it whole.
	result, err := agg.Compute(context.Background(), domain.SpreadRequest{
		Origin:   domain.Coordinate{Lat: 32.75, Lon: -96.75},
		RadiusKm: 100,
		Wind:     domain.WindVector{Speed: 0, DirectionDeg: 0},
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Counties)

	assert.Equal(t, "48113", result.Counties[0].CountyID)
	assert.InDelta(t, 1.0, result.Counties[0].IntersectionFraction, 0.01)
	assert.InDelta(t, 2600840, result.Counties[0].ContributingPopulation, 2600840*0.01)

	t.Run("distant county excluded", func(t *testing.T) {
		for _, c := range result.Counties {
			assert.NotEqual(t, "01001", c.CountyID, "Alabama is 900 km away")
		}
	})

	t.Run("total equals sum of contributions", func(t *testing.T) {
		var sum float64
		for _, c := range result.Counties {
			sum += c.ContributingPopulation
		}
		assert.InDelta(t, sum, result.TotalContributingPopulation, 1e-9)
	})

	t.Run("polygon ring is returned", func(t *testing.T) {
		assert.Len(t, result.SpreadPolygon, 64)
	})
}

func TestAggregator_Compute_PartialOverlap(t *testing.T) {
	agg := newTestAggregator(t)

	// 15 km radius at the Dallas County center stays well inside it.
	result, err := agg.Compute(context.Background(), domain.SpreadRequest{
		Origin:   domain.Coordinate{Lat: 32.75, Lon: -96.75},
		RadiusKm: 15,
		Wind:     domain.WindVector{Speed: 0, DirectionDeg: 0},
	})
	require.NoError(t, err)
	require.Len(t, result.Counties, 1)

	c := result.Counties[0]
	assert.Equal(t, "48113", c.CountyID)
	assert.Greater(t, c.IntersectionFraction, 0.0)
	assert.Less(t, c.IntersectionFraction, 1.0)
	assert.InDelta(t, c.Population*c.IntersectionFraction, c.ContributingPopulation, 1e-6)
}

func TestAggregator_Compute_EmptyResultIsValid(t *testing.T) {
	agg := newTestAggregator(t)

	// Middle of Montana, far from every fixture county.
	result, err := agg.Compute(context.Background(), domain.SpreadRequest{
		Origin:   domain.Coordinate{Lat: 47.0, Lon: -110.0},
		RadiusKm: 10,
		Wind:     domain.WindVector{Speed: 20, DirectionDeg: 90},
	})
	require.NoError(t, err)

	assert.Empty(t, result.Counties)
	assert.Zero(t, result.TotalContributingPopulation)
	assert.Len(t, result.SpreadPolygon, 64)
}

func TestAggregator_Compute_Deterministic(t *testing.T) {
	agg := newTestAggregator(t)

	req := domain.SpreadRequest{
		Origin:   domain.Coordinate{Lat: 32.95, Lon: -96.7},
		RadiusKm: 40,
		Wind:     domain.WindVector{Speed: 30, DirectionDeg: 180},
	}

	first, err := agg.Compute(context.Background(), req)
	require.NoError(t, err)
	second, err := agg.Compute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Counties, second.Counties)
	assert.Equal(t, first.TotalContributingPopulation, second.TotalContributingPopulation)
}

func TestAggregator_Compute_InvalidRequest(t *testing.T) {
	agg := newTestAggregator(t)

	_, err := agg.Compute(context.Background(), domain.SpreadRequest{
		Origin:   domain.Coordinate{Lat: 32.75, Lon: -96.75},
		RadiusKm: -5,
	})
	var ire *domain.InvalidRequestError
	assert.ErrorAs(t, err, &ire)
}

func TestAggregator_Compute_StampsClock(t *testing.T) {
	frozen := time.Date(2026, time.March, 14, 9, 26, 53, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(frozen))
	defer domain.SetClock(nil)

	agg := newTestAggregator(t)
	result, err := agg.Compute(context.Background(), domain.SpreadRequest{
		Origin:   domain.Coordinate{Lat: 32.75, Lon: -96.75},
		RadiusKm: 10,
		Wind:     domain.WindVector{Speed: 5, DirectionDeg: 45},
	})
	require.NoError(t, err)
	assert.True(t, result.ComputedAt.Equal(frozen))
}

func TestAggregator_Nearest(t *testing.T) {
	agg := newTestAggregator(t)

	got, err := agg.Nearest(context.Background(),
		domain.Coordinate{Lat: 32.8, Lon: -96.8}, county.DefaultMatchStrategy())
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "48113", got[0].CountyID)
}
