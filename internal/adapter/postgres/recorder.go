// Package postgres persists computed impact results for later analysis.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver

	"github.com/emberwatch/fire-impact-service/internal/domain"
)

// Open connects to Postgres and verifies the connection.
func Open(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	return db, nil
}

// Recorder writes impact results to the impact_results table.
type Recorder struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewRecorder builds a Recorder over an open database handle.
func NewRecorder(db *sqlx.DB, logger *slog.Logger) *Recorder {
	return &Recorder{db: db, logger: logger}
}

const insertImpact = `
	INSERT INTO impact_results (
		id, origin_lat, origin_lon, radius_km,
		wind_speed, wind_direction_deg,
		total_population, county_count, top_county_id, computed_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

// impactRow is the flattened table shape of one result.
type impactRow struct {
	ID               string
	OriginLat        float64
	OriginLon        float64
	RadiusKm         float64
	WindSpeed        float64
	WindDirectionDeg float64
	TotalPopulation  float64
	CountyCount      int
	TopCountyID      string
	ComputedAt       time.Time
}

// rowFromImpact flattens a request/result pair for insertion. TopCountyID is
// empty when no county was affected.
func rowFromImpact(id string, req domain.SpreadRequest, result *domain.AggregateResult) impactRow {
	topCounty := ""
	if len(result.Counties) > 0 {
		topCounty = result.Counties[0].CountyID
	}
	return impactRow{
		ID:               id,
		OriginLat:        req.Origin.Lat,
		OriginLon:        req.Origin.Lon,
		RadiusKm:         req.RadiusKm,
		WindSpeed:        req.Wind.Speed,
		WindDirectionDeg: req.Wind.DirectionDeg,
		TotalPopulation:  result.TotalContributingPopulation,
		CountyCount:      len(result.Counties),
		TopCountyID:      topCounty,
		ComputedAt:       result.ComputedAt,
	}
}

// Record inserts one impact result.
func (r *Recorder) Record(ctx context.Context, req domain.SpreadRequest, result *domain.AggregateResult) error {
	row := rowFromImpact(uuid.NewString(), req, result)
	_, err := r.db.ExecContext(ctx, insertImpact,
		row.ID, row.OriginLat, row.OriginLon, row.RadiusKm,
		row.WindSpeed, row.WindDirectionDeg,
		row.TotalPopulation, row.CountyCount, row.TopCountyID, row.ComputedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting impact result: %w", err)
	}
	return nil
}
