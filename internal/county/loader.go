package county

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/ctessum/geom"
	"golang.org/x/sync/errgroup"

	"github.com/emberwatch/fire-impact-service/internal/domain"
	"github.com/emberwatch/fire-impact-service/internal/geo"
)

// Column layout of the boundary CSV.
const (
	boundaryColGeoID = iota
	boundaryColName
	boundaryColState
	boundaryColWKT
	boundaryColCount
)

// Loader reads the boundary and population CSVs and joins them into a Set.
type Loader struct {
	projection *geo.Projection
	logger     *slog.Logger

	// excluded holds state or territory names, lowercased, whose counties
	// are dropped at load time because they fall outside the projection's
	// valid extent.
	excluded map[string]struct{}
}

// NewLoader builds a Loader. excludedStates is matched case-insensitively
// against the boundary file's STATE column.
func NewLoader(projection *geo.Projection, excludedStates []string, logger *slog.Logger) *Loader {
	excluded := make(map[string]struct{}, len(excludedStates))
	for _, s := range excludedStates {
		excluded[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	return &Loader{projection: projection, logger: logger, excluded: excluded}
}

type boundaryRow struct {
	id    string
	name  string
	state string
	wkt   string
}

// Load reads both CSVs concurrently and joins them on GEOID. A county with
// bad geometry is logged and skipped without failing the load; a missing or
// unreadable file fails the whole load with a DataSourceError. Counties
// without a population row load with population zero.
func (l *Loader) Load(ctx context.Context, boundariesPath, populationPath string) (*Set, error) {
	var (
		rows        []boundaryRow
		populations map[string]float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = l.readBoundaries(gctx, boundariesPath)
		return err
	})
	g.Go(func() error {
		var err error
		populations, err = l.readPopulations(gctx, populationPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	counties := make([]*County, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		c, err := l.buildCounty(row, populations[row.id])
		if err != nil {
			skipped++
			l.logger.Warn("skipping county with bad geometry",
				"county_id", row.id, "name", row.name, "error", err)
			continue
		}
		counties = append(counties, c)
	}

	l.logger.Info("county dataset loaded",
		"counties", len(counties), "skipped", skipped, "source", boundariesPath)
	return newSet(counties, skipped), nil
}

func (l *Loader) buildCounty(row boundaryRow, population float64) (*County, error) {
	raw, err := parseWKT(row.wkt)
	if err != nil {
		return nil, &domain.GeometryError{CountyID: row.id, Err: err}
	}
	planar, err := l.projection.PolygonToPlanar(raw)
	if err != nil {
		return nil, &domain.GeometryError{CountyID: row.id, Err: err}
	}

	b := planar.Bounds()
	return &County{
		Polygonal:  planar,
		ID:         row.id,
		Name:       row.name,
		State:      row.state,
		Population: population,
		Area:       planar.Area(),
		centroid: geom.Point{
			X: (b.Min.X + b.Max.X) / 2,
			Y: (b.Min.Y + b.Max.Y) / 2,
		},
	}, nil
}

func (l *Loader) readBoundaries(ctx context.Context, path string) ([]boundaryRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.DataSourceError{Source: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = boundaryColCount

	// Header row.
	if _, err := r.Read(); err != nil {
		return nil, &domain.DataSourceError{Source: path, Err: fmt.Errorf("reading header: %w", err)}
	}

	var rows []boundaryRow
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &domain.DataSourceError{Source: path, Err: err}
		}

		state := strings.TrimSpace(rec[boundaryColState])
		if _, drop := l.excluded[strings.ToLower(state)]; drop {
			continue
		}
		rows = append(rows, boundaryRow{
			id:    padGeoID(rec[boundaryColGeoID]),
			name:  strings.TrimSpace(rec[boundaryColName]),
			state: state,
			wkt:   rec[boundaryColWKT],
		})
	}
	return rows, nil
}

func (l *Loader) readPopulations(ctx context.Context, path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.DataSourceError{Source: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2

	if _, err := r.Read(); err != nil {
		return nil, &domain.DataSourceError{Source: path, Err: fmt.Errorf("reading header: %w", err)}
	}

	populations := make(map[string]float64)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &domain.DataSourceError{Source: path, Err: err}
		}

		pop, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(rec[1]), ",", ""), 64)
		if err != nil {
			l.logger.Warn("skipping unparseable population row",
				"county_id", rec[0], "value", rec[1])
			continue
		}
		populations[padGeoID(rec[0])] = pop
	}
	return populations, nil
}

// padGeoID zero-pads a GEOID to five digits. CSV tooling routinely strips
// leading zeros from the code, which breaks the join for states 01 through
// 09.
func padGeoID(id string) string {
	id = strings.TrimSpace(id)
	for len(id) < 5 {
		id = "0" + id
	}
	return id
}
