// Command validate performs integrity checks on a county dataset before it
// is deployed with the service: CSV structure, WKT parseability, projection
// sanity, population join coverage, and an end-to-end impact smoke test.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -counties data/county_borders.csv \
//	  -population data/county_population.csv
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/emberwatch/fire-impact-service/internal/county"
	"github.com/emberwatch/fire-impact-service/internal/domain"
	"github.com/emberwatch/fire-impact-service/internal/geo"
	"github.com/emberwatch/fire-impact-service/internal/impact"
	"github.com/emberwatch/fire-impact-service/internal/observability"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	countiesPath := flag.String("counties", "", "path to the county boundaries CSV")
	populationPath := flag.String("population", "", "path to the county population CSV")
	flag.Parse()

	if *countiesPath == "" || *populationPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*countiesPath, *populationPath); code != 0 {
		os.Exit(code)
	}
}

func run(countiesPath, populationPath string) int {
	// Fixed clock for reproducible smoke-test output.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	fmt.Println("=== County Dataset Validation ===")
	fmt.Println()

	boundaries, err := readCSV(countiesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load boundaries: %v\n", err)
		return 1
	}
	populations, err := readCSV(populationPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load population: %v\n", err)
		return 1
	}

	set, err := loadSet(countiesPath, populationPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load dataset: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateStructure(boundaries, populations),
		validateJoin(boundaries, populations),
		validateGeometry(set),
		validateImpactSmoke(countiesPath, populationPath, set),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Rows: %d boundary, %d population; %d counties loaded\n",
		len(boundaries), len(populations), set.Len())

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	all, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(all) < 2 {
		return nil, fmt.Errorf("no data rows in %s", path)
	}
	return all[1:], nil
}

func loadSet(countiesPath, populationPath string) (*county.Set, error) {
	proj, err := geo.NewConusProjection()
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	loader := county.NewLoader(proj, nil, logger)
	return loader.Load(context.Background(), countiesPath, populationPath)
}

// ── Phase 1: Structure ──
// Field counts, non-empty identifiers, numeric populations.

func validateStructure(boundaries, populations [][]string) *phase {
	p := &phase{name: "Phase 1: CSV Structure"}

	for i, row := range boundaries {
		if len(row) != 4 {
			p.errorf("boundary row %d: has %d fields, want 4", i+2, len(row))
			continue
		}
		if row[0] == "" {
			p.errorf("boundary row %d: empty GEOID", i+2)
		}
		if row[1] == "" {
			p.errorf("boundary row %d: empty county name", i+2)
		}
	}

	for i, row := range populations {
		if len(row) != 2 {
			p.errorf("population row %d: has %d fields, want 2", i+2, len(row))
		}
	}
	return p
}

// ── Phase 2: Join coverage ──
// Every boundary GEOID should have a population row; orphans are suspicious.

func validateJoin(boundaries, populations [][]string) *phase {
	p := &phase{name: "Phase 2: Population Join"}

	popIDs := make(map[string]bool, len(populations))
	for _, row := range populations {
		if len(row) == 2 {
			popIDs[pad5(row[0])] = true
		}
	}

	missing := 0
	for _, row := range boundaries {
		if len(row) != 4 {
			continue
		}
		if !popIDs[pad5(row[0])] {
			missing++
			if missing <= 10 {
				p.errorf("GEOID %s (%s) has no population row", pad5(row[0]), row[1])
			}
		}
	}
	if missing > 10 {
		p.errorf("... and %d more counties without population", missing-10)
	}
	return p
}

// ── Phase 3: Geometry ──
// Everything that survived the load must have a usable planar footprint.

func validateGeometry(set *county.Set) *phase {
	p := &phase{name: "Phase 3: Geometry Sanity"}

	for _, c := range set.All() {
		if c.Area <= 0 {
			p.errorf("county %s (%s): non-positive planar area %g", c.ID, c.Name, c.Area)
			continue
		}
		// Real counties range from ~1e7 (Kalawao) to ~5e10 (San Bernardino).
		if c.Area > 1e12 {
			p.errorf("county %s (%s): implausible planar area %g m2", c.ID, c.Name, c.Area)
		}
		b := c.Bounds()
		if b.Max.X <= b.Min.X || b.Max.Y <= b.Min.Y {
			p.errorf("county %s (%s): degenerate bounds", c.ID, c.Name)
		}
	}
	return p
}

// ── Phase 4: Impact smoke test ──
// A computation centered on a county must include it, the totals must add
// up, and two identical runs must agree.

func validateImpactSmoke(countiesPath, populationPath string, set *county.Set) *phase {
	p := &phase{name: "Phase 4: Impact Smoke Test"}
	if set.Len() == 0 {
		p.errorf("empty county set, nothing to smoke test")
		return p
	}

	proj, err := geo.NewConusProjection()
	if err != nil {
		p.errorf("projection: %v", err)
		return p
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	loader := county.NewLoader(proj, nil, logger)
	store := county.NewStore(func(ctx context.Context) (*county.Set, error) {
		return loader.Load(ctx, countiesPath, populationPath)
	})
	agg := impact.NewAggregator(proj, geo.NewSpreadEngine(proj), store, logger,
		observability.NewMetricsForTesting())

	target := set.All()[0]
	origin, err := proj.ToGeographic(target.Centroid())
	if err != nil {
		p.errorf("unproject centroid of %s: %v", target.ID, err)
		return p
	}

	req := domain.SpreadRequest{
		Origin:   origin,
		RadiusKm: 20,
		Wind:     domain.WindVector{Speed: 25, DirectionDeg: 270},
	}

	first, err := agg.Compute(context.Background(), req)
	if err != nil {
		p.errorf("compute: %v", err)
		return p
	}

	found := false
	var sum float64
	for _, c := range first.Counties {
		if c.CountyID == target.ID {
			found = true
		}
		sum += c.ContributingPopulation
		if c.IntersectionFraction < 0 || c.IntersectionFraction > 1 {
			p.errorf("county %s: fraction %g outside [0, 1]", c.CountyID, c.IntersectionFraction)
		}
	}
	if !found {
		p.errorf("county %s not affected by a spread centered on it", target.ID)
	}
	if math.Abs(sum-first.TotalContributingPopulation) > 1e-6 {
		p.errorf("total %g does not equal sum of contributions %g",
			first.TotalContributingPopulation, sum)
	}

	second, err := agg.Compute(context.Background(), req)
	if err != nil {
		p.errorf("second compute: %v", err)
		return p
	}
	if len(first.Counties) != len(second.Counties) {
		p.errorf("non-deterministic county count: %d vs %d", len(first.Counties), len(second.Counties))
	} else {
		for i := range first.Counties {
			if first.Counties[i] != second.Counties[i] {
				p.errorf("non-deterministic result at rank %d: %s vs %s",
					i, first.Counties[i].CountyID, second.Counties[i].CountyID)
				break
			}
		}
	}

	return p
}

func pad5(id string) string {
	for len(id) < 5 {
		id = "0" + id
	}
	return id
}
