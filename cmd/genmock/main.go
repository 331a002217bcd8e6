// Command genmock generates a synthetic county dataset for local development
// and testing: a square grid of counties with deterministic populations,
// written in the same CSV layout the service loads in production.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -out-dir data/mock \
//	  -grid 6 \
//	  -origin-lat 36.0 -origin-lon -98.0 \
//	  -cell-deg 0.5
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out-dir", "data/mock", "output directory for generated CSVs")
	grid := flag.Int("grid", 6, "grid dimension; generates grid x grid counties")
	originLat := flag.Float64("origin-lat", 36.0, "latitude of the grid's southwest corner")
	originLon := flag.Float64("origin-lon", -98.0, "longitude of the grid's southwest corner")
	cellDeg := flag.Float64("cell-deg", 0.5, "county cell size in degrees")
	flag.Parse()

	if *grid < 1 || *grid > 99 {
		return fmt.Errorf("-grid must be between 1 and 99")
	}

	boundaries := filepath.Join(*outDir, "county_borders.csv")
	population := filepath.Join(*outDir, "county_population.csv")

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}
	if err := writeBoundaries(boundaries, *grid, *originLat, *originLon, *cellDeg); err != nil {
		return fmt.Errorf("writing boundaries: %w", err)
	}
	if err := writePopulation(population, *grid); err != nil {
		return fmt.Errorf("writing population: %w", err)
	}

	total := (*grid) * (*grid)
	log.Printf("wrote %d counties to %s and %s", total, boundaries, population)
	return nil
}

// cellGeoID assigns synthetic GEOIDs under the unused state prefix 90.
func cellGeoID(row, col, grid int) string {
	return fmt.Sprintf("90%03d", row*grid+col+1)
}

// cellPopulation is a deterministic population that varies across the grid
// so ranking tests have distinct values: denser toward the grid center.
func cellPopulation(row, col, grid int) int {
	center := float64(grid-1) / 2
	dr := float64(row) - center
	dc := float64(col) - center
	dist2 := dr*dr + dc*dc
	return 5000 + int(250000/(1+dist2))
}

func writeBoundaries(path string, grid int, originLat, originLon, cellDeg float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"GEOID", "COUNTY", "STATE", "BORDERS"}); err != nil {
		return err
	}

	for row := 0; row < grid; row++ {
		for col := 0; col < grid; col++ {
			south := originLat + float64(row)*cellDeg
			west := originLon + float64(col)*cellDeg
			north := south + cellDeg
			east := west + cellDeg

			wkt := fmt.Sprintf("POLYGON ((%g %g, %g %g, %g %g, %g %g, %g %g))",
				west, south, east, south, east, north, west, north, west, south)

			rec := []string{
				cellGeoID(row, col, grid),
				fmt.Sprintf("Mock County %c%d", 'A'+row, col+1),
				"Mockland",
				wkt,
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func writePopulation(path string, grid int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"GEOID", "POP_ESTIMATE_2023"}); err != nil {
		return err
	}
	for row := 0; row < grid; row++ {
		for col := 0; col < grid; col++ {
			rec := []string{
				cellGeoID(row, col, grid),
				strconv.Itoa(cellPopulation(row, col, grid)),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}
