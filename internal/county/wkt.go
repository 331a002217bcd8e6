package county

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ctessum/geom"
)

// parseWKT decodes a POLYGON or MULTIPOLYGON well-known-text string into a
// single geom.Polygon, one entry per ring. The boundary dataset stores every
// county as one of these two types; anything else is rejected. Coordinates
// are in WKT order, longitude then latitude.
func parseWKT(s string) (geom.Polygon, error) {
	s = strings.TrimSpace(s)
	upper := strings.ToUpper(s)
	if !strings.HasPrefix(upper, "MULTIPOLYGON") && !strings.HasPrefix(upper, "POLYGON") {
		return nil, fmt.Errorf("unsupported WKT type in %q", truncate(s, 40))
	}

	var poly geom.Polygon
	depth := 0
	start := -1
	for i, r := range s {
		switch r {
		case '(':
			depth++
			start = i + 1
		case ')':
			if depth == 0 {
				return nil, fmt.Errorf("unbalanced parentheses in WKT")
			}
			if start >= 0 && i > start {
				ring, err := parseRing(s[start:i])
				if err != nil {
					return nil, err
				}
				poly = append(poly, ring)
			}
			start = -1
			depth--
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced parentheses in WKT")
	}
	if len(poly) == 0 {
		return nil, fmt.Errorf("WKT contains no rings")
	}
	return poly, nil
}

func parseRing(s string) ([]geom.Point, error) {
	pairs := strings.Split(s, ",")
	if len(pairs) < 3 {
		return nil, fmt.Errorf("ring has %d points, need at least 3", len(pairs))
	}

	ring := make([]geom.Point, 0, len(pairs))
	for _, pair := range pairs {
		fields := strings.Fields(pair)
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed coordinate pair %q", strings.TrimSpace(pair))
		}
		lon, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("bad longitude %q", fields[0])
		}
		lat, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("bad latitude %q", fields[1])
		}
		ring = append(ring, geom.Point{X: lon, Y: lat})
	}
	return ring, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
