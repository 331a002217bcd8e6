package domain

import (
	"strconv"
	"strings"
)

// Coordinate is a WGS-84 latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the coordinate lies in the WGS-84 domain.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// ParseLatLon converts a directional coordinate string such as "32.95N" or
// "100.53W" into signed decimal degrees. N and E are positive, S and W are
// negative; the hemisphere letter is case-insensitive. The function is pure
// and performs no unit conversion.
func ParseLatLon(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &ParseError{Input: s, Reason: "empty string"}
	}

	hemi := s[len(s)-1]
	magnitude, err := strconv.ParseFloat(strings.TrimSpace(s[:len(s)-1]), 64)
	if err != nil {
		return 0, &ParseError{Input: s, Reason: "no numeric prefix"}
	}

	switch hemi {
	case 'N', 'n', 'E', 'e':
		return magnitude, nil
	case 'S', 's', 'W', 'w':
		return -magnitude, nil
	default:
		return 0, &ParseError{Input: s, Reason: "hemisphere must be one of N, S, E, W"}
	}
}

// ParseCoordinate parses a combined directional pair such as
// "32.95N 100.53W" or "32.95N,100.53W" into a Coordinate. The latitude
// component comes first, matching the upstream dataset layout.
func ParseCoordinate(s string) (Coordinate, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 2 {
		return Coordinate{}, &ParseError{Input: s, Reason: "expected two components"}
	}

	lat, err := ParseLatLon(fields[0])
	if err != nil {
		return Coordinate{}, err
	}
	lon, err := ParseLatLon(fields[1])
	if err != nil {
		return Coordinate{}, err
	}

	c := Coordinate{Lat: lat, Lon: lon}
	if !c.Valid() {
		return Coordinate{}, &ParseError{Input: s, Reason: "coordinate out of range"}
	}
	return c, nil
}
