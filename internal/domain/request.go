package domain

// SpreadRequest describes one fire-spread impact computation. Requests are
// constructed per call, validated once, and never mutated.
type SpreadRequest struct {
	Origin   Coordinate `json:"origin"`
	RadiusKm float64    `json:"radius_km"`
	Wind     WindVector `json:"wind"`
}

// Validate checks the request against the input domain. Violations are
// rejected with an InvalidRequestError; nothing is clamped or repaired.
func (r SpreadRequest) Validate() error {
	if r.RadiusKm <= 0 {
		return &InvalidRequestError{Field: "radius_km", Reason: "must be positive"}
	}
	if r.Origin.Lat < -90 || r.Origin.Lat > 90 {
		return &InvalidRequestError{Field: "origin.lat", Reason: "must be in [-90, 90]"}
	}
	if r.Origin.Lon < -180 || r.Origin.Lon > 180 {
		return &InvalidRequestError{Field: "origin.lon", Reason: "must be in [-180, 180]"}
	}
	if r.Wind.Speed < 0 {
		return &InvalidRequestError{Field: "wind.speed", Reason: "must be non-negative"}
	}
	return nil
}
