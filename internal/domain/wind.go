package domain

import "math"

// WindVector is a wind observation in the meteorological convention:
// DirectionDeg is the compass bearing the wind blows FROM.
type WindVector struct {
	Speed        float64 `json:"speed"`
	DirectionDeg float64 `json:"direction_deg"`
}

// BlowsToDeg returns the compass bearing the wind blows toward, i.e. the
// direction fire spread is biased along. Normalized to [0, 360).
func (w WindVector) BlowsToDeg() float64 {
	deg := math.Mod(w.DirectionDeg+180, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// StretchFactor returns the downwind elongation multiplier for the spread
// ellipse. It is 1.0 in calm air and grows linearly but modestly with speed,
// so high winds bias the ellipse without unbounded runaway:
//
//	speed  0 → 1.0×    speed 30 → 1.3×    speed 60 → 1.6×
func (w WindVector) StretchFactor() float64 {
	return 1.0 + w.Speed/100.0
}
