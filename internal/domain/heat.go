package domain

import "fmt"

// Heat normalizes an affected fraction into a presentation intensity.
// Input outside [0, 1] is clamped; the mapping is monotone with Heat(0) = 0
// and Heat(1) = 1. The renderer turns this into a color scale.
func Heat(fraction float64) float64 {
	if fraction < 0 {
		return 0
	}
	if fraction > 1 {
		return 1
	}
	return fraction
}

// HeatColor maps a heat value to the renderer's red-scale hex color:
// white at 0, saturated red at 1.
func HeatColor(heat float64) string {
	h := Heat(heat)
	g := int(255 * (1 - h))
	return fmt.Sprintf("#ff%02x%02x", g, g)
}
