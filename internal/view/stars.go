package view

import (
	"math"
	"strings"
)

// Stars renders a rating as filled star glyphs, one per point after
// round-half-up (4.4 -> 4 stars, 4.6 -> 5), clamped to [0, 5].
func Stars(rating float64) string {
	n := int(math.Floor(rating + 0.5))
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("★", n)
}
