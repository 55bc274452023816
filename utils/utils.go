package utils

import "math"

// Lerp interpolates between a and b. The result equals a at t == 0 and b at t == 1,
// and never passes b when a and b have the same sign.
func Lerp(a, b, t float64) float64 {
	// across zero the weighted form avoids cancellation in b - a
	if (a <= 0 && b >= 0) || (a >= 0 && b <= 0) {
		return t*b + (1-t)*a
	}

	if t == 1 {
		return b
	}

	x := a + t*(b-a)
	if b > a {
		return math.Min(x, b)
	}
	return math.Max(x, b)
}

// FormatFloat rounds f to the given number of decimal places.
func FormatFloat(f float64, round int32) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	scale := math.Pow(10, float64(round))
	return math.Round(f*scale) / scale
}
