package util

import (
	"golang.org/x/exp/constraints"
)

// Ratio calculates the ration that target has in comparison to rangeMin and rangeMax
// Make sure that:
// rangeMin <= target <= rangeMax
// rangeMax - rangeMin != 0
func Ratio(target float64, rangeMin float64, rangeMax float64) float64 {
	return (target - rangeMin) / (rangeMax - rangeMin)
}

// Coerce returns a value that is at least min and at most max, otherwise equal to value
func Coerce[T constraints.Ordered](value T, min T, max T) T {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}

// MapRange re-maps a value from [inMin, inMax] onto [outMin, outMax] using integer math.
// The result is truncated towards inMin, which makes the mapping monotonic and hits both
// ends of the output range exactly. outMin may be greater than outMax to invert the range.
func MapRange(value int, inMin int, inMax int, outMin int, outMax int) int {
	return (value-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}
