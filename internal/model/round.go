package model

import "math"

// Round rounds v to the given number of decimal places. Artifact fields are
// rounded before serialization so diffs between pipeline runs stay readable.
func Round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
