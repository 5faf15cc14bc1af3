package domain

import "math"

// EuclideanDistance returns the L2 distance between two descriptors
// callers must validate lengths first
func EuclideanDistance(a, b Descriptor) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
