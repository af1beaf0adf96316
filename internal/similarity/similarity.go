// Package similarity provides cosine similarity helpers and the precomputed
// pairwise similarity matrix.
package similarity

import "math"

// Dot returns the dot product of two vectors.
func Dot(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i] * b[i])
	}
	return dot
}

// L2Norm returns the L2 norm of a vector.
func L2Norm(x []float32) float64 {
	var sum float64
	for _, v := range x {
		sum += float64(v * v)
	}
	return math.Sqrt(sum)
}

// Cosine returns the cosine similarity of two vectors, clamped to [0, 1].
// Returns 0 when either vector has zero norm.
func Cosine(a, b []float32) float64 {
	na := L2Norm(a)
	nb := L2Norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	return clamp01(Dot(a, b) / (na * nb))
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
