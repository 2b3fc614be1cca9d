package textproc

import "math"

// NormalizeVector returns v scaled to unit L2 norm. A zero or non-finite norm
// yields a zero vector of the same length so NaN never reaches storage.
func NormalizeVector(v []float32) []float32 {
	out := make([]float32, len(v))

	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	norm := math.Sqrt(sum)
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return out
	}

	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

// L2Norm returns the Euclidean length of v.
func L2Norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// CosineDistance returns 1 - cos(a, b). Mismatched lengths and zero vectors
// report 1.
func CosineDistance(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 1
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}
