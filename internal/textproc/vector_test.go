package textproc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeVector(t *testing.T) {
	vectors := [][]float32{
		{3, 4},
		{1, 0, 0},
		{-2, 5, 0.5, 9},
		{1e-6, 2e-6},
		{1e20, 1e20},
	}
	for _, v := range vectors {
		got := NormalizeVector(v)
		assert.Len(t, got, len(v))
		assert.InDelta(t, 1.0, L2Norm(got), 1e-5)
	}

	assert.Equal(t, []float32{0.6, 0.8}, NormalizeVector([]float32{3, 4}))
}

func TestNormalizeVector_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		in   []float32
	}{
		{name: "zero", in: []float32{0, 0, 0}},
		{name: "nan", in: []float32{float32(math.NaN()), 1}},
		{name: "inf", in: []float32{float32(math.Inf(1)), 1}},
		{name: "empty", in: []float32{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeVector(tt.in)
			assert.Len(t, got, len(tt.in))
			for _, x := range got {
				assert.Equal(t, float32(0), x)
			}
		})
	}
}

func TestCosineDistance(t *testing.T) {
	assert.InDelta(t, 0.0, CosineDistance([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 1.0, CosineDistance([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, 2.0, CosineDistance([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.Equal(t, 1.0, CosineDistance([]float32{1}, []float32{1, 2}))
	assert.Equal(t, 1.0, CosineDistance([]float32{0, 0}, []float32{1, 2}))
}
