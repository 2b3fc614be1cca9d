package storage

import (
	"encoding/binary"
	"fmt"
	"math"

	"notebook-ai/internal/textproc"
)

// EncodeVector packs v as little-endian float32s.
func EncodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(x))
	}
	return buf
}

// DecodeVector unpacks a blob written by EncodeVector.
func DecodeVector(b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("vector blob length %d is not a multiple of 4", len(b))
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v, nil
}

// cosineDistanceBlob backs the cosine_distance SQL function.
func cosineDistanceBlob(a, b []byte) float64 {
	va, err := DecodeVector(a)
	if err != nil {
		return 1
	}
	vb, err := DecodeVector(b)
	if err != nil {
		return 1
	}
	return textproc.CosineDistance(va, vb)
}
