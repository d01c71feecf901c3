// Package similarity builds the read-only cosine similarity indexes.
//
// Both indexes keep a dense row-major matrix over arena positions; translation
// between ids and positions lives in the catalog and the rating store pivot.
package similarity

import (
	"context"
	"math"
)

// Matrix is a dense symmetric n x n similarity matrix.
type Matrix struct {
	n      int
	values []float64
}

// At returns the similarity between positions i and j.
func (m *Matrix) At(i, j int) float64 { return m.values[i*m.n+j] }

// Row returns the similarities of position i against every position.
func (m *Matrix) Row(i int) []float64 { return m.values[i*m.n : (i+1)*m.n] }

// Size returns n.
func (m *Matrix) Size() int { return m.n }

// Cosine returns the cosine similarity of a and b, 0 when either is a zero vector.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// pairwise computes the cosine matrix of the given row vectors.
// The context is checked once per row.
func pairwise(ctx context.Context, vectors [][]float64) (*Matrix, error) {
	n := len(vectors)
	m := &Matrix{n: n, values: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for j := i; j < n; j++ {
			s := Cosine(vectors[i], vectors[j])
			m.values[i*n+j] = s
			m.values[j*n+i] = s
		}
	}
	return m, nil
}
