package similarity

import "fmt"

// ErrOutOfRange reports an index outside the matrix. It signals an internal
// invariant violation in the caller, not a user-facing condition.
var ErrOutOfRange = fmt.Errorf("similarity: index out of range")

// Matrix is the N x N pairwise cosine similarity matrix over a set of
// vectors. It is built eagerly once and is read-only afterward, so lookups
// are safe for unlimited concurrent readers.
type Matrix struct {
	n    int
	rows [][]float64
}

// Build computes the full symmetric matrix. Cost is quadratic in the number
// of vectors and linear in vector length per pair; this is the dominant cost
// of a catalog load and keeps queries down to a row lookup.
func Build(vectors [][]float32) *Matrix {
	n := len(vectors)
	norms := make([]float64, n)
	for i, v := range vectors {
		norms[i] = L2Norm(v)
	}
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		if norms[i] > 0 {
			rows[i][i] = 1
		}
		for j := i + 1; j < n; j++ {
			var sim float64
			if norms[i] > 0 && norms[j] > 0 {
				sim = clamp01(Dot(vectors[i], vectors[j]) / (norms[i] * norms[j]))
			}
			rows[i][j] = sim
			rows[j][i] = sim
		}
	}
	return &Matrix{n: n, rows: rows}
}

// Similarity returns the precomputed similarity between rows i and j.
func (m *Matrix) Similarity(i, j int) (float64, error) {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		return 0, ErrOutOfRange
	}
	return m.rows[i][j], nil
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.n {
		return nil, ErrOutOfRange
	}
	row := make([]float64, m.n)
	copy(row, m.rows[i])
	return row, nil
}

// Size returns the number of rows.
func (m *Matrix) Size() int {
	return m.n
}
