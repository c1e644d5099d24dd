package utils

import (
	"gonum.org/v1/gonum/mat"
)

// ConditionNumber is the 2-norm condition number from the singular values.
// A failed or rank deficient factorization reports 1e16.
func (m Matrix) ConditionNumber() float64 {
	min, max := m.SingularValues()
	if min < 1e-16 {
		return 1e16
	}
	return max / min
}

func (m Matrix) SingularValues() (min, max float64) {
	if m.IsEmpty() {
		return 1, 1
	}
	var svd mat.SVD
	if !svd.Factorize(m.M, mat.SVDNone) {
		return 0, 1e16
	}
	values := svd.Values(nil)
	if len(values) == 0 {
		return 0, 1e16
	}
	// Singular values are in descending order
	return values[len(values)-1], values[0]
}

// RowSpace returns an orthonormal basis for the row space of m, one basis
// vector per row, dropping directions with singular value below tol.
func (m Matrix) RowSpace(tol float64) (R Matrix) {
	var (
		svd   mat.SVD
		_, nc = m.Dims()
		V     mat.Dense
	)
	if m.IsEmpty() {
		return NewMatrix(0, nc)
	}
	if !svd.Factorize(m.M, mat.SVDThinV) {
		panic("singular value decomposition failed")
	}
	values := svd.Values(nil)
	svd.VTo(&V)
	var rank int
	for _, s := range values {
		if s > tol*values[0] {
			rank++
		}
	}
	R = NewMatrix(rank, nc)
	for i := 0; i < rank; i++ {
		for j := 0; j < nc; j++ {
			R.M.Set(i, j, V.At(j, i))
		}
	}
	return
}
