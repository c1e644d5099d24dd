package element

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gobasis/utils"
)

// Solver inverts the square dual matrix of a construction
type Solver interface {
	Invert(V utils.Matrix) (utils.Matrix, error)
}

// LUSolver inverts with an LU factorization with partial pivoting
type LUSolver struct{}

func (LUSolver) Invert(V utils.Matrix) (utils.Matrix, error) { return V.Inverse() }

// SVDSolver inverts through a singular value decomposition and rejects
// matrices whose smallest singular value falls below Tol times the largest
type SVDSolver struct {
	Tol float64
}

func (s SVDSolver) Invert(V utils.Matrix) (R utils.Matrix, err error) {
	var (
		nr, nc = V.Dims()
		svd    mat.SVD
		U, W   mat.Dense
	)
	if nr != nc {
		err = fmt.Errorf("unable to invert, matrix is not square: [%d,%d]", nr, nc)
		return
	}
	if nr == 0 {
		return utils.NewMatrix(0, 0), nil
	}
	if !svd.Factorize(V.M, mat.SVDFull) {
		err = fmt.Errorf("singular value decomposition failed")
		return
	}
	values := svd.Values(nil)
	if values[nr-1] <= s.Tol*values[0] {
		err = fmt.Errorf("unable to invert, singular values span [%g,%g]", values[nr-1], values[0])
		return
	}
	svd.UTo(&U)
	svd.VTo(&W)
	// V^-1 = W S^-1 U^T
	for j := 0; j < nr; j++ {
		for i := 0; i < nr; i++ {
			W.Set(i, j, W.At(i, j)/values[j])
		}
	}
	R = utils.NewMatrix(nr, nr)
	R.M.Mul(&W, U.T())
	return
}
