package utils

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/lapack/lapack64"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a row-major dense matrix with a read-only guard. The guard is
// set on matrices that are handed out from constructed elements.
type Matrix struct {
	M        *mat.Dense
	readOnly bool
	name     string
	nr, nc   int // Shape of an empty matrix, gonum Dense cannot hold it
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if nr == 0 || nc == 0 {
		// gonum refuses zero sized Dense, keep an empty placeholder
		m = &mat.Dense{}
	} else if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v",
				nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, nil)
	}
	R = Matrix{
		M:    m,
		name: "unnamed - hint: pass a variable name to SetReadOnly()",
		nr:   nr,
		nc:   nc,
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int) {
	if m.IsEmpty() {
		return m.nr, m.nc
	}
	return m.M.Dims()
}
func (m Matrix) At(i, j int) float64       { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix             { return m.M.T() }
func (m Matrix) RawMatrix() blas64.General { return m.M.RawMatrix() }
func (m Matrix) IsEmpty() bool             { return m.M == nil || m.M.IsEmpty() }

// DataP returns the row-major backing slice
func (m Matrix) DataP() []float64 {
	if m.IsEmpty() {
		return nil
	}
	return m.M.RawMatrix().Data
}

// Chainable methods (extended)
func (m *Matrix) SetReadOnly(name ...string) Matrix {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m Matrix) Copy() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
	)
	R = NewMatrix(nr, nc)
	if !m.IsEmpty() {
		R.M.Copy(m.M)
	}
	return
}

func (m Matrix) Transpose() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
	)
	R = NewMatrix(nc, nr)
	if !m.IsEmpty() {
		R.M.Copy(m.M.T())
	}
	return
}

func (m Matrix) Mul(A Matrix) (R Matrix) { // Does not change receiver
	var (
		nrM, ncM = m.Dims()
		nrA, ncA = A.Dims()
	)
	if ncM != nrA {
		panic(fmt.Errorf("dimension mismatch in Mul: [%d,%d] x [%d,%d]", nrM, ncM, nrA, ncA))
	}
	R = NewMatrix(nrM, ncA)
	if R.IsEmpty() || ncM == 0 {
		return
	}
	R.M.Mul(m.M, A.M)
	return
}

// Slice returns rows [I,K) and columns [J,L) as a new matrix
func (m Matrix) Slice(I, K, J, L int) (R Matrix) { // Does not change receiver
	R = NewMatrix(K-I, L-J)
	for i := I; i < K; i++ {
		for j := J; j < L; j++ {
			R.M.Set(i-I, j-J, m.M.At(i, j))
		}
	}
	return
}

func (m Matrix) Set(i, j int, val float64) Matrix { // Changes receiver
	m.checkWritable()
	m.M.Set(i, j, val)
	return m
}

func (m Matrix) SetRow(i int, data []float64) Matrix { // Changes receiver
	m.checkWritable()
	m.M.SetRow(i, data)
	return m
}

func (m Matrix) SetCol(j int, data []float64) Matrix { // Changes receiver
	m.checkWritable()
	m.M.SetCol(j, data)
	return m
}

// AssignBlock copies A into the receiver with A's origin at (i0, j0)
func (m Matrix) AssignBlock(i0, j0 int, A Matrix) Matrix { // Changes receiver
	var (
		nr, nc   = m.Dims()
		nrA, ncA = A.Dims()
	)
	m.checkWritable()
	if i0+nrA > nr || j0+ncA > nc {
		panic(fmt.Errorf("block [%d:%d,%d:%d] exceeds matrix dimensions [%d,%d]",
			i0, i0+nrA, j0, j0+ncA, nr, nc))
	}
	for i := 0; i < nrA; i++ {
		copy(m.M.RawRowView(i0 + i)[j0:j0+ncA], A.M.RawRowView(i))
	}
	return m
}

func (m Matrix) Scale(a float64) Matrix { // Changes receiver
	m.checkWritable()
	m.M.Scale(a, m.M)
	return m
}

func (m Matrix) Add(A Matrix) Matrix { // Changes receiver
	m.checkWritable()
	m.M.Add(m.M, A.M)
	return m
}

// Inverse uses an LU factorization with partial pivoting
func (m Matrix) Inverse() (R Matrix, err error) {
	var (
		nr, nc = m.Dims()
	)
	if nr != nc {
		err = fmt.Errorf("unable to invert, matrix is not square: [%d,%d]", nr, nc)
		return
	}
	R = m.Copy()
	if nr == 0 {
		return
	}
	iPiv := make([]int, nr)
	if ok := lapack64.Getrf(R.RawMatrix(), iPiv); !ok {
		err = fmt.Errorf("unable to invert, matrix is singular")
		return
	}
	work := make([]float64, nr*nc)
	if ok := lapack64.Getri(R.RawMatrix(), iPiv, work, nr*nc); !ok {
		err = fmt.Errorf("unable to invert, matrix is singular")
	}
	return
}

func (m Matrix) Row(i int) []float64 {
	var (
		_, nc = m.Dims()
		row   = make([]float64, nc)
	)
	copy(row, m.M.RawRowView(i))
	return row
}

func (m Matrix) Col(j int) []float64 {
	var (
		nr, _ = m.Dims()
		col   = make([]float64, nr)
	)
	for i := range col {
		col[i] = m.M.At(i, j)
	}
	return col
}

// MaxAbsDiff is the largest entrywise distance between two equally shaped matrices
func (m Matrix) MaxAbsDiff(A Matrix) (max float64) {
	var (
		dm, da = m.DataP(), A.DataP()
	)
	if len(dm) != len(da) {
		panic(fmt.Errorf("dimension mismatch: %d vs %d entries", len(dm), len(da)))
	}
	for i, val := range dm {
		if d := val - da[i]; d > max {
			max = d
		} else if -d > max {
			max = -d
		}
	}
	return
}

func (m Matrix) checkWritable() {
	if m.readOnly {
		panic(fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name))
	}
}

func (m Matrix) Print(label ...string) string {
	var (
		name = ""
	)
	if len(label) != 0 {
		name = label[0] + " = "
	}
	if m.IsEmpty() {
		return name + "[]\n"
	}
	pad := fmt.Sprintf("%*s", len(name), "")
	return fmt.Sprintf("%s%v\n", name, mat.Formatted(m.M, mat.Prefix(pad), mat.Squeeze()))
}
