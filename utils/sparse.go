package utils

import (
	"fmt"
	"sort"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// DOK is the assembly form of a sparse matrix, converted to CSR once filled
type DOK struct {
	M        *sparse.DOK
	readOnly bool
	name     string
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{
		sparse.NewDOK(nr, nc),
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }

func (m DOK) Set(i, j int, val float64) DOK { // Changes receiver
	m.checkWritable()
	m.M.Set(i, j, val)
	return m
}

func (m DOK) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}

func (m DOK) ToCSR() CSR {
	return CSR{
		M:        m.M.ToCSR(),
		readOnly: true,
		name:     m.name,
	}
}

// CSR is the read side of a sparse matrix
type CSR struct {
	M        *sparse.CSR
	readOnly bool
	name     string
}

func (m CSR) Dims() (r, c int)    { return m.M.Dims() }
func (m CSR) At(i, j int) float64 { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix       { return m.M.T() }
func (m CSR) NNZ() int            { return m.M.NNZ() }

// RowNonZeros lists the column indices of the stored entries of row i
func (m CSR) RowNonZeros(i int) (cols Index) {
	raw := m.M.RawMatrix()
	for k := raw.Indptr[i]; k < raw.Indptr[i+1]; k++ {
		cols = append(cols, raw.Ind[k])
	}
	sort.Ints(cols)
	return
}

// ColumnSums is the vector of column sums
func (m CSR) ColumnSums() (sums []float64) {
	var (
		_, nc = m.Dims()
		raw   = m.M.RawMatrix()
	)
	sums = make([]float64, nc)
	for k, j := range raw.Ind {
		sums[j] += raw.Data[k]
	}
	return
}
