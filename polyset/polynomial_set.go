package polyset

import (
	"errors"
	"fmt"

	"github.com/notargets/gobasis/reference"
	"github.com/notargets/gobasis/utils"
)

var ErrIncompatible = errors.New("incompatible polynomial sets")

// PolynomialSet is a list of members, each a (possibly vector valued)
// polynomial given by coefficients over an ExpansionSet. A member's
// coefficient row is component-major: entry c*Size()+j multiplies expansion
// member j in value component c.
type PolynomialSet struct {
	expansion  *ExpansionSet
	degree     int
	valueShape []int
	coeffs     utils.Matrix
}

// NewONPolynomialSet is the orthonormal basis of P_degree (Q_degree on the
// quadrilateral) with the given value shape. Vector members are ordered
// component-major.
func NewONPolynomialSet(cell *reference.Cell, degree int, valueShape ...int) (ps *PolynomialSet, err error) {
	var es *ExpansionSet
	if es, err = NewExpansionSet(cell, degree); err != nil {
		return
	}
	var (
		ncomp = shapeSize(valueShape)
		n     = es.Size() * ncomp
		C     = utils.NewMatrix(n, n)
	)
	for i := 0; i < n; i++ {
		C.Set(i, i, 1)
	}
	return NewPolynomialSet(es, degree, valueShape, C)
}

func NewPolynomialSet(es *ExpansionSet, degree int, valueShape []int, coeffs utils.Matrix) (ps *PolynomialSet, err error) {
	var (
		_, nc = coeffs.Dims()
		ncomp = shapeSize(valueShape)
	)
	if !coeffs.IsEmpty() && nc != ncomp*es.Size() {
		err = fmt.Errorf("%w: expected %d coefficients per member, have %d",
			ErrIncompatible, ncomp*es.Size(), nc)
		return
	}
	if degree > es.Degree() {
		err = fmt.Errorf("%w: degree %d exceeds expansion degree %d",
			ErrIncompatible, degree, es.Degree())
		return
	}
	ps = &PolynomialSet{
		expansion:  es,
		degree:     degree,
		valueShape: append([]int(nil), valueShape...),
		coeffs:     coeffs,
	}
	return
}

func shapeSize(shape []int) (n int) {
	n = 1
	for _, s := range shape {
		n *= s
	}
	return
}

func (ps *PolynomialSet) Cell() *reference.Cell { return ps.expansion.Cell() }

func (ps *PolynomialSet) Expansion() *ExpansionSet { return ps.expansion }

func (ps *PolynomialSet) Cardinality() int {
	nr, _ := ps.coeffs.Dims()
	return nr
}

func (ps *PolynomialSet) ValueShape() []int { return append([]int(nil), ps.valueShape...) }

func (ps *PolynomialSet) ValueSize() int { return shapeSize(ps.valueShape) }

// Degree is the largest total degree of any member
func (ps *PolynomialSet) Degree() int { return ps.degree }

// EmbeddedDegree is the degree of the expansion the members are written in
func (ps *PolynomialSet) EmbeddedDegree() int { return ps.expansion.Degree() }

func (ps *PolynomialSet) Coefficients() utils.Matrix { return ps.coeffs.Copy() }

// Take keeps the listed members in the given order
func (ps *PolynomialSet) Take(indices utils.Index) (sub *PolynomialSet) {
	var (
		_, nc = ps.coeffs.Dims()
		C     = utils.NewMatrix(len(indices), nc)
	)
	for i, m := range indices {
		C.SetRow(i, ps.coeffs.Row(m))
	}
	return &PolynomialSet{
		expansion:  ps.expansion,
		degree:     ps.degree,
		valueShape: ps.ValueShape(),
		coeffs:     C,
	}
}

// Tabulate evaluates all derivatives with |alpha| <= order of every member
func (ps *PolynomialSet) Tabulate(order int, pts [][]float64) (tab Tabulation, err error) {
	if order < 0 {
		err = fmt.Errorf("derivative order must be >= 0, have %d", order)
		return
	}
	sd := ps.Cell().SpatialDimension()
	for _, p := range pts {
		if len(p) != sd {
			err = fmt.Errorf("%w: point %v has %d coordinates on a %d dimensional cell",
				reference.ErrShape, p, len(p), sd)
			return
		}
	}
	var (
		M     = ps.Cardinality()
		ncomp = ps.ValueSize()
		n     = ps.expansion.Size()
		np    = len(pts)
	)
	tab = make(Tabulation)
	for alpha, E := range ps.expansion.Tabulate(order, pts) {
		T := NewTable(M, ncomp, np)
		tab[alpha] = T
		if np == 0 || M == 0 {
			continue
		}
		for c := 0; c < ncomp; c++ {
			R := ps.coeffs.Slice(0, M, c*n, (c+1)*n).Mul(E)
			for m := 0; m < M; m++ {
				copy(T.data[T.index(m, c, 0):T.index(m, c, 0)+np], R.M.RawRowView(m))
			}
		}
	}
	return
}

// UnionNormalized is an orthonormal basis, in coefficient space, of the span
// of the members of both sets
func UnionNormalized(a, b *PolynomialSet) (u *PolynomialSet, err error) {
	if a.expansion != b.expansion {
		err = fmt.Errorf("%w: union requires a shared expansion set", ErrIncompatible)
		return
	}
	if a.ValueSize() != b.ValueSize() {
		err = fmt.Errorf("%w: value sizes %d and %d", ErrIncompatible, a.ValueSize(), b.ValueSize())
		return
	}
	var (
		na, nc = a.coeffs.Dims()
		nb, _  = b.coeffs.Dims()
		stack  = utils.NewMatrix(na+nb, nc)
	)
	stack.AssignBlock(0, 0, a.coeffs)
	stack.AssignBlock(na, 0, b.coeffs)
	degree := a.degree
	if b.degree > degree {
		degree = b.degree
	}
	return NewPolynomialSet(a.expansion, degree, a.valueShape, stack.RowSpace(1e-10))
}
