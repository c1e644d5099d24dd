package families

import (
	"github.com/notargets/gobasis/element"
	"github.com/notargets/gobasis/functional"
	"github.com/notargets/gobasis/polyset"
	"github.com/notargets/gobasis/reference"
	"github.com/notargets/gobasis/utils"
)

var _ element.Element = (*Serendipity)(nil)

// monomial is Coef * x^Px * y^Py
type monomial struct {
	Coef   float64
	Px, Py int
}

type poly2 []monomial

func linear(c, cx, cy float64) poly2 {
	return poly2{{c, 0, 0}, {cx, 1, 0}, {cy, 0, 1}}
}

func (p poly2) mul(q poly2) (r poly2) {
	for _, a := range p {
		for _, b := range q {
			r = append(r, monomial{a.Coef * b.Coef, a.Px + b.Px, a.Py + b.Py})
		}
	}
	return
}

func product(factors ...poly2) (r poly2) {
	r = poly2{{1, 0, 0}}
	for _, f := range factors {
		r = r.mul(f)
	}
	return
}

func fallingFactorial(p, n int) float64 {
	f := 1.
	for i := 0; i < n; i++ {
		f *= float64(p - i)
	}
	return f
}

// eval is d^a/dx^a d^b/dy^b p at (x, y)
func (p poly2) eval(a, b int, x, y float64) (val float64) {
	for _, m := range p {
		if m.Px < a || m.Py < b || m.Coef == 0 {
			continue
		}
		val += m.Coef * fallingFactorial(m.Px, a) * fallingFactorial(m.Py, b) *
			utils.POW(x, m.Px-a) * utils.POW(y, m.Py-b)
	}
	return
}

// Serendipity is the quadratic serendipity element on the quadrilateral. Its
// eight basis functions are closed form cubics on the unit square, one per
// vertex and one per edge, evaluated through the map x = (r+1)/2.
type Serendipity struct {
	cell  *reference.Cell
	dual  *functional.DualSet
	basis []poly2
}

func NewSerendipity(cell *reference.Cell) (s *Serendipity, err error) {
	if err = requireShape(cell, "Serendipity", reference.Quadrilateral); err != nil {
		return
	}
	var (
		em *functional.EntityDofMap
		ds *functional.DualSet
	)
	em, err = functional.FromLists(cell, map[int]map[int][]int{
		0: {0: {0}, 1: {1}, 2: {2}, 3: {3}},
		1: {0: {4}, 1: {5}, 2: {6}, 3: {7}},
	})
	if err != nil {
		return
	}
	if ds, err = functional.NewDualSet(cell, nil, em); err != nil {
		return
	}
	var (
		oneMinusX = linear(1, -1, 0)
		oneMinusY = linear(1, 0, -1)
		x         = linear(0, 1, 0)
		y         = linear(0, 0, 1)
	)
	s = &Serendipity{
		cell: cell,
		dual: ds,
		basis: []poly2{
			product(oneMinusX, oneMinusY, linear(1, -1, -1)),
			product(oneMinusX, y, linear(0, -1, 1)),
			product(x, oneMinusY, linear(0, 1, -1)),
			product(x, y, linear(-1, 1, 1)),
			product(oneMinusX, oneMinusY, y),
			product(x, oneMinusY, y),
			product(oneMinusX, x, oneMinusY),
			product(oneMinusX, x, y),
		},
	}
	return
}

func (s *Serendipity) Name() string { return "S2" }

func (s *Serendipity) Cell() *reference.Cell { return s.cell }

// Degree is the largest total degree of the basis, x^2 y terms included
func (s *Serendipity) Degree() int { return 3 }

func (s *Serendipity) SpaceDimension() int { return len(s.basis) }

func (s *Serendipity) ValueShape() []int { return nil }

func (s *Serendipity) ValueSize() int { return 1 }

func (s *Serendipity) Mapping() []element.Mapping { return []element.Mapping{element.Affine} }

func (s *Serendipity) DualSet() *functional.DualSet { return s.dual }

func (s *Serendipity) EntityDofs() *functional.EntityDofMap { return s.dual.EntityDofs() }

func (s *Serendipity) Tabulate(order int, pts [][]float64, entity *reference.Entity) (tab polyset.Tabulation, err error) {
	if err = element.CheckOrder(order); err != nil {
		return
	}
	var cellPts [][]float64
	if cellPts, err = element.PullBack(s.cell, pts, entity); err != nil {
		return
	}
	tab = make(polyset.Tabulation)
	for _, alpha := range polyset.AllMultiIndices(2, order) {
		T := polyset.NewTable(len(s.basis), 1, len(cellPts))
		tab[alpha] = T
		if len(cellPts) == 0 {
			continue
		}
		for i, bf := range s.basis {
			for p, r := range cellPts {
				T.Set(i, 0, p, bf.eval(alpha[0], alpha[1], 0.5*(r[0]+1), 0.5*(r[1]+1)))
			}
		}
		// Chain rule of x = (r+1)/2
		T.Matrix().Scale(utils.POW(0.5, alpha.Order()))
	}
	return
}
