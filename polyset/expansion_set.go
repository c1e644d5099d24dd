// Package polyset builds orthonormal expansion sets on the reference cells
// and the polynomial spaces expressed over them. Tabulations of any
// derivative order are produced from derivative matrices (Dmats) obtained by
// L2 projection of the expansion's first derivatives back onto itself.
package polyset

import (
	"fmt"

	"github.com/notargets/gobasis/quadrature"
	"github.com/notargets/gobasis/reference"
	"github.com/notargets/gobasis/utils"
)

type ExpansionSet struct {
	cell    *reference.Cell
	degree  int
	basis   expansionBasis
	rule    *quadrature.Rule
	vq      utils.Matrix   // expansion at the rule points [member, point]
	massInv utils.Matrix
	dmats   []utils.Matrix // d/dx_d phi_i = sum_j Dmats[d][i][j] phi_j
}

func NewExpansionSet(cell *reference.Cell, degree int) (es *ExpansionSet, err error) {
	if degree < 0 {
		err = fmt.Errorf("expansion degree must be >= 0, have %d", degree)
		return
	}
	es = &ExpansionSet{
		cell:   cell,
		degree: degree,
	}
	switch cell.Shape() {
	case reference.Interval:
		es.basis = legendreBasis{N: degree}
	case reference.Triangle:
		es.basis = dubinerBasis{N: degree}
	case reference.Tetrahedron:
		es.basis = pkdBasis{N: degree}
	case reference.Quadrilateral:
		es.basis = tensorBasis{N: degree}
	default:
		err = fmt.Errorf("%w: no expansion on %v", reference.ErrShape, cell.Shape())
		return
	}
	if es.rule, err = quadrature.Make(cell, 2*degree); err != nil {
		return
	}
	var (
		pts = es.rule.Points()
		w   = es.rule.Weights()
		V   = es.basis.values(pts)
		Vw  = V.Copy()
		n   = es.basis.size()
	)
	for i := 0; i < n; i++ {
		for q := range w {
			Vw.M.Set(i, q, V.At(i, q)*w[q])
		}
	}
	es.vq = V
	VwT := Vw.Transpose()
	mass := V.Mul(VwT)
	if es.massInv, err = mass.Inverse(); err != nil {
		err = fmt.Errorf("expansion mass matrix on %v: %w", cell.Shape(), err)
		return
	}
	for _, G := range es.basis.gradients(pts) {
		B := G.Mul(VwT)
		es.dmats = append(es.dmats, B.Mul(es.massInv))
	}
	return
}

func (es *ExpansionSet) Cell() *reference.Cell { return es.cell }

func (es *ExpansionSet) Degree() int { return es.degree }

func (es *ExpansionSet) Size() int { return es.basis.size() }

// Rule is the quadrature used for projections onto the expansion
func (es *ExpansionSet) Rule() *quadrature.Rule { return es.rule }

func (es *ExpansionSet) Dmats() (D []utils.Matrix) {
	for _, dm := range es.dmats {
		D = append(D, dm.Copy())
	}
	return
}

// Values evaluates the expansion [member, point]
func (es *ExpansionSet) Values(pts [][]float64) utils.Matrix {
	if len(pts) == 0 {
		return utils.NewMatrix(es.Size(), 0)
	}
	return es.basis.values(pts)
}

// Tabulate returns every derivative of the expansion with |alpha| <= order
// at pts, each as a [member, point] matrix
func (es *ExpansionSet) Tabulate(order int, pts [][]float64) (tab map[MultiIndex]utils.Matrix) {
	var (
		sd = es.cell.SpatialDimension()
	)
	tab = make(map[MultiIndex]utils.Matrix)
	for _, alpha := range AllMultiIndices(sd, order) {
		if len(pts) == 0 {
			tab[alpha] = utils.NewMatrix(es.Size(), 0)
			continue
		}
		if alpha.Order() == 0 {
			tab[alpha] = es.basis.values(pts)
			continue
		}
		// Graded order guarantees the parent is already present
		parent, d := alpha.Lower()
		tab[alpha] = es.dmats[d].Mul(tab[parent])
	}
	return
}

// Project returns the coefficients of the L2 projection of the ncomp valued
// function f onto the expansion, component-major: c*Size() + j
func (es *ExpansionSet) Project(f func(x []float64) []float64, ncomp int) (coeffs []float64) {
	var (
		pts  = es.rule.Points()
		vals = make([][]float64, ncomp)
	)
	for c := range vals {
		vals[c] = make([]float64, len(pts))
	}
	for q, p := range pts {
		for c, v := range f(p) {
			vals[c][q] = v
		}
	}
	return es.ProjectValues(vals)
}

// ProjectValues projects a function given by its values [component][point]
// at the points of Rule()
func (es *ExpansionSet) ProjectValues(vals [][]float64) (coeffs []float64) {
	var (
		n     = es.Size()
		ncomp = len(vals)
		rhs   = utils.NewMatrix(n, ncomp)
		prod  = make([]float64, es.rule.Len())
	)
	if ncomp == 0 {
		return
	}
	for c, vc := range vals {
		col := make([]float64, n)
		for j := range col {
			for q, v := range vc {
				prod[q] = v * es.vq.At(j, q)
			}
			col[j] = es.rule.Integrate(prod)
		}
		rhs.SetCol(c, col)
	}
	sol := es.massInv.Mul(rhs)
	coeffs = make([]float64, 0, n*ncomp)
	for c := 0; c < ncomp; c++ {
		coeffs = append(coeffs, sol.Col(c)...)
	}
	return
}
