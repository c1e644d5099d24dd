package families

import (
	"fmt"

	"github.com/notargets/gobasis/element"
	"github.com/notargets/gobasis/functional"
	"github.com/notargets/gobasis/polyset"
	"github.com/notargets/gobasis/quadrature"
	"github.com/notargets/gobasis/reference"
	"github.com/notargets/gobasis/utils"
)

// vectorPk keeps the members of the vector ON set of degree k+1 that span
// vector P_k, component-major
func vectorPk(vecPkp1 *polyset.PolynomialSet, k int) *polyset.PolynomialSet {
	var (
		shape   = vecPkp1.Cell().Shape()
		sd      = vecPkp1.Cell().SpatialDimension()
		dimPkp1 = polyset.PolynomialDimension(shape, k+1)
		dimPk   = polyset.PolynomialDimension(shape, k)
		idx     utils.Index
	)
	for c := 0; c < sd; c++ {
		idx = append(idx, utils.NewCountRange(c*dimPkp1, dimPk)...)
	}
	return vecPkp1.Take(idx)
}

// homogeneousTimes projects phi*g(x) onto the expansion for every
// homogeneous degree k expansion member phi, where g returns one vector per
// point. Each call of g may produce several vectors, one member each.
func homogeneousTimes(es *polyset.ExpansionSet, k int, g func(x []float64) [][]float64) (C utils.Matrix) {
	var (
		shape   = es.Cell().Shape()
		q       = es.Rule()
		pts     = q.Points()
		V       = es.Values(pts)
		dimPkm1 = polyset.PolynomialDimension(shape, k-1)
		dimPk   = polyset.PolynomialDimension(shape, k)
		rows    [][]float64
	)
	gq := make([][][]float64, len(pts))
	for p, x := range pts {
		gq[p] = g(x)
	}
	nvec, ncomp := len(gq[0]), len(gq[0][0])
	for i := dimPkm1; i < dimPk; i++ {
		for v := 0; v < nvec; v++ {
			vals := make([][]float64, ncomp)
			for c := range vals {
				vals[c] = make([]float64, len(pts))
				for p := range pts {
					vals[c][p] = V.At(i, p) * gq[p][v][c]
				}
			}
			rows = append(rows, es.ProjectValues(vals))
		}
	}
	C = utils.NewMatrix(len(rows), ncomp*es.Size())
	for r, row := range rows {
		C.SetRow(r, row)
	}
	return
}

// RTSpace is vector P_k plus x times homogeneous P_k
func RTSpace(cell *reference.Cell, k int) (rt *polyset.PolynomialSet, err error) {
	sd := cell.SpatialDimension()
	var vecPkp1, PkHx *polyset.PolynomialSet
	if vecPkp1, err = polyset.NewONPolynomialSet(cell, k+1, sd); err != nil {
		return
	}
	es := vecPkp1.Expansion()
	C := homogeneousTimes(es, k, func(x []float64) [][]float64 {
		return [][]float64{x}
	})
	if PkHx, err = polyset.NewPolynomialSet(es, k+1, []int{sd}, C); err != nil {
		return
	}
	return polyset.UnionNormalized(vectorPk(vecPkp1, k), PkHx)
}

// NewRaviartThomas is the Raviart-Thomas element of index q >= 1 on a
// triangle or tetrahedron. The space has degree k = q-1 plus x P_k; dofs are
// normal moments against P_k on each facet and vector moments against
// P_{k-1} in the interior.
func NewRaviartThomas(cell *reference.Cell, q int, opts ...element.Option) (ce *element.CiarletElement, err error) {
	if err = requireShape(cell, "Raviart-Thomas", reference.Triangle, reference.Tetrahedron); err != nil {
		return
	}
	if q < 1 {
		err = fmt.Errorf("%w: Raviart-Thomas needs index >= 1, have %d", ErrDegree, q)
		return
	}
	var (
		k      = q - 1
		sd     = cell.SpatialDimension()
		fs     []functional.Functional
		groups []functional.Group
	)
	if fs, groups, err = facetNormalMoments(cell, k, 2*k+1); err != nil {
		return
	}
	if k > 0 {
		var (
			rule *quadrature.Rule
			Pkm1 *polyset.PolynomialSet
			T    *polyset.Table
		)
		if rule, err = quadrature.Make(cell, 2*k+1); err != nil {
			return
		}
		if Pkm1, err = polyset.NewONPolynomialSet(cell, k-1); err != nil {
			return
		}
		if T, err = tabulateAt(Pkm1, rule); err != nil {
			return
		}
		for d := 0; d < sd; d++ {
			for i := 0; i < Pkm1.Cardinality(); i++ {
				var l functional.Functional
				if l, err = functional.NewIntegralMoment(cell, rule, memberValues(T, i)[0], d); err != nil {
					return
				}
				fs = append(fs, l)
			}
		}
		groups = append(groups, functional.Group{Dim: sd, Entity: 0, Count: sd * Pkm1.Cardinality()})
	}
	var (
		em    *functional.EntityDofMap
		dual  *functional.DualSet
		space *polyset.PolynomialSet
	)
	if em, err = functional.Build(cell, groups); err != nil {
		return
	}
	if dual, err = functional.NewDualSet(cell, fs, em); err != nil {
		return
	}
	if space, err = RTSpace(cell, k); err != nil {
		return
	}
	name := fmt.Sprintf("RT%d", q)
	return element.NewCiarletElement(space, dual, q, append([]element.Option{element.WithName(name), element.WithMapping(element.ContravariantPiola)}, opts...)...)
}
