// Package families constructs concrete finite elements: Lagrange,
// Raviart-Thomas, Brezzi-Douglas-Marini, Hermite and quadratic serendipity.
// Each family supplies a primal polynomial space and a dual set and leaves
// the nodal basis to element.NewCiarletElement.
package families

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notargets/gobasis/element"
	"github.com/notargets/gobasis/functional"
	"github.com/notargets/gobasis/polyset"
	"github.com/notargets/gobasis/quadrature"
	"github.com/notargets/gobasis/reference"
)

var (
	ErrFamily = errors.New("unknown element family")
	ErrDegree = errors.New("unsupported degree")
)

// New builds an element by family name
func New(family string, cell *reference.Cell, degree int, variant functional.Variant,
	opts ...element.Option) (el element.Element, err error) {
	var (
		ce *element.CiarletElement
		s  *Serendipity
	)
	switch strings.ToLower(family) {
	case "lagrange", "p", "q", "cg":
		ce, err = NewLagrange(cell, degree, opts...)
	case "raviart-thomas", "raviartthomas", "rt":
		ce, err = NewRaviartThomas(cell, degree, opts...)
	case "brezzi-douglas-marini", "brezzidouglasmarini", "bdm":
		ce, err = NewBrezziDouglasMarini(cell, degree, variant, opts...)
	case "hermite":
		ce, err = NewHermite(cell, degree, opts...)
	case "serendipity", "s":
		if s, err = NewSerendipity(cell); err != nil {
			return
		}
		return s, nil
	default:
		err = fmt.Errorf("%w: %q", ErrFamily, family)
	}
	if err != nil {
		return
	}
	return ce, nil
}

func requireShape(cell *reference.Cell, family string, shapes ...reference.Shape) error {
	for _, s := range shapes {
		if cell.Shape() == s {
			return nil
		}
	}
	return fmt.Errorf("%w: %s is not defined on %v", reference.ErrShape, family, cell.Shape())
}

// tabulateAt is the order zero tabulation of ps at the rule points,
// [member, component, point]
func tabulateAt(ps *polyset.PolynomialSet, q *quadrature.Rule) (*polyset.Table, error) {
	tab, err := ps.Tabulate(0, q.Points())
	if err != nil {
		return nil, err
	}
	return tab[polyset.MultiIndex{}], nil
}

// memberValues are the values of one member of a table, [component][point]
func memberValues(T *polyset.Table, m int) (vals [][]float64) {
	_, ncomp, np := T.Dims()
	vals = make([][]float64, ncomp)
	for c := range vals {
		vals[c] = make([]float64, np)
		for p := range vals[c] {
			vals[c][p] = T.At(m, c, p)
		}
	}
	return
}

// facetNormalMoments are the scaled normal moments of every facet against
// the orthonormal basis of P_k on the facet, integrated at the given degree
func facetNormalMoments(cell *reference.Cell, k, quadDegree int) (fs []functional.Functional, groups []functional.Group, err error) {
	var (
		sd    = cell.SpatialDimension()
		facet = cell.FacetCell()
		q     *quadrature.Rule
		Pk    *polyset.PolynomialSet
		T     *polyset.Table
	)
	if q, err = quadrature.Make(facet, quadDegree); err != nil {
		return
	}
	if Pk, err = polyset.NewONPolynomialSet(facet, k); err != nil {
		return
	}
	if T, err = tabulateAt(Pk, q); err != nil {
		return
	}
	for f := 0; f < cell.NumEntities(sd-1); f++ {
		for i := 0; i < Pk.Cardinality(); i++ {
			var l functional.Functional
			if l, err = functional.NewScaledNormalMoment(cell, f, quadDegree, memberValues(T, i)[0]); err != nil {
				return
			}
			fs = append(fs, l)
		}
		groups = append(groups, functional.Group{Dim: sd - 1, Entity: f, Count: Pk.Cardinality()})
	}
	return
}
