package families

import (
	"fmt"

	"github.com/notargets/gobasis/element"
	"github.com/notargets/gobasis/functional"
	"github.com/notargets/gobasis/polyset"
	"github.com/notargets/gobasis/quadrature"
	"github.com/notargets/gobasis/reference"
)

// BDMQuadratureDegree is the moment quadrature degree used by the point
// variant interior dofs and by an integral variant that leaves Degree unset
func BDMQuadratureDegree(k int) int { return 2 * (k + 1) }

// NewBrezziDouglasMarini is the BDM element of degree k >= 1 on a triangle
// or tetrahedron, with space vector P_k. Facet dofs are normal evaluations
// at lattice points (point variant) or normal moments against P_k on the
// facet (integral variant). For k > 1 the interior dofs are moments against
// the first kind Nedelec space of index k-1.
func NewBrezziDouglasMarini(cell *reference.Cell, k int, variant functional.Variant,
	opts ...element.Option) (ce *element.CiarletElement, err error) {
	if err = requireShape(cell, "Brezzi-Douglas-Marini", reference.Triangle, reference.Tetrahedron); err != nil {
		return
	}
	if k < 1 {
		err = fmt.Errorf("%w: Brezzi-Douglas-Marini needs degree >= 1, have %d", ErrDegree, k)
		return
	}
	var (
		sd         = cell.SpatialDimension()
		quadDegree = BDMQuadratureDegree(k)
		fs         []functional.Functional
		groups     []functional.Group
	)
	switch variant.Kind {
	case functional.Integral:
		if variant.Degree > 0 {
			quadDegree = variant.Degree
		}
		if quadDegree < 2*k {
			err = fmt.Errorf("%w: quadrature degree %d is below %d for degree %d moments",
				functional.ErrVariant, quadDegree, 2*k, k)
			return
		}
		if fs, groups, err = facetNormalMoments(cell, k, quadDegree); err != nil {
			return
		}
	case functional.Point:
		for f := 0; f < cell.NumEntities(sd-1); f++ {
			var pts [][]float64
			if pts, err = cell.MakePoints(sd-1, f, sd+k); err != nil {
				return
			}
			for _, x := range pts {
				var l functional.Functional
				if l, err = functional.NewPointScaledNormalEvaluation(cell, f, x); err != nil {
					return
				}
				fs = append(fs, l)
			}
			groups = append(groups, functional.Group{Dim: sd - 1, Entity: f, Count: len(pts)})
		}
	default:
		err = fmt.Errorf("%w: %v", functional.ErrVariant, variant)
		return
	}
	if k > 1 {
		var (
			rule *quadrature.Rule
			ned  *polyset.PolynomialSet
			T    *polyset.Table
		)
		if rule, err = quadrature.Make(cell, quadDegree); err != nil {
			return
		}
		if ned, err = NedelecSpace(cell, k-1); err != nil {
			return
		}
		if T, err = tabulateAt(ned, rule); err != nil {
			return
		}
		for i := 0; i < ned.Cardinality(); i++ {
			var l functional.Functional
			if l, err = functional.NewFrobeniusMoment(cell, rule, memberValues(T, i)); err != nil {
				return
			}
			fs = append(fs, l)
		}
		groups = append(groups, functional.Group{Dim: sd, Entity: 0, Count: ned.Cardinality()})
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
	if space, err = polyset.NewONPolynomialSet(cell, k, sd); err != nil {
		return
	}
	name := fmt.Sprintf("BDM%d", k)
	return element.NewCiarletElement(space, dual, k, append([]element.Option{element.WithName(name), element.WithMapping(element.ContravariantPiola)}, opts...)...)
}
