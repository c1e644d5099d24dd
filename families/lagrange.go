package families

import (
	"fmt"

	"github.com/notargets/gobasis/element"
	"github.com/notargets/gobasis/functional"
	"github.com/notargets/gobasis/polyset"
	"github.com/notargets/gobasis/reference"
)

// NewLagrange is the equispaced Lagrange element of degree k, P_k on
// simplices and Q_k on the quadrilateral. Dofs are numbered vertices first,
// then edges, faces and the interior.
func NewLagrange(cell *reference.Cell, k int, opts ...element.Option) (ce *element.CiarletElement, err error) {
	if k < 1 {
		err = fmt.Errorf("%w: Lagrange needs degree >= 1, have %d", ErrDegree, k)
		return
	}
	var (
		sd     = cell.SpatialDimension()
		fs     []functional.Functional
		groups []functional.Group
	)
	for d := 0; d <= sd; d++ {
		for e := 0; e < cell.NumEntities(d); e++ {
			var pts [][]float64
			if pts, err = cell.MakePoints(d, e, k); err != nil {
				return
			}
			for _, x := range pts {
				fs = append(fs, functional.NewPointEvaluation(cell, x))
			}
			groups = append(groups, functional.Group{Dim: d, Entity: e, Count: len(pts)})
		}
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
	if space, err = polyset.NewONPolynomialSet(cell, k); err != nil {
		return
	}
	name := fmt.Sprintf("Lagrange%d", k)
	return element.NewCiarletElement(space, dual, k, append([]element.Option{element.WithName(name), element.WithMapping(element.Affine)}, opts...)...)
}
