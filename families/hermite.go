package families

import (
	"fmt"

	"github.com/notargets/gobasis/element"
	"github.com/notargets/gobasis/functional"
	"github.com/notargets/gobasis/polyset"
	"github.com/notargets/gobasis/reference"
	"github.com/notargets/gobasis/utils"
)

// NewHermite is the degree n >= 3 Hermite element on the interval: value and
// first derivative at each vertex and values at n-3 interior equispaced
// points. Dofs are ordered v0, v0', interior, v1, v1'.
func NewHermite(cell *reference.Cell, n int, opts ...element.Option) (ce *element.CiarletElement, err error) {
	if err = requireShape(cell, "Hermite", reference.Interval); err != nil {
		return
	}
	if n < 3 {
		err = fmt.Errorf("%w: Hermite needs degree >= 3, have %d", ErrDegree, n)
		return
	}
	var (
		verts = cell.Vertices()
		dx    = polyset.NewMultiIndex(1)
		fs    = []functional.Functional{
			functional.NewPointEvaluation(cell, verts[0]),
			functional.NewPointDerivative(cell, verts[0], dx),
		}
		interior [][]float64
	)
	if interior, err = cell.MakePoints(1, 0, n-2); err != nil {
		return
	}
	for _, x := range interior {
		fs = append(fs, functional.NewPointEvaluation(cell, x))
	}
	fs = append(fs,
		functional.NewPointEvaluation(cell, verts[1]),
		functional.NewPointDerivative(cell, verts[1], dx))
	var (
		em    *functional.EntityDofMap
		dual  *functional.DualSet
		space *polyset.PolynomialSet
	)
	em, err = functional.FromLists(cell, map[int]map[int][]int{
		0: {0: {0, 1}, 1: {n - 1, n}},
		1: {0: utils.NewRange(2, n-2)},
	})
	if err != nil {
		return
	}
	if dual, err = functional.NewDualSet(cell, fs, em); err != nil {
		return
	}
	if space, err = polyset.NewONPolynomialSet(cell, n); err != nil {
		return
	}
	name := fmt.Sprintf("Hermite%d", n)
	return element.NewCiarletElement(space, dual, n, append([]element.Option{element.WithName(name), element.WithMapping(element.Affine)}, opts...)...)
}
