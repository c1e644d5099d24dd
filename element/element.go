// Package element builds nodal bases from a polynomial space and a dual set,
// tabulates them, and composes several elements into one mixed element.
package element

import (
	"errors"
	"fmt"

	"github.com/notargets/gobasis/functional"
	"github.com/notargets/gobasis/polyset"
	"github.com/notargets/gobasis/reference"
)

var (
	ErrCardinality  = errors.New("space dimension does not match the number of functionals")
	ErrSingular     = errors.New("dual matrix is singular")
	ErrCellMismatch = errors.New("elements are defined on different cells")
	ErrEmpty        = errors.New("mixed element needs at least one sub-element")
	ErrOrder        = errors.New("negative derivative order")
)

// Element is a finite element on a reference cell. Tabulate returns, for
// every multi-index alpha with |alpha| <= order, a table indexed
// [basis function, value component, point]. With a non nil entity the points
// are coordinates on that sub-entity and are mapped into the cell first.
type Element interface {
	Name() string
	Cell() *reference.Cell
	Degree() int
	SpaceDimension() int
	ValueShape() []int
	ValueSize() int
	// Mapping is the pullback of each value component
	Mapping() []Mapping
	DualSet() *functional.DualSet
	EntityDofs() *functional.EntityDofMap
	Tabulate(order int, pts [][]float64, entity *reference.Entity) (polyset.Tabulation, error)
}

// PullBack maps points given on a sub-entity into cell coordinates. A nil
// entity means the points are already cell coordinates.
func PullBack(cell *reference.Cell, pts [][]float64, entity *reference.Entity) (out [][]float64, err error) {
	if entity == nil {
		sd := cell.SpatialDimension()
		out = make([][]float64, len(pts))
		for i, p := range pts {
			if len(p) != sd {
				err = fmt.Errorf("%w: point %d has %d coordinates on a %d dimensional cell",
					reference.ErrShape, i, len(p), sd)
				return
			}
			out[i] = append([]float64(nil), p...)
		}
		return
	}
	return cell.MapPoints(entity.Dim, entity.ID, pts)
}

// CheckOrder rejects a negative derivative order
func CheckOrder(order int) error {
	if order < 0 {
		return fmt.Errorf("%w: %d", ErrOrder, order)
	}
	return nil
}
