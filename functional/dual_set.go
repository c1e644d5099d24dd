package functional

import (
	"errors"
	"fmt"

	"github.com/notargets/gobasis/polyset"
	"github.com/notargets/gobasis/reference"
	"github.com/notargets/gobasis/utils"
)

var ErrDofCount = errors.New("functional count does not match entity dofs")

// DualSet is an ordered list of functionals on a cell with the entity
// ownership of each. Closed-form elements carry an entity map but no
// functionals.
type DualSet struct {
	cell        *reference.Cell
	functionals []Functional
	entityDofs  *EntityDofMap
}

func NewDualSet(cell *reference.Cell, functionals []Functional, entityDofs *EntityDofMap) (ds *DualSet, err error) {
	if entityDofs.Cell() != cell {
		err = fmt.Errorf("entity dofs belong to %v, dual set to %v", entityDofs.Cell(), cell)
		return
	}
	if len(functionals) != 0 && len(functionals) != entityDofs.NumDofs() {
		err = fmt.Errorf("%w: expected %d functionals, have %d",
			ErrDofCount, entityDofs.NumDofs(), len(functionals))
		return
	}
	for i, f := range functionals {
		if f.Cell() != cell {
			err = fmt.Errorf("functional %d (%v) is defined on %v, not %v", i, f, f.Cell(), cell)
			return
		}
	}
	if err = entityDofs.Validate(); err != nil {
		return
	}
	ds = &DualSet{
		cell:        cell,
		functionals: append([]Functional(nil), functionals...),
		entityDofs:  entityDofs,
	}
	return
}

func (ds *DualSet) Cell() *reference.Cell { return ds.cell }

// Len is the number of functionals, zero for closed-form elements
func (ds *DualSet) Len() int { return len(ds.functionals) }

func (ds *DualSet) At(i int) Functional { return ds.functionals[i] }

func (ds *DualSet) Functionals() []Functional {
	return append([]Functional(nil), ds.functionals...)
}

func (ds *DualSet) EntityDofs() *EntityDofMap { return ds.entityDofs }

// Matrix is the generalized Vandermonde V[k][j] = L_k(phi_j) over the
// members phi_j of space. All functional points are tabulated in one pass.
func (ds *DualSet) Matrix(space *polyset.PolynomialSet) (V utils.Matrix, err error) {
	var (
		pts      [][]float64
		offsets  = make([]int, len(ds.functionals))
		maxOrder int
		M        = space.Cardinality()
	)
	if space.Cell() != ds.cell {
		err = fmt.Errorf("space is defined on %v, dual set on %v", space.Cell(), ds.cell)
		return
	}
	for k, f := range ds.functionals {
		offsets[k] = len(pts)
		pts = append(pts, f.Points()...)
		if o := f.MaxOrder(); o > maxOrder {
			maxOrder = o
		}
	}
	var tab polyset.Tabulation
	if tab, err = space.Tabulate(maxOrder, pts); err != nil {
		return
	}
	V = utils.NewMatrix(len(ds.functionals), M)
	for k, f := range ds.functionals {
		var row []float64
		if row, err = evaluateTerms(f.Terms(), offsets[k], tab); err != nil {
			err = fmt.Errorf("functional %d (%v): %w", k, f, err)
			return
		}
		V.SetRow(k, row)
	}
	return
}
