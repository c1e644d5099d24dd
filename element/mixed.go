package element

import (
	"fmt"
	"strings"

	"github.com/notargets/gobasis/functional"
	"github.com/notargets/gobasis/polyset"
	"github.com/notargets/gobasis/reference"
	"github.com/notargets/gobasis/utils"
)

// MixedElement stacks sub-elements on one cell. Sub-element i owns basis
// functions [Offsets()[i], Offsets()[i+1]) and value components
// [ComponentOffsets()[i], ComponentOffsets()[i+1]).
type MixedElement struct {
	elements    []Element
	cell        *reference.Cell
	offsets     utils.Index
	compOffsets utils.Index
	dual        *functional.DualSet
}

func NewMixedElement(elems ...Element) (me *MixedElement, err error) {
	if len(elems) == 0 {
		err = ErrEmpty
		return
	}
	var (
		cell  = elems[0].Cell()
		dims  = make([]int, len(elems))
		comps = make([]int, len(elems))
		maps  = make([]*functional.EntityDofMap, len(elems))
	)
	for i, e := range elems {
		if e.Cell() != cell {
			err = fmt.Errorf("%w: sub-element %d (%s) is on %v, sub-element 0 (%s) on %v",
				ErrCellMismatch, i, e.Name(), e.Cell(), elems[0].Name(), cell)
			return
		}
		dims[i] = e.SpaceDimension()
		comps[i] = e.ValueSize()
		maps[i] = e.EntityDofs()
	}
	me = &MixedElement{
		elements:    append([]Element(nil), elems...),
		cell:        cell,
		offsets:     utils.CumulativeOffsets(dims),
		compOffsets: utils.CumulativeOffsets(comps),
	}
	var em *functional.EntityDofMap
	if em, err = functional.Merge(cell, maps, me.offsets); err != nil {
		return nil, err
	}
	// The functionals are only meaningful when every sub-element has them
	var fs []functional.Functional
	for _, e := range elems {
		if e.DualSet().Len() != e.SpaceDimension() {
			fs = nil
			break
		}
		fs = append(fs, e.DualSet().Functionals()...)
	}
	if me.dual, err = functional.NewDualSet(cell, fs, em); err != nil {
		return nil, err
	}
	return
}

func (me *MixedElement) Name() string {
	names := make([]string, len(me.elements))
	for i, e := range me.elements {
		names[i] = e.Name()
	}
	return "Mixed(" + strings.Join(names, ",") + ")"
}

func (me *MixedElement) Cell() *reference.Cell { return me.cell }

func (me *MixedElement) Degree() (degree int) {
	for _, e := range me.elements {
		if e.Degree() > degree {
			degree = e.Degree()
		}
	}
	return
}

func (me *MixedElement) SpaceDimension() int { return me.offsets[len(me.elements)] }

// ValueShape is the flattened sum of the sub-element value sizes
func (me *MixedElement) ValueShape() []int { return []int{me.ValueSize()} }

func (me *MixedElement) ValueSize() int { return me.compOffsets[len(me.elements)] }

// Mapping concatenates the sub-element mappings, aligned with
// ComponentOffsets
func (me *MixedElement) Mapping() (ms []Mapping) {
	for _, e := range me.elements {
		ms = append(ms, e.Mapping()...)
	}
	return
}

func (me *MixedElement) DualSet() *functional.DualSet { return me.dual }

func (me *MixedElement) EntityDofs() *functional.EntityDofMap { return me.dual.EntityDofs() }

func (me *MixedElement) SubElements() []Element { return append([]Element(nil), me.elements...) }

func (me *MixedElement) NumSubElements() int { return len(me.elements) }

func (me *MixedElement) Offsets() utils.Index { return me.offsets.Copy() }

func (me *MixedElement) ComponentOffsets() utils.Index { return me.compOffsets.Copy() }

// Tabulate places each sub-element's tables in its own row and component
// block. A derivative missing from a sub-element leaves its block zero.
func (me *MixedElement) Tabulate(order int, pts [][]float64, entity *reference.Entity) (tab polyset.Tabulation, err error) {
	if err = CheckOrder(order); err != nil {
		return
	}
	var (
		N     = me.SpaceDimension()
		ncomp = me.ValueSize()
		np    = len(pts)
	)
	tab = make(polyset.Tabulation)
	for i, e := range me.elements {
		var sub polyset.Tabulation
		if sub, err = e.Tabulate(order, pts, entity); err != nil {
			err = fmt.Errorf("sub-element %d (%s): %w", i, e.Name(), err)
			return nil, err
		}
		for alpha, T := range sub {
			out, ok := tab[alpha]
			if !ok {
				out = polyset.NewTable(N, ncomp, np)
				tab[alpha] = out
			}
			out.AssignBlock(me.offsets[i], me.compOffsets[i], T)
		}
	}
	return
}
