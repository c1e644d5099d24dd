package functional

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notargets/gobasis/reference"
	"github.com/notargets/gobasis/utils"
)

var ErrPartition = errors.New("entity dofs do not partition the dofs")

// EntityDofMap lists, for every entity of every dimension of a cell, the
// ordered dof indices living there. Entities without dofs hold an empty,
// non-nil list.
type EntityDofMap struct {
	cell *reference.Cell
	dofs [][][]int // [dim][entity] -> dofs
}

// Group assigns Count consecutive dofs to entity (Dim, Entity)
type Group struct {
	Dim, Entity, Count int
}

func newEmptyMap(cell *reference.Cell) (em *EntityDofMap) {
	sd := cell.SpatialDimension()
	em = &EntityDofMap{cell: cell, dofs: make([][][]int, sd+1)}
	for d := 0; d <= sd; d++ {
		em.dofs[d] = make([][]int, cell.NumEntities(d))
		for e := range em.dofs[d] {
			em.dofs[d][e] = []int{}
		}
	}
	return
}

// Build numbers dofs from zero in group order. A group may name an entity
// already seen; its range is appended to that entity's list.
func Build(cell *reference.Cell, groups []Group) (em *EntityDofMap, err error) {
	em = newEmptyMap(cell)
	var cur int
	for _, g := range groups {
		if err = cell.CheckEntity(g.Dim, g.Entity); err != nil {
			return nil, err
		}
		if g.Count < 0 {
			return nil, fmt.Errorf("negative dof count %d on entity (%d,%d)", g.Count, g.Dim, g.Entity)
		}
		em.dofs[g.Dim][g.Entity] = append(em.dofs[g.Dim][g.Entity], utils.NewCountRange(cur, g.Count)...)
		cur += g.Count
	}
	return
}

// FromLists takes explicit lists keyed dimension -> entity -> dofs. Entities
// that are not named get empty lists. The result must be a partition.
func FromLists(cell *reference.Cell, lists map[int]map[int][]int) (em *EntityDofMap, err error) {
	em = newEmptyMap(cell)
	for dim, ents := range lists {
		for ent, dofs := range ents {
			if err = cell.CheckEntity(dim, ent); err != nil {
				return nil, err
			}
			em.dofs[dim][ent] = append([]int{}, dofs...)
		}
	}
	if err = em.Validate(); err != nil {
		return nil, err
	}
	return
}

func (em *EntityDofMap) Cell() *reference.Cell { return em.cell }

// Dimensions is the number of topological dimensions, sd+1
func (em *EntityDofMap) Dimensions() int { return len(em.dofs) }

func (em *EntityDofMap) NumEntities(dim int) int { return len(em.dofs[dim]) }

func (em *EntityDofMap) Dofs(dim, id int) []int {
	return append([]int{}, em.dofs[dim][id]...)
}

func (em *EntityDofMap) NumDofs() (n int) {
	for _, ents := range em.dofs {
		for _, dofs := range ents {
			n += len(dofs)
		}
	}
	return
}

// Offset returns a copy with every dof shifted by n
func (em *EntityDofMap) Offset(n int) (out *EntityDofMap) {
	out = newEmptyMap(em.cell)
	for d, ents := range em.dofs {
		for e, dofs := range ents {
			out.dofs[d][e] = utils.Index(dofs).Add(n)
		}
	}
	return
}

// Merge concatenates the lists of each entity across maps, shifting the
// dofs of map i by offsets[i]. All maps must share the cell.
func Merge(cell *reference.Cell, maps []*EntityDofMap, offsets []int) (em *EntityDofMap, err error) {
	if len(offsets) < len(maps) {
		err = fmt.Errorf("merge of %d maps given %d offsets", len(maps), len(offsets))
		return
	}
	em = newEmptyMap(cell)
	for i, m := range maps {
		if m.cell != cell {
			err = fmt.Errorf("merge across cells %v and %v", m.cell, cell)
			return nil, err
		}
		for d, ents := range m.dofs {
			for e, dofs := range ents {
				em.dofs[d][e] = append(em.dofs[d][e], utils.Index(dofs).Add(offsets[i])...)
			}
		}
	}
	return
}

// Incidence is the entity x dof matrix with a one where a dof lives on an
// entity. Rows enumerate entities by dimension then id.
func (em *EntityDofMap) Incidence() (inc utils.CSR) {
	var (
		nEnt int
		nDof = em.NumDofs()
	)
	for _, ents := range em.dofs {
		nEnt += len(ents)
	}
	var maxDof int
	for _, ents := range em.dofs {
		for _, dofs := range ents {
			if m := utils.Index(dofs).Max() + 1; m > maxDof {
				maxDof = m
			}
		}
	}
	if maxDof > nDof {
		nDof = maxDof
	}
	dok := utils.NewDOK(nEnt, nDof)
	var row int
	for _, ents := range em.dofs {
		for _, dofs := range ents {
			for _, dof := range dofs {
				if dof >= 0 {
					dok.Set(row, dof, dok.At(row, dof)+1)
				}
			}
			row++
		}
	}
	return dok.ToCSR()
}

// ClosureDofs are the dofs of entity (dim, id) and of every lower
// dimensional entity on its boundary, grouped by entity in dimension order
// and ascending within each entity
func (em *EntityDofMap) ClosureDofs(dim, id int) (dofs utils.Index, err error) {
	if err = em.cell.CheckEntity(dim, id); err != nil {
		return
	}
	dofs = utils.Index{}
	if em.NumDofs() == 0 {
		return
	}
	var (
		inc   = em.Incidence()
		topo  = em.cell.Topology()
		verts = make(map[int]bool)
		row   int
	)
	for _, v := range topo[dim][id] {
		verts[v] = true
	}
	for d := 0; d <= dim; d++ {
		for e, ev := range topo[d] {
			inside := true
			for _, v := range ev {
				inside = inside && verts[v]
			}
			if inside {
				dofs = append(dofs, inc.RowNonZeros(row+e)...)
			}
		}
		row += len(topo[d])
	}
	return
}

// Validate checks that the lists partition 0..NumDofs()-1
func (em *EntityDofMap) Validate() error {
	n := em.NumDofs()
	if n == 0 {
		return nil
	}
	for _, ents := range em.dofs {
		for _, dofs := range ents {
			for _, dof := range dofs {
				if dof < 0 || dof >= n {
					return fmt.Errorf("%w: dof %d outside [0,%d)", ErrPartition, dof, n)
				}
			}
		}
	}
	for dof, count := range em.Incidence().ColumnSums() {
		if count != 1 {
			return fmt.Errorf("%w: dof %d appears on %d entities", ErrPartition, dof, int(count))
		}
	}
	return nil
}

// Map returns the lists as nested maps, for printing and comparison
func (em *EntityDofMap) Map() (m map[int]map[int][]int) {
	m = make(map[int]map[int][]int)
	for d, ents := range em.dofs {
		m[d] = make(map[int][]int)
		for e, dofs := range ents {
			m[d][e] = append([]int{}, dofs...)
		}
	}
	return
}

func (em *EntityDofMap) String() string {
	var b strings.Builder
	b.WriteString("{")
	for d, ents := range em.dofs {
		if d > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, "%d:{", d)
		for e, dofs := range ents {
			if e > 0 {
				b.WriteString(",")
			}
			strs := make([]string, len(dofs))
			for k, dof := range dofs {
				strs[k] = fmt.Sprint(dof)
			}
			fmt.Fprintf(&b, "%d:[%s]", e, strings.Join(strs, ","))
		}
		b.WriteString("}")
	}
	b.WriteString("}")
	return b.String()
}
