package polyset

import (
	"fmt"
	"sort"

	"github.com/notargets/gobasis/utils"
)

// Table holds values indexed [member, component, point]. Storage is row
// major in that order, so each member is one contiguous row of
// Components*Points values.
type Table struct {
	members, components, points int
	data                        []float64
}

func NewTable(members, components, points int) *Table {
	return &Table{
		members:    members,
		components: components,
		points:     points,
		data:       make([]float64, members*components*points),
	}
}

func (t *Table) Dims() (members, components, points int) {
	return t.members, t.components, t.points
}

func (t *Table) index(m, c, p int) int {
	return (m*t.components+c)*t.points + p
}

func (t *Table) At(m, c, p int) float64 { return t.data[t.index(m, c, p)] }

func (t *Table) Set(m, c, p int, val float64) { t.data[t.index(m, c, p)] = val }

// Data is the backing slice
func (t *Table) Data() []float64 { return t.data }

// Matrix views the table as a members x (components*points) matrix sharing
// the table's storage
func (t *Table) Matrix() utils.Matrix {
	return utils.NewMatrix(t.members, t.components*t.points, t.data)
}

// AssignBlock copies src into the member block starting at m0 and the
// component block starting at c0. Point counts must agree.
func (t *Table) AssignBlock(m0, c0 int, src *Table) {
	if src.points != t.points {
		panic(fmt.Errorf("point count mismatch: %d vs %d", src.points, t.points))
	}
	if m0+src.members > t.members || c0+src.components > t.components {
		panic(fmt.Errorf("block [%d:%d,%d:%d] exceeds table [%d,%d]",
			m0, m0+src.members, c0, c0+src.components, t.members, t.components))
	}
	for m := 0; m < src.members; m++ {
		for c := 0; c < src.components; c++ {
			copy(t.data[t.index(m0+m, c0+c, 0):t.index(m0+m, c0+c, 0)+t.points],
				src.data[src.index(m, c, 0):src.index(m, c, 0)+src.points])
		}
	}
}

// AssignPoints copies src into the point block starting at p0. Member and
// component counts must agree.
func (t *Table) AssignPoints(p0 int, src *Table) {
	if src.members != t.members || src.components != t.components || p0+src.points > t.points {
		panic(fmt.Errorf("point block [%d,%d,%d:%d] does not fit table [%d,%d,%d]",
			src.members, src.components, p0, p0+src.points, t.members, t.components, t.points))
	}
	for m := 0; m < t.members; m++ {
		for c := 0; c < t.components; c++ {
			copy(t.data[t.index(m, c, p0):t.index(m, c, p0)+src.points],
				src.data[src.index(m, c, 0):src.index(m, c, 0)+src.points])
		}
	}
}

// Tabulation maps each derivative multi-index to its table
type Tabulation map[MultiIndex]*Table

// Keys returns the multi-indices in graded order
func (tab Tabulation) Keys() (keys []MultiIndex) {
	for k := range tab {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		oi, oj := keys[i].Order(), keys[j].Order()
		if oi != oj {
			return oi < oj
		}
		for d := 0; d < MaxDim; d++ {
			if keys[i][d] != keys[j][d] {
				return keys[i][d] > keys[j][d]
			}
		}
		return false
	})
	return
}
