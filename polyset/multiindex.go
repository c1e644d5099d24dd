package polyset

import (
	"fmt"
	"strings"
)

// MaxDim is the largest spatial dimension a MultiIndex can address
const MaxDim = 3

// MultiIndex is a derivative multi-index; entries past the spatial
// dimension are zero. The fixed size keeps it usable as a map key.
type MultiIndex [MaxDim]int

func NewMultiIndex(alpha ...int) (mi MultiIndex) {
	if len(alpha) > MaxDim {
		panic(fmt.Errorf("multi-index %v exceeds %d dimensions", alpha, MaxDim))
	}
	copy(mi[:], alpha)
	return
}

// Order is |alpha|
func (mi MultiIndex) Order() (n int) {
	for _, a := range mi {
		n += a
	}
	return
}

// Lower returns alpha - e_d for the first direction d with alpha_d > 0
func (mi MultiIndex) Lower() (parent MultiIndex, d int) {
	parent = mi
	for d = 0; d < MaxDim; d++ {
		if mi[d] > 0 {
			parent[d]--
			return
		}
	}
	return parent, -1
}

func (mi MultiIndex) Format(sd int) string {
	var b strings.Builder
	b.WriteString("(")
	for d := 0; d < sd; d++ {
		if d > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, "%d", mi[d])
	}
	b.WriteString(")")
	return b.String()
}

func (mi MultiIndex) String() string { return mi.Format(MaxDim) }

// AllMultiIndices lists every multi-index in sd dimensions with
// |alpha| <= order, grouped by order. Within an order the first direction
// varies slowest and descends, so order one reads (1,0),(0,1).
func AllMultiIndices(sd, order int) (mis []MultiIndex) {
	for n := 0; n <= order; n++ {
		mis = append(mis, MultiIndicesOfOrder(sd, n)...)
	}
	return
}

func MultiIndicesOfOrder(sd, n int) (mis []MultiIndex) {
	var rec func(d, remaining int, cur MultiIndex)
	rec = func(d, remaining int, cur MultiIndex) {
		if d == sd-1 {
			cur[d] = remaining
			mis = append(mis, cur)
			return
		}
		for a := remaining; a >= 0; a-- {
			cur[d] = a
			rec(d+1, remaining-a, cur)
		}
	}
	if sd == 0 {
		if n == 0 {
			mis = []MultiIndex{{}}
		}
		return
	}
	rec(0, n, MultiIndex{})
	return
}
