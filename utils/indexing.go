package utils

import "fmt"

// Index is an ordered list of zero based indices
type Index []int

// NewRange is the inclusive range [rmin, rmax], empty when rmax < rmin
func NewRange(rmin, rmax int) (r Index) {
	var (
		size = rmax - rmin + 1 // INCLUSIVE RANGE
	)
	if size < 0 {
		size = 0
	}
	r = make(Index, size)
	for i := range r {
		r[i] = i + rmin
	}
	return
}

// NewCountRange is count consecutive indices starting at start
func NewCountRange(start, count int) (r Index) {
	return NewRange(start, start+count-1)
}

func (I Index) Add(val int) (r Index) {
	r = make(Index, len(I))
	for i, ival := range I {
		r[i] = val + ival
	}
	return r
}

func (I Index) Copy() (r Index) {
	r = make(Index, len(I))
	copy(r, I)
	return
}

func (I Index) Max() (max int) {
	max = -1
	for _, val := range I {
		if val > max {
			max = val
		}
	}
	return
}

// CumulativeOffsets returns the running sum of sizes, starting at zero, with
// one more entry than sizes.
func CumulativeOffsets(sizes []int) (offsets Index) {
	offsets = make(Index, len(sizes)+1)
	for i, n := range sizes {
		if n < 0 {
			panic(fmt.Errorf("negative size %d at position %d", n, i))
		}
		offsets[i+1] = offsets[i] + n
	}
	return
}
