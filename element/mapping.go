package element

import "fmt"

// Mapping names the pullback that carries reference basis functions to a
// physical cell
type Mapping uint8

const (
	Affine Mapping = iota
	ContravariantPiola
)

func (m Mapping) String() string {
	switch m {
	case Affine:
		return "affine"
	case ContravariantPiola:
		return "contravariant piola"
	}
	return fmt.Sprintf("Mapping(%d)", uint8(m))
}

func repeatMapping(m Mapping, n int) (ms []Mapping) {
	ms = make([]Mapping, n)
	for i := range ms {
		ms[i] = m
	}
	return
}
