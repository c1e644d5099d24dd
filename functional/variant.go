package functional

import (
	"errors"
	"fmt"
	"strings"
)

var ErrVariant = errors.New("unsupported dof variant")

type VariantKind uint8

const (
	Point VariantKind = iota
	Integral
)

// Variant selects how facet and interior dofs of H(div) elements are placed.
// Degree is the exactness degree of the moment quadrature and is only
// meaningful for Integral.
type Variant struct {
	Kind   VariantKind
	Degree int
}

func PointVariant() Variant { return Variant{Kind: Point} }

func IntegralVariant(degree int) Variant { return Variant{Kind: Integral, Degree: degree} }

// NewVariant builds a variant from a configuration name; the quadrature
// degree is a separate value, never part of the name
func NewVariant(name string, degree int) (v Variant, err error) {
	switch strings.ToLower(name) {
	case "point":
		v = PointVariant()
	case "integral":
		v = IntegralVariant(degree)
	default:
		err = fmt.Errorf("%w: %q, choose point or integral", ErrVariant, name)
	}
	return
}

func (v Variant) String() string {
	if v.Kind == Integral {
		return fmt.Sprintf("integral(%d)", v.Degree)
	}
	return "point"
}
